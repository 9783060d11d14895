package core

import (
	"fmt"
	"strings"

	"github.com/charanhu/support-agent/internal/store"
	"github.com/charanhu/support-agent/internal/tickets"
)

// SystemDirective is the fixed instruction block for the support agent.
const SystemDirective = `You are a helpful and professional customer support agent. Your role is to:

1. Listen to customer issues and concerns
2. Search the knowledge base for relevant information
3. Access ticket information if provided
4. Provide clear, accurate, and helpful responses
5. Be empathetic and professional
6. Offer solutions or escalation when needed

When responding:
- Be concise but thorough
- Reference specific information from the knowledge base when applicable
- Maintain the context of the conversation
- If you don't know something, say so and offer to help find the answer
- Always be polite and professional

The customer may reference a ticket ID. Use this to provide personalized support based on their existing issue history.`

const contextRule = "=================================================="

// PromptAssembler builds the ordered message list for generation. The
// block order is fixed: system directive, ticket context, knowledge-base
// context, prior history (oldest first, trimmed to the cap), current user
// message. Absent blocks are omitted entirely, never emitted empty.
//
// Grounding context precedes conversational history so the model treats
// retrieved facts as authoritative background rather than as another turn.
type PromptAssembler struct {
	directive  string
	historyCap int
}

func NewPromptAssembler(directive string, historyCap int) *PromptAssembler {
	if directive == "" {
		directive = SystemDirective
	}
	if historyCap <= 0 {
		historyCap = 50
	}
	return &PromptAssembler{directive: directive, historyCap: historyCap}
}

func (a *PromptAssembler) Assemble(ticket *tickets.Ticket, results []SearchResult, history []store.Message, userMessage string) []PromptMessage {
	messages := []PromptMessage{{Role: RoleSystem, Content: a.directive}}

	if ticket != nil {
		messages = append(messages, PromptMessage{Role: RoleSystem, Content: formatTicketContext(ticket)})
	}
	if len(results) > 0 {
		messages = append(messages, PromptMessage{Role: RoleSystem, Content: formatKnowledgeContext(results)})
	}

	if excess := len(history) - a.historyCap; excess > 0 {
		history = history[excess:]
	}
	for _, msg := range history {
		role := RoleUser
		if msg.Role == RoleAssistant {
			role = RoleAssistant
		}
		messages = append(messages, PromptMessage{Role: role, Content: msg.Content})
	}

	messages = append(messages, PromptMessage{Role: RoleUser, Content: userMessage})
	return messages
}

func formatTicketContext(ticket *tickets.Ticket) string {
	var b strings.Builder
	b.WriteString("Ticket Information:\n")
	b.WriteString(contextRule + "\n")
	fmt.Fprintf(&b, "Ticket ID: %s\n", ticket.ID)
	fmt.Fprintf(&b, "Title: %s\n", ticket.Title)
	fmt.Fprintf(&b, "Status: %s\n", ticket.Status)
	fmt.Fprintf(&b, "Priority: %s\n", ticket.Priority)
	fmt.Fprintf(&b, "Category: %s\n", ticket.Category)
	fmt.Fprintf(&b, "Customer: %s\n", ticket.CustomerName)
	fmt.Fprintf(&b, "Created: %s\n", ticket.CreatedDate)
	fmt.Fprintf(&b, "Description: %s", ticket.Description)
	return b.String()
}

func formatKnowledgeContext(results []SearchResult) string {
	var b strings.Builder
	b.WriteString("Relevant Information from Knowledge Base:\n")
	b.WriteString(contextRule)
	for i, result := range results {
		fmt.Fprintf(&b, "\n[Source %d] %s (Page %d)\n", i+1, result.Source, result.Page)
		fmt.Fprintf(&b, "Relevance: %s\n", result.Similarity)
		fmt.Fprintf(&b, "Content: %s\n", result.Excerpt)
	}
	return strings.TrimRight(b.String(), "\n")
}
