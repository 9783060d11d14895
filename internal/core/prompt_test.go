package core

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charanhu/support-agent/internal/store"
	"github.com/charanhu/support-agent/internal/tickets"
)

func sampleTicket() *tickets.Ticket {
	return &tickets.Ticket{
		ID:           "TICKET-001",
		CustomerName: "Alice Johnson",
		Status:       tickets.StatusOpen,
		Priority:     tickets.PriorityHigh,
		CreatedDate:  "2024-11-25",
		Title:        "Cannot access account",
		Description:  "User unable to log in.",
		Category:     "account",
	}
}

func sampleResults() []SearchResult {
	return []SearchResult{
		{Source: "faq.pdf", Page: 2, Similarity: "91.0%", Score: 0.91, Excerpt: "Click Forgot Password."},
		{Source: "guide.pdf", Page: 7, Similarity: "74.5%", Score: 0.745, Excerpt: "Clear your cookies."},
	}
}

func TestAssemble_FullOrdering(t *testing.T) {
	a := NewPromptAssembler("", 50)
	history := []store.Message{
		{Role: RoleUser, Content: "earlier question", Timestamp: time.Now()},
		{Role: RoleAssistant, Content: "earlier answer", Timestamp: time.Now()},
	}

	msgs := a.Assemble(sampleTicket(), sampleResults(), history, "current question")
	require.Len(t, msgs, 6)

	assert.Equal(t, RoleSystem, msgs[0].Role)
	assert.Equal(t, SystemDirective, msgs[0].Content)

	assert.Equal(t, RoleSystem, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "Ticket Information:")
	assert.Contains(t, msgs[1].Content, "Ticket ID: TICKET-001")

	assert.Equal(t, RoleSystem, msgs[2].Role)
	assert.Contains(t, msgs[2].Content, "Relevant Information from Knowledge Base:")
	assert.Contains(t, msgs[2].Content, "[Source 1] faq.pdf (Page 2)")
	assert.Contains(t, msgs[2].Content, "Relevance: 91.0%")
	assert.Contains(t, msgs[2].Content, "[Source 2] guide.pdf (Page 7)")

	assert.Equal(t, PromptMessage{Role: RoleUser, Content: "earlier question"}, msgs[3])
	assert.Equal(t, PromptMessage{Role: RoleAssistant, Content: "earlier answer"}, msgs[4])
	assert.Equal(t, PromptMessage{Role: RoleUser, Content: "current question"}, msgs[5])
}

func TestAssemble_OmitsAbsentBlocks(t *testing.T) {
	a := NewPromptAssembler("", 50)

	msgs := a.Assemble(nil, nil, nil, "hello")
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleSystem, msgs[0].Role)
	assert.Equal(t, RoleUser, msgs[1].Role)
	assert.Equal(t, "hello", msgs[1].Content)

	// No placeholder text sneaks in for the missing context blocks.
	assert.NotContains(t, msgs[0].Content, "Ticket Information")
	assert.NotContains(t, msgs[0].Content, "Knowledge Base")
}

func TestAssemble_TicketOnly(t *testing.T) {
	a := NewPromptAssembler("", 50)

	msgs := a.Assemble(sampleTicket(), nil, nil, "what is my ticket status?")
	require.Len(t, msgs, 3)
	assert.Contains(t, msgs[1].Content, "Status: open")
}

func TestAssemble_TrimsHistoryToCap(t *testing.T) {
	a := NewPromptAssembler("", 4)

	var history []store.Message
	for i := 0; i < 10; i++ {
		history = append(history, store.Message{Role: RoleUser, Content: fmt.Sprintf("m%d", i)})
	}

	msgs := a.Assemble(nil, nil, history, "latest")
	// directive + 4 history + current user message
	require.Len(t, msgs, 6)
	assert.Equal(t, "m6", msgs[1].Content)
	assert.Equal(t, "m9", msgs[4].Content)
	assert.Equal(t, "latest", msgs[5].Content)
}

func TestAssemble_CustomDirective(t *testing.T) {
	a := NewPromptAssembler("You are a terse bot.", 50)
	msgs := a.Assemble(nil, nil, nil, "hi")
	assert.Equal(t, "You are a terse bot.", msgs[0].Content)
}
