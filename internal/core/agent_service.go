package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/charanhu/support-agent/internal/store"
	"github.com/charanhu/support-agent/internal/tickets"
)

// FallbackReply is returned when the generation gateway fails. The turn is
// still recorded so the conversation stays consistent.
const FallbackReply = "I apologize, but I encountered an error processing your request. Please try again."

// TicketLookup is the read-only capability the agent needs from the
// ticket collaborator.
type TicketLookup interface {
	GetTicket(ticketID string) (*tickets.Ticket, error)
}

// AgentReply is the structured result of one message turn.
type AgentReply struct {
	ChatID             string          `json:"chat_id"`
	Response           string          `json:"agent_response"`
	Sources            []SearchResult  `json:"kb_sources"`
	TicketInfo         *tickets.Ticket `json:"ticket_info,omitempty"`
	ConversationLength int             `json:"conversation_length"`
	Degraded           bool            `json:"degraded,omitempty"`
}

// AgentService orchestrates a message turn: retrieval, ticket context,
// prompt assembly, generation, and conversation updates. It is the only
// component with cross-cutting knowledge of the collaborators.
type AgentService struct {
	conversations *store.ConversationStore
	retriever     *Retriever
	ticketLookup  TicketLookup
	generator     Generator
	assembler     *PromptAssembler
	recorder      FailureRecorder

	temperature float32
	maxTokens   int

	// Per-conversation locks serialize turns within one conversation;
	// turns across different conversations run concurrently.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewAgentService(conversations *store.ConversationStore, retriever *Retriever,
	ticketLookup TicketLookup, generator Generator, assembler *PromptAssembler,
	recorder FailureRecorder, temperature float32, maxTokens int) *AgentService {
	if recorder == nil {
		recorder = LogFailureRecorder{}
	}
	return &AgentService{
		conversations: conversations,
		retriever:     retriever,
		ticketLookup:  ticketLookup,
		generator:     generator,
		assembler:     assembler,
		recorder:      recorder,
		temperature:   temperature,
		maxTokens:     maxTokens,
		locks:         make(map[string]*sync.Mutex),
	}
}

// CreateConversation opens a new chat session and returns it with the
// initial greeting.
func (s *AgentService) CreateConversation(customerName, ticketID string) (*store.Conversation, string, error) {
	conv, err := s.conversations.Create(customerName, ticketID)
	if err != nil {
		return nil, "", err
	}

	greeting := fmt.Sprintf("Hello %s! I'm your AI support agent. How can I help you today?", customerName)
	if ticketID != "" {
		greeting += fmt.Sprintf(" I see you have ticket %s associated with this chat.", ticketID)
	}

	log.Printf("Created chat session %s for %s", conv.ID, customerName)
	return conv, greeting, nil
}

// HandleMessage runs one full message turn. Retrieval and ticket lookup
// are best-effort: their failures degrade the reply instead of aborting
// it. A generation failure produces the fixed fallback reply with the
// assistant turn marked failed.
func (s *AgentService) HandleMessage(ctx context.Context, conversationID, userMessage string) (*AgentReply, error) {
	if userMessage == "" {
		return nil, fmt.Errorf("user message cannot be empty: %w", ErrInvalidArgument)
	}

	lock := s.conversationLock(conversationID)
	lock.Lock()
	defer lock.Unlock()

	conv, err := s.conversations.Get(conversationID)
	if err != nil {
		return nil, err
	}

	if _, err := s.conversations.AppendMessage(conversationID, RoleUser, userMessage); err != nil {
		return nil, err
	}

	// Retrieval is best-effort: a reply without citations beats no reply.
	results, err := s.retriever.Search(ctx, userMessage)
	if err != nil {
		s.recorder.RecordFailure("retrieval", "chat "+conversationID, err)
		results = nil
	}

	var ticket *tickets.Ticket
	if conv.TicketID != "" {
		ticket, err = s.ticketLookup.GetTicket(conv.TicketID)
		if err != nil {
			if !errors.Is(err, tickets.ErrTicketNotFound) {
				s.recorder.RecordFailure("ticket_lookup", "ticket "+conv.TicketID, err)
			}
			ticket = nil
		}
	}

	history, err := s.conversations.History(conversationID)
	if err != nil {
		return nil, err
	}
	// The user message just appended becomes the current turn, not history.
	prior := history[:len(history)-1]

	prompt := s.assembler.Assemble(ticket, results, prior, userMessage)

	reply, genErr := s.generator.Generate(ctx, prompt, s.temperature, s.maxTokens)
	if genErr != nil {
		if ctx.Err() != nil {
			// Caller timeout or cancellation: the user message stays, no
			// assistant message is appended for this turn.
			s.recorder.RecordFailure("generation", "chat "+conversationID, genErr)
			return nil, fmt.Errorf("message turn cancelled: %w", ctx.Err())
		}
		s.recorder.RecordFailure("generation", "chat "+conversationID, genErr)
		if _, err := s.conversations.AppendFailedMessage(conversationID, RoleAssistant, FallbackReply); err != nil {
			return nil, err
		}
		return &AgentReply{
			ChatID:             conversationID,
			Response:           FallbackReply,
			Sources:            results,
			TicketInfo:         ticket,
			ConversationLength: len(history) + 1,
			Degraded:           true,
		}, nil
	}

	if _, err := s.conversations.AppendMessage(conversationID, RoleAssistant, reply); err != nil {
		return nil, err
	}

	return &AgentReply{
		ChatID:             conversationID,
		Response:           reply,
		Sources:            results,
		TicketInfo:         ticket,
		ConversationLength: len(history) + 1,
	}, nil
}

// Conversation returns a snapshot of the conversation.
func (s *AgentService) Conversation(conversationID string) (*store.Conversation, error) {
	return s.conversations.Get(conversationID)
}

// ClearConversation empties the history but keeps the session.
func (s *AgentService) ClearConversation(conversationID string) error {
	lock := s.conversationLock(conversationID)
	lock.Lock()
	defer lock.Unlock()
	return s.conversations.Clear(conversationID)
}

// ListConversations returns summaries of all active sessions.
func (s *AgentService) ListConversations() []store.ConversationSummary {
	return s.conversations.ListAll()
}

func (s *AgentService) conversationLock(conversationID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.locks[conversationID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[conversationID] = lock
	}
	return lock
}
