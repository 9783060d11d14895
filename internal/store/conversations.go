package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrConversationNotFound is returned for unknown conversation ids.
	ErrConversationNotFound = errors.New("conversation not found")
	// ErrEmptyCustomerName is returned when a conversation is created
	// without a customer name.
	ErrEmptyCustomerName = errors.New("customer name cannot be empty")
)

// ConversationStore holds all active chat sessions in memory. Sessions do
// not survive a restart. History length is capped: once a conversation
// exceeds maxHistory messages the oldest ones are evicted first.
type ConversationStore struct {
	mu            sync.RWMutex
	conversations map[string]*Conversation
	maxHistory    int
}

func NewConversationStore(maxHistory int) *ConversationStore {
	if maxHistory <= 0 {
		maxHistory = 50
	}
	return &ConversationStore{
		conversations: make(map[string]*Conversation),
		maxHistory:    maxHistory,
	}
}

// MaxHistory returns the configured history cap.
func (s *ConversationStore) MaxHistory() int {
	return s.maxHistory
}

// Create registers a new conversation and returns a copy of it.
func (s *ConversationStore) Create(customerName, ticketID string) (*Conversation, error) {
	if customerName == "" {
		return nil, ErrEmptyCustomerName
	}

	conv := &Conversation{
		ID:           uuid.NewString(),
		CustomerName: customerName,
		TicketID:     ticketID,
		CreatedAt:    time.Now(),
	}

	s.mu.Lock()
	s.conversations[conv.ID] = conv
	s.mu.Unlock()

	copied := *conv
	return &copied, nil
}

// Get returns a snapshot of the conversation metadata and messages.
func (s *ConversationStore) Get(conversationID string) (*Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[conversationID]
	if !ok {
		return nil, fmt.Errorf("conversation %s: %w", conversationID, ErrConversationNotFound)
	}

	copied := *conv
	copied.Messages = append([]Message(nil), conv.Messages...)
	return &copied, nil
}

// AppendMessage adds a message to the conversation, evicting the oldest
// messages once the history cap is exceeded.
func (s *ConversationStore) AppendMessage(conversationID, role, content string) (*Message, error) {
	return s.appendMessage(conversationID, role, content, false)
}

// AppendFailedMessage records an assistant turn that degraded to the
// fallback reply.
func (s *ConversationStore) AppendFailedMessage(conversationID, role, content string) (*Message, error) {
	return s.appendMessage(conversationID, role, content, true)
}

func (s *ConversationStore) appendMessage(conversationID, role, content string, failed bool) (*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[conversationID]
	if !ok {
		return nil, fmt.Errorf("conversation %s: %w", conversationID, ErrConversationNotFound)
	}

	msg := Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
		Failed:    failed,
	}
	conv.Messages = append(conv.Messages, msg)

	if excess := len(conv.Messages) - s.maxHistory; excess > 0 {
		conv.Messages = append([]Message(nil), conv.Messages[excess:]...)
	}

	return &msg, nil
}

// History returns the messages of a conversation, oldest first.
func (s *ConversationStore) History(conversationID string) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[conversationID]
	if !ok {
		return nil, fmt.Errorf("conversation %s: %w", conversationID, ErrConversationNotFound)
	}
	return append([]Message(nil), conv.Messages...), nil
}

// Clear empties the message history but keeps the conversation metadata.
func (s *ConversationStore) Clear(conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[conversationID]
	if !ok {
		return fmt.Errorf("conversation %s: %w", conversationID, ErrConversationNotFound)
	}
	conv.Messages = nil
	return nil
}

// Delete removes the conversation entirely.
func (s *ConversationStore) Delete(conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[conversationID]; !ok {
		return fmt.Errorf("conversation %s: %w", conversationID, ErrConversationNotFound)
	}
	delete(s.conversations, conversationID)
	return nil
}

// ListAll returns summaries of every conversation, newest first.
func (s *ConversationStore) ListAll() []ConversationSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]ConversationSummary, 0, len(s.conversations))
	for _, conv := range s.conversations {
		summaries = append(summaries, ConversationSummary{
			ID:           conv.ID,
			CustomerName: conv.CustomerName,
			TicketID:     conv.TicketID,
			MessageCount: len(conv.Messages),
			CreatedAt:    conv.CreatedAt,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries
}
