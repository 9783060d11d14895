package store

import "time"

// Message is a single turn in a conversation. Immutable once appended.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	// Failed marks an assistant turn that fell back to the canned reply
	// because the generation gateway errored.
	Failed bool `json:"failed,omitempty"`
}

// Conversation holds the per-session state for one customer chat.
type Conversation struct {
	ID           string    `json:"chat_id"`
	CustomerName string    `json:"customer_name"`
	TicketID     string    `json:"ticket_id,omitempty"`
	Messages     []Message `json:"messages"`
	CreatedAt    time.Time `json:"created_at"`
}

// ConversationSummary is the read-only listing shape for active chats.
type ConversationSummary struct {
	ID           string    `json:"chat_id"`
	CustomerName string    `json:"customer_name"`
	TicketID     string    `json:"ticket_id,omitempty"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// ChunkRecord is a stored knowledge-base chunk with its embedding.
// Records are immutable once written; the index replaces them wholesale.
type ChunkRecord struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	Source     string    `json:"source"`
	Page       int       `json:"page"`
	ChunkIndex int       `json:"chunk_index"`
	Embedding  []float32 `json:"-"`
}
