package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/charanhu/support-agent/internal/store"
	"github.com/charanhu/support-agent/internal/tickets"
)

// stubEmbedder maps equal texts to equal vectors, so self-retrieval of an
// ingested chunk scores a perfect similarity.
type stubEmbedder struct {
	mu        sync.Mutex
	dimension int
	err       error
	failAfter int // fail once this many calls have succeeded; 0 disables
	calls     int
}

func newStubEmbedder(dimension int) *stubEmbedder {
	return &stubEmbedder{dimension: dimension}
}

func (e *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.err != nil {
		return nil, e.err
	}
	if e.failAfter > 0 && e.calls >= e.failAfter {
		return nil, &EmbeddingError{Err: fmt.Errorf("stub embedder tripped after %d calls", e.calls)}
	}
	e.calls++

	vec := make([]float32, e.dimension)
	for i, r := range text {
		vec[i%e.dimension] += float32(r)
	}
	return vec, nil
}

// fakeChunkStore is an in-memory ChunkStore.
type fakeChunkStore struct {
	mu     sync.Mutex
	chunks []store.ChunkRecord
	err    error
}

func (f *fakeChunkStore) ReplaceChunks(_ context.Context, chunks []store.ChunkRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.chunks = append([]store.ChunkRecord(nil), chunks...)
	return nil
}

func (f *fakeChunkStore) LoadChunks(_ context.Context) ([]store.ChunkRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]store.ChunkRecord(nil), f.chunks...), nil
}

func (f *fakeChunkStore) ClearChunks(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.chunks = nil
	return nil
}

// stubGenerator returns a fixed reply, or an error when told to fail.
type stubGenerator struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts [][]PromptMessage
}

func (g *stubGenerator) Generate(_ context.Context, messages []PromptMessage, _ float32, _ int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, append([]PromptMessage(nil), messages...))
	if g.err != nil {
		return "", g.err
	}
	if g.reply == "" {
		return "stub reply", nil
	}
	return g.reply, nil
}

func (g *stubGenerator) lastPrompt() []PromptMessage {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.prompts) == 0 {
		return nil
	}
	return g.prompts[len(g.prompts)-1]
}

// stubTicketLookup serves tickets from a map.
type stubTicketLookup struct {
	tickets map[string]*tickets.Ticket
}

func (s *stubTicketLookup) GetTicket(ticketID string) (*tickets.Ticket, error) {
	t, ok := s.tickets[ticketID]
	if !ok {
		return nil, fmt.Errorf("ticket %s: %w", ticketID, tickets.ErrTicketNotFound)
	}
	return t, nil
}

// recordedFailure captures RecordFailure calls for assertions.
type recordingRecorder struct {
	mu       sync.Mutex
	failures []string
}

func (r *recordingRecorder) RecordFailure(kind string, context string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, kind)
}

func (r *recordingRecorder) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.failures...)
}
