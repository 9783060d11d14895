package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationStore_Create(t *testing.T) {
	s := NewConversationStore(50)

	conv, err := s.Create("Alice Johnson", "TICKET-001")
	require.NoError(t, err)
	assert.NotEmpty(t, conv.ID)
	assert.Equal(t, "Alice Johnson", conv.CustomerName)
	assert.Equal(t, "TICKET-001", conv.TicketID)
	assert.Empty(t, conv.Messages)

	second, err := s.Create("Bob Smith", "")
	require.NoError(t, err)
	assert.NotEqual(t, conv.ID, second.ID)
}

func TestConversationStore_Create_EmptyName(t *testing.T) {
	s := NewConversationStore(50)
	_, err := s.Create("", "")
	assert.ErrorIs(t, err, ErrEmptyCustomerName)
}

func TestConversationStore_AppendAndHistory(t *testing.T) {
	s := NewConversationStore(50)
	conv, err := s.Create("Alice", "")
	require.NoError(t, err)

	_, err = s.AppendMessage(conv.ID, "user", "hello")
	require.NoError(t, err)
	_, err = s.AppendMessage(conv.ID, "assistant", "hi there")
	require.NoError(t, err)

	history, err := s.History(conv.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "hello", history[0].Content)
	assert.Equal(t, "assistant", history[1].Role)
	assert.False(t, history[1].Timestamp.Before(history[0].Timestamp))
}

func TestConversationStore_UnknownID(t *testing.T) {
	s := NewConversationStore(50)

	_, err := s.AppendMessage("missing", "user", "x")
	assert.ErrorIs(t, err, ErrConversationNotFound)

	_, err = s.History("missing")
	assert.ErrorIs(t, err, ErrConversationNotFound)

	assert.ErrorIs(t, s.Clear("missing"), ErrConversationNotFound)
	assert.ErrorIs(t, s.Delete("missing"), ErrConversationNotFound)
}

func TestConversationStore_HistoryCapFIFO(t *testing.T) {
	const maxHistory = 10
	s := NewConversationStore(maxHistory)
	conv, err := s.Create("Alice", "")
	require.NoError(t, err)

	total := maxHistory + 5
	for i := 0; i < total; i++ {
		_, err := s.AppendMessage(conv.ID, "user", fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}

	history, err := s.History(conv.ID)
	require.NoError(t, err)
	require.Len(t, history, maxHistory)

	// The survivors are exactly the newest maxHistory messages.
	for i, msg := range history {
		assert.Equal(t, fmt.Sprintf("message %d", total-maxHistory+i), msg.Content)
	}
}

func TestConversationStore_ClearKeepsMetadata(t *testing.T) {
	s := NewConversationStore(50)
	conv, err := s.Create("Alice", "TICKET-002")
	require.NoError(t, err)

	_, err = s.AppendMessage(conv.ID, "user", "hello")
	require.NoError(t, err)

	require.NoError(t, s.Clear(conv.ID))

	got, err := s.Get(conv.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Messages)
	assert.Equal(t, "Alice", got.CustomerName)
	assert.Equal(t, "TICKET-002", got.TicketID)
}

func TestConversationStore_Delete(t *testing.T) {
	s := NewConversationStore(50)
	conv, err := s.Create("Alice", "")
	require.NoError(t, err)

	require.NoError(t, s.Delete(conv.ID))

	_, err = s.Get(conv.ID)
	assert.True(t, errors.Is(err, ErrConversationNotFound))
}

func TestConversationStore_ListAll(t *testing.T) {
	s := NewConversationStore(50)
	a, err := s.Create("Alice", "TICKET-001")
	require.NoError(t, err)
	b, err := s.Create("Bob", "")
	require.NoError(t, err)

	_, err = s.AppendMessage(a.ID, "user", "hi")
	require.NoError(t, err)

	summaries := s.ListAll()
	require.Len(t, summaries, 2)

	byID := map[string]ConversationSummary{}
	for _, sum := range summaries {
		byID[sum.ID] = sum
	}
	assert.Equal(t, 1, byID[a.ID].MessageCount)
	assert.Equal(t, 0, byID[b.ID].MessageCount)
	assert.Equal(t, "TICKET-001", byID[a.ID].TicketID)
}

func TestConversationStore_AppendFailedMessage(t *testing.T) {
	s := NewConversationStore(50)
	conv, err := s.Create("Alice", "")
	require.NoError(t, err)

	_, err = s.AppendFailedMessage(conv.ID, "assistant", "fallback")
	require.NoError(t, err)

	history, err := s.History(conv.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].Failed)
}
