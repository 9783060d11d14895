package tickets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTicket(t *testing.T) {
	s := NewSystem()

	ticket, err := s.GetTicket("TICKET-001")
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", ticket.CustomerName)
	assert.Equal(t, StatusOpen, ticket.Status)
	assert.Equal(t, PriorityHigh, ticket.Priority)

	_, err = s.GetTicket("TICKET-999")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestGetTicket_ReturnsCopy(t *testing.T) {
	s := NewSystem()

	ticket, err := s.GetTicket("TICKET-001")
	require.NoError(t, err)
	ticket.Status = StatusClosed

	again, err := s.GetTicket("TICKET-001")
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, again.Status)
}

func TestCreateTicket(t *testing.T) {
	s := NewSystem()

	ticket := s.CreateTicket("Dana White", "Export stuck", "CSV export never finishes.", "", "")
	assert.Equal(t, "TICKET-004", ticket.ID)
	assert.Equal(t, StatusOpen, ticket.Status)
	assert.Equal(t, PriorityMedium, ticket.Priority)
	assert.Equal(t, "general", ticket.Category)

	got, err := s.GetTicket(ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "Export stuck", got.Title)
}

func TestUpdateStatus(t *testing.T) {
	s := NewSystem()

	require.NoError(t, s.UpdateStatus("TICKET-001", StatusInProgress))
	ticket, err := s.GetTicket("TICKET-001")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, ticket.Status)

	assert.ErrorIs(t, s.UpdateStatus("TICKET-999", StatusClosed), ErrTicketNotFound)
}

func TestSearchTickets(t *testing.T) {
	s := NewSystem()

	results := s.SearchTickets("invoice")
	require.Len(t, results, 1)
	assert.Equal(t, "TICKET-003", results[0].ID)

	assert.Empty(t, s.SearchTickets("nonexistent topic"))
}

func TestCustomerTickets(t *testing.T) {
	s := NewSystem()

	results := s.CustomerTickets("alice johnson")
	require.Len(t, results, 1)
	assert.Equal(t, "TICKET-001", results[0].ID)
}

func TestOpenTickets(t *testing.T) {
	s := NewSystem()

	open := s.OpenTickets()
	require.Len(t, open, 2)
	for _, ticket := range open {
		assert.Equal(t, StatusOpen, ticket.Status)
	}
}

func TestAddNote(t *testing.T) {
	s := NewSystem()

	require.NoError(t, s.AddNote("TICKET-002", "Customer retried with smaller file."))
	ticket, err := s.GetTicket("TICKET-002")
	require.NoError(t, err)
	require.Len(t, ticket.Notes, 1)
	assert.Equal(t, "Customer retried with smaller file.", ticket.Notes[0].Text)

	assert.ErrorIs(t, s.AddNote("TICKET-999", "x"), ErrTicketNotFound)
}

func TestSummary(t *testing.T) {
	s := NewSystem()

	summary, err := s.Summary("TICKET-001")
	require.NoError(t, err)
	assert.Contains(t, summary, "Ticket ID: TICKET-001")
	assert.Contains(t, summary, "Status: open")
	assert.Contains(t, summary, "Customer: Alice Johnson")

	_, err = s.Summary("TICKET-999")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestAllTickets_Ordered(t *testing.T) {
	s := NewSystem()

	all := s.AllTickets()
	require.Len(t, all, 3)
	assert.Equal(t, "TICKET-001", all[0].ID)
	assert.Equal(t, "TICKET-003", all[2].ID)
}
