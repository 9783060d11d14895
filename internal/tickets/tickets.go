// Package tickets is an in-memory stand-in for an external issue tracker.
// The agent only ever reads tickets; mutation operations exist for the
// operator API and tests.
package tickets

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"
)

// ErrTicketNotFound is returned for unknown ticket ids.
var ErrTicketNotFound = errors.New("ticket not found")

// Ticket statuses.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusClosed     = "closed"
)

// Ticket priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

type Note struct {
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
}

type Ticket struct {
	ID           string `json:"ticket_id"`
	CustomerName string `json:"customer_name"`
	Status       string `json:"status"`
	Priority     string `json:"priority"`
	CreatedDate  string `json:"created_date"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	AssignedTo   string `json:"assigned_to"`
	Notes        []Note `json:"notes,omitempty"`
}

// System manages customer support tickets (simulates Jira/similar systems).
type System struct {
	mu      sync.RWMutex
	tickets map[string]*Ticket
}

func NewSystem() *System {
	s := &System{tickets: make(map[string]*Ticket)}
	for _, t := range seedTickets() {
		ticket := t
		s.tickets[ticket.ID] = &ticket
	}
	log.Printf("Ticket system initialized with %d tickets", len(s.tickets))
	return s
}

func seedTickets() []Ticket {
	return []Ticket{
		{
			ID:           "TICKET-001",
			CustomerName: "Alice Johnson",
			Status:       StatusOpen,
			Priority:     PriorityHigh,
			CreatedDate:  "2024-11-25",
			Title:        "Cannot access account",
			Description:  "User unable to log in. Getting 'Invalid credentials' error.",
			Category:     "account",
			AssignedTo:   "Support Team",
		},
		{
			ID:           "TICKET-002",
			CustomerName: "Bob Smith",
			Status:       StatusOpen,
			Priority:     PriorityMedium,
			CreatedDate:  "2024-11-28",
			Title:        "Product not working as expected",
			Description:  "Application crashes when uploading large files.",
			Category:     "product",
			AssignedTo:   "Support Team",
		},
		{
			ID:           "TICKET-003",
			CustomerName: "Charlie Brown",
			Status:       StatusResolved,
			Priority:     PriorityLow,
			CreatedDate:  "2024-11-20",
			Title:        "Billing inquiry",
			Description:  "Question about recent invoice charges.",
			Category:     "billing",
			AssignedTo:   "Billing Team",
		},
	}
}

// GetTicket retrieves a ticket by id.
func (s *System) GetTicket(ticketID string) (*Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ticket, ok := s.tickets[ticketID]
	if !ok {
		return nil, fmt.Errorf("ticket %s: %w", ticketID, ErrTicketNotFound)
	}
	copied := *ticket
	copied.Notes = append([]Note(nil), ticket.Notes...)
	return &copied, nil
}

// CreateTicket registers a new ticket and returns it.
func (s *System) CreateTicket(customerName, title, description, category, priority string) *Ticket {
	if category == "" {
		category = "general"
	}
	if priority == "" {
		priority = PriorityMedium
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ticket := &Ticket{
		ID:           fmt.Sprintf("TICKET-%03d", len(s.tickets)+1),
		CustomerName: customerName,
		Status:       StatusOpen,
		Priority:     priority,
		CreatedDate:  time.Now().Format("2006-01-02"),
		Title:        title,
		Description:  description,
		Category:     category,
		AssignedTo:   "Support Team",
	}
	s.tickets[ticket.ID] = ticket
	log.Printf("Created new ticket: %s", ticket.ID)

	copied := *ticket
	return &copied
}

// UpdateStatus changes a ticket's status.
func (s *System) UpdateStatus(ticketID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[ticketID]
	if !ok {
		return fmt.Errorf("ticket %s: %w", ticketID, ErrTicketNotFound)
	}
	ticket.Status = status
	log.Printf("Updated ticket %s status to %s", ticketID, status)
	return nil
}

// AddNote appends a note to a ticket.
func (s *System) AddNote(ticketID, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[ticketID]
	if !ok {
		return fmt.Errorf("ticket %s: %w", ticketID, ErrTicketNotFound)
	}
	ticket.Notes = append(ticket.Notes, Note{Timestamp: time.Now(), Text: note})
	return nil
}

// CustomerTickets returns every ticket belonging to the named customer.
func (s *System) CustomerTickets(customerName string) []Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Ticket
	for _, t := range s.tickets {
		if strings.EqualFold(t.CustomerName, customerName) {
			result = append(result, *t)
		}
	}
	sortTickets(result)
	return result
}

// OpenTickets returns every ticket with status open.
func (s *System) OpenTickets() []Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Ticket
	for _, t := range s.tickets {
		if t.Status == StatusOpen {
			result = append(result, *t)
		}
	}
	sortTickets(result)
	return result
}

// SearchTickets matches the query against ticket titles and descriptions.
func (s *System) SearchTickets(query string) []Ticket {
	queryLower := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Ticket
	for _, t := range s.tickets {
		if strings.Contains(strings.ToLower(t.Title), queryLower) ||
			strings.Contains(strings.ToLower(t.Description), queryLower) {
			result = append(result, *t)
		}
	}
	sortTickets(result)
	return result
}

// AllTickets returns every ticket, ordered by id.
func (s *System) AllTickets() []Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		result = append(result, *t)
	}
	sortTickets(result)
	return result
}

// Summary returns a formatted block describing the ticket, suitable as
// prompt context.
func (s *System) Summary(ticketID string) (string, error) {
	ticket, err := s.GetTicket(ticketID)
	if err != nil {
		return "", err
	}

	summary := fmt.Sprintf(`Ticket ID: %s
Title: %s
Status: %s
Priority: %s
Category: %s
Customer: %s
Created: %s
Description: %s
Assigned To: %s`,
		ticket.ID, ticket.Title, ticket.Status, ticket.Priority, ticket.Category,
		ticket.CustomerName, ticket.CreatedDate, ticket.Description, ticket.AssignedTo)
	return summary, nil
}

func sortTickets(tickets []Ticket) {
	sort.Slice(tickets, func(i, j int) bool { return tickets[i].ID < tickets[j].ID })
}
