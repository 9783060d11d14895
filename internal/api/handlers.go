package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/charanhu/support-agent/internal/core"
	"github.com/charanhu/support-agent/internal/store"
	"github.com/charanhu/support-agent/internal/tickets"
)

type APIHandler struct {
	agent        *core.AgentService
	kb           *core.KnowledgeBase
	retriever    *core.Retriever
	ticketSystem *tickets.System

	dataFolder     string
	requestTimeout time.Duration
}

func NewAPIHandler(agent *core.AgentService, kb *core.KnowledgeBase, retriever *core.Retriever,
	ticketSystem *tickets.System, dataFolder string, requestTimeout time.Duration) *APIHandler {
	return &APIHandler{
		agent:          agent,
		kb:             kb,
		retriever:      retriever,
		ticketSystem:   ticketSystem,
		dataFolder:     dataFolder,
		requestTimeout: requestTimeout,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrInvalidArgument), errors.Is(err, store.ErrEmptyCustomerName):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrConversationNotFound), errors.Is(err, tickets.ErrTicketNotFound):
		status = http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// HealthHandler reports service status along with index and session counts.
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "healthy",
		"timestamp":    time.Now().Format(time.RFC3339),
		"kb_status":    h.kb.Stats(),
		"active_chats": len(h.agent.ListConversations()),
	})
}

type InitializeKBRequest struct {
	ClearExisting bool `json:"clear_existing"`
}

type InitializeKBResponse struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	DocsLoaded     int    `json:"docs_loaded"`
	DocsChunked    int    `json:"docs_chunked"`
	CollectionSize int    `json:"collection_size"`
}

// InitializeKBHandler loads the data folder and (re)builds the semantic index.
func (h *APIHandler) InitializeKBHandler(w http.ResponseWriter, r *http.Request) {
	// An empty body means default options.
	var req InitializeKBRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return
	}

	if req.ClearExisting {
		if err := h.kb.Clear(r.Context()); err != nil {
			log.Printf("Error clearing knowledge base: %v", err)
			writeError(w, err)
			return
		}
	}

	docs, err := core.LoadDocumentsFromFolder(h.dataFolder)
	if err != nil {
		log.Printf("Error loading documents: %v", err)
		writeError(w, err)
		return
	}
	if len(docs) == 0 {
		writeJSON(w, http.StatusOK, InitializeKBResponse{
			Status:  "warning",
			Message: "No documents found in data folder",
		})
		return
	}

	count, err := h.kb.Ingest(r.Context(), docs)
	if err != nil {
		log.Printf("Error ingesting documents: %v", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, InitializeKBResponse{
		Status:         "success",
		Message:        "Knowledge base initialized successfully",
		DocsLoaded:     len(docs),
		DocsChunked:    count,
		CollectionSize: h.kb.Stats().ChunkCount,
	})
}

// KBInfoHandler returns the semantic index statistics.
func (h *APIHandler) KBInfoHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.kb.Stats())
}

type SearchKBRequest struct {
	Query string `json:"query"`
}

type SearchKBResponse struct {
	Query        string              `json:"query"`
	ResultsCount int                 `json:"results_count"`
	Results      []core.SearchResult `json:"results"`
}

// SearchKBHandler runs a direct knowledge-base search.
func (h *APIHandler) SearchKBHandler(w http.ResponseWriter, r *http.Request) {
	var req SearchKBRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.Query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query cannot be empty"})
		return
	}

	results, err := h.retriever.Search(r.Context(), req.Query)
	if err != nil {
		log.Printf("Error searching knowledge base: %v", err)
		writeError(w, err)
		return
	}
	if results == nil {
		results = []core.SearchResult{}
	}

	writeJSON(w, http.StatusOK, SearchKBResponse{
		Query:        req.Query,
		ResultsCount: len(results),
		Results:      results,
	})
}

type CreateChatRequest struct {
	CustomerName string `json:"customer_name"`
	TicketID     string `json:"ticket_id,omitempty"`
}

type CreateChatResponse struct {
	ChatID       string `json:"chat_id"`
	CustomerName string `json:"customer_name"`
	TicketID     string `json:"ticket_id,omitempty"`
	Message      string `json:"message"`
	Timestamp    string `json:"timestamp"`
}

// CreateChatHandler opens a new chat session.
func (h *APIHandler) CreateChatHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return
	}

	conv, greeting, err := h.agent.CreateConversation(req.CustomerName, req.TicketID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, CreateChatResponse{
		ChatID:       conv.ID,
		CustomerName: conv.CustomerName,
		TicketID:     conv.TicketID,
		Message:      greeting,
		Timestamp:    conv.CreatedAt.Format(time.RFC3339),
	})
}

type SendMessageRequest struct {
	UserMessage string `json:"user_message"`
}

type SendMessageResponse struct {
	ChatID        string              `json:"chat_id"`
	AgentResponse string              `json:"agent_response"`
	KBSources     []core.SearchResult `json:"kb_sources"`
	TicketInfo    *tickets.Ticket     `json:"ticket_info,omitempty"`
	Degraded      bool                `json:"degraded,omitempty"`
	Timestamp     string              `json:"timestamp"`
}

// SendMessageHandler runs one full message turn, bounded by the configured
// request timeout.
func (h *APIHandler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	reply, err := h.agent.HandleMessage(ctx, chatID, req.UserMessage)
	if err != nil {
		log.Printf("Error handling message for chat %s: %v", chatID, err)
		writeError(w, err)
		return
	}
	if reply.Sources == nil {
		reply.Sources = []core.SearchResult{}
	}

	writeJSON(w, http.StatusOK, SendMessageResponse{
		ChatID:        reply.ChatID,
		AgentResponse: reply.Response,
		KBSources:     reply.Sources,
		TicketInfo:    reply.TicketInfo,
		Degraded:      reply.Degraded,
		Timestamp:     time.Now().Format(time.RFC3339),
	})
}

type ChatHistoryResponse struct {
	ChatID       string          `json:"chat_id"`
	CustomerName string          `json:"customer_name"`
	TicketID     string          `json:"ticket_id,omitempty"`
	CreatedAt    string          `json:"created_at"`
	Messages     []store.Message `json:"messages"`
}

// ChatHistoryHandler returns the messages of a chat session.
func (h *APIHandler) ChatHistoryHandler(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")

	conv, err := h.agent.Conversation(chatID)
	if err != nil {
		writeError(w, err)
		return
	}
	if conv.Messages == nil {
		conv.Messages = []store.Message{}
	}

	writeJSON(w, http.StatusOK, ChatHistoryResponse{
		ChatID:       conv.ID,
		CustomerName: conv.CustomerName,
		TicketID:     conv.TicketID,
		CreatedAt:    conv.CreatedAt.Format(time.RFC3339),
		Messages:     conv.Messages,
	})
}

// ClearChatHandler empties a chat's history but keeps the session alive.
func (h *APIHandler) ClearChatHandler(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")

	if err := h.agent.ClearConversation(chatID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Chat history cleared for " + chatID,
	})
}

// ListChatsHandler lists active chat sessions.
func (h *APIHandler) ListChatsHandler(w http.ResponseWriter, r *http.Request) {
	summaries := h.agent.ListConversations()
	writeJSON(w, http.StatusOK, map[string]any{
		"total": len(summaries),
		"chats": summaries,
	})
}

// GetTicketHandler returns one ticket.
func (h *APIHandler) GetTicketHandler(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticketID")

	ticket, err := h.ticketSystem.GetTicket(ticketID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

// ListTicketsHandler returns all tickets, optionally filtered by ?q= search.
func (h *APIHandler) ListTicketsHandler(w http.ResponseWriter, r *http.Request) {
	var all []tickets.Ticket
	if query := r.URL.Query().Get("q"); query != "" {
		all = h.ticketSystem.SearchTickets(query)
	} else {
		all = h.ticketSystem.AllTickets()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":   len(all),
		"tickets": all,
	})
}

type CreateTicketRequest struct {
	CustomerName string `json:"customer_name"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category,omitempty"`
	Priority     string `json:"priority,omitempty"`
}

// CreateTicketHandler registers a new ticket.
func (h *APIHandler) CreateTicketHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.CustomerName == "" || req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "customer_name and title are required"})
		return
	}

	ticket := h.ticketSystem.CreateTicket(req.CustomerName, req.Title, req.Description, req.Category, req.Priority)
	writeJSON(w, http.StatusCreated, ticket)
}

type UpdateTicketStatusRequest struct {
	Status string `json:"status"`
}

// UpdateTicketStatusHandler changes a ticket's status.
func (h *APIHandler) UpdateTicketStatusHandler(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticketID")

	var req UpdateTicketStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return
	}
	switch req.Status {
	case tickets.StatusOpen, tickets.StatusInProgress, tickets.StatusResolved, tickets.StatusClosed:
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status: " + req.Status})
		return
	}

	if err := h.ticketSystem.UpdateStatus(ticketID, req.Status); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
