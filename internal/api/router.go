package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(apiHandler *APIHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling

	r.Get("/health", apiHandler.HealthHandler)

	// All API routes live under /api
	r.Route("/api", func(r chi.Router) {
		// Knowledge base routes
		r.Route("/kb", func(r chi.Router) {
			r.Post("/initialize", apiHandler.InitializeKBHandler)
			r.Get("/info", apiHandler.KBInfoHandler)
			r.Post("/search", apiHandler.SearchKBHandler)
		})

		// Chat routes
		r.Post("/chat/create", apiHandler.CreateChatHandler)
		r.Route("/chat/{chatID}", func(r chi.Router) {
			r.Post("/message", apiHandler.SendMessageHandler)
			r.Get("/history", apiHandler.ChatHistoryHandler)
			r.Get("/clear", apiHandler.ClearChatHandler)
		})
		r.Get("/chats", apiHandler.ListChatsHandler)

		// Ticket routes
		r.Route("/tickets", func(r chi.Router) {
			r.Get("/", apiHandler.ListTicketsHandler)
			r.Post("/", apiHandler.CreateTicketHandler)
			r.Get("/{ticketID}", apiHandler.GetTicketHandler)
			r.Post("/{ticketID}/status", apiHandler.UpdateTicketStatusHandler)
		})
	})

	return r
}
