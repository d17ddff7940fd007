// Package handler exposes the chat assistant and the lead-capture forms over
// a JSON HTTP API.
package handler

import (
	"errors"
	"log"
	"net/http"

	"golang.org/x/time/rate"

	"adastra/internal/domain"
	"adastra/internal/leads"
	"adastra/internal/service"
	"adastra/internal/utils"
)

// Options tunes the transport middleware.
type Options struct {
	CORSOrigins []string
	RateLimit   rate.Limit
	RateBurst   int
}

type Handler struct {
	chat    *service.ChatService
	leads   *service.LeadService
	opts    Options
	limiter *ipLimiter
}

func New(chat *service.ChatService, leads *service.LeadService, opts Options) *Handler {
	if opts.RateLimit <= 0 {
		opts.RateLimit = 1
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 5
	}
	return &Handler{
		chat:    chat,
		leads:   leads,
		opts:    opts,
		limiter: newIPLimiter(opts.RateLimit, opts.RateBurst),
	}
}

// Routes returns the API mux wrapped in the middleware chain.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/{$}", h.handleRoot)
	mux.HandleFunc("GET /api/health", h.handleHealth)

	mux.HandleFunc("POST /api/chat/sessions", h.handleStartSession)
	mux.HandleFunc("GET /api/chat/sessions/{id}", h.handleGetSession)
	mux.HandleFunc("POST /api/chat/sessions/{id}/messages", h.handleSendMessage)
	mux.HandleFunc("PUT /api/chat/sessions/{id}/input", h.handleSetInput)
	mux.HandleFunc("DELETE /api/chat/sessions/{id}", h.handleEndSession)

	mux.HandleFunc("POST /api/newsletter", h.handleNewsletter)
	mux.HandleFunc("POST /api/contact", h.handleContact)
	mux.HandleFunc("POST /api/cv", h.handleCV)
	mux.HandleFunc("POST /api/consultation", h.handleConsultation)

	return loggingMiddleware(corsMiddleware(h.opts.CORSOrigins, h.rateLimitMiddleware(mux)))
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Hello World"})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeServiceError maps service errors onto HTTP responses. failMsg is the
// generic message shown for unexpected failures.
func writeServiceError(w http.ResponseWriter, err error, failMsg string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.WriteError(w, http.StatusUnprocessableEntity, verr.Error())
	case errors.Is(err, service.ErrSessionNotFound):
		utils.WriteError(w, http.StatusNotFound, "Chat session not found")
	case errors.Is(err, leads.ErrDuplicate):
		utils.WriteError(w, http.StatusConflict, "This email is already subscribed.")
	case errors.Is(err, service.ErrStorageUnavailable):
		log.Printf("request failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Lead storage not configured")
	default:
		log.Printf("request failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, failMsg)
	}
}
