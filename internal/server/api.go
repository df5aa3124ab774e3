package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/incense/internal/models"
	"github.com/desertthunder/incense/internal/shared"
)

// QuoteResponse is the body of GET /api/quote.
type QuoteResponse struct {
	models.DailyQuote
	Today bool `json:"today"`
}

// SessionsResponse is the body of GET /api/sessions.
type SessionsResponse struct {
	Sessions []models.Session `json:"sessions"`
	Total    int              `json:"total"`
}

// APIHandler serves the JSON endpoints. It only reads from its [Source].
type APIHandler struct {
	source Source
	logger *log.Logger
	mux    *http.ServeMux
}

// NewAPIHandler creates an [APIHandler].
func NewAPIHandler(source Source, logger *log.Logger) *APIHandler {
	h := &APIHandler{source: source, logger: logger, mux: http.NewServeMux()}
	h.mux.HandleFunc("/api/sessions", h.sessions)
	h.mux.HandleFunc("/api/stats", h.stats)
	h.mux.HandleFunc("/api/quote", h.quote)
	return h
}

// Routes returns the HTTP routes this handler serves.
func (h *APIHandler) Routes() []string {
	return []string{"/api/sessions", "/api/stats", "/api/quote"}
}

func (h *APIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// sessions returns the log most recent first. ?limit=N truncates.
func (h *APIHandler) sessions(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sessions := h.source.Sessions()
	total := len(sessions)
	if limit > 0 && limit < total {
		sessions = sessions[:limit]
	}

	h.writeJSON(w, http.StatusOK, SessionsResponse{Sessions: sessions, Total: total})
}

func (h *APIHandler) stats(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.source.Summary())
}

// quote returns the cached quote as stored; the dashboard never picks one itself.
func (h *APIHandler) quote(w http.ResponseWriter, _ *http.Request) {
	q := h.source.DailyQuote()
	h.writeJSON(w, http.StatusOK, QuoteResponse{DailyQuote: q, Today: q.ValidFor(h.source.Today())})
}

func (h *APIHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("failed to write response", "error", err)
	}
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: limit must be a non-negative integer", shared.ErrInvalidArgument)
	}
	return n, nil
}
