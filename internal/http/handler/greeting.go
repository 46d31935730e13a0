package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/mikorail/user-notification-ts/internal/service"
)

// GreetingRunner abstracts the sweep operations for handlers.
type GreetingRunner interface {
	RunSweep(ctx context.Context, now time.Time) (service.SweepResult, error)
}

// DeliveredLister abstracts the delivered-message listing.
type DeliveredLister interface {
	ListDelivered(ctx context.Context, page, limit int) (service.DeliveredMessagesResult, error)
}

// GreetingHandler exposes the manual sweep trigger and delivered-message
// listing.
type GreetingHandler struct {
	runner GreetingRunner
	lister DeliveredLister
}

// NewGreetingHandler builds a GreetingHandler.
func NewGreetingHandler(runner GreetingRunner, lister DeliveredLister) *GreetingHandler {
	return &GreetingHandler{runner: runner, lister: lister}
}

// Sweep handles POST /api/sweep: one synchronous generate+dispatch pass.
func (h *GreetingHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	result, err := h.runner.RunSweep(r.Context(), time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ListDelivered handles GET /api/messages/sent.
func (h *GreetingHandler) ListDelivered(w http.ResponseWriter, r *http.Request) {
	page := parseIntDefault(r.URL.Query().Get("page"), 1)
	limit := parseIntDefault(r.URL.Query().Get("limit"), 20)

	result, err := h.lister.ListDelivered(r.Context(), page, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func parseIntDefault(value string, def int) int {
	if value == "" {
		return def
	}
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return def
}
