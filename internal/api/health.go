package api

import (
	"context"
	"net/http"
	"time"

	"github.com/stash-app/stash-sync/internal/api/respond"
	"github.com/stash-app/stash-sync/internal/health"
)

// HealthHandler reports service and store liveness.
type HealthHandler struct {
	store   health.Pinger
	timeout time.Duration
}

func NewHealthHandler(store health.Pinger, timeout time.Duration) *HealthHandler {
	return &HealthHandler{store: store, timeout: timeout}
}

// CheckHealth handles GET /api/health.
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// CheckStoreHealth handles GET /api/health/db by pinging the store.
func (h *HealthHandler) CheckStoreHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.store.HealthPing(ctx); err != nil {
		respond.WriteError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
