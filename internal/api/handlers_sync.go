package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stash-app/stash-sync/internal/api/respond"
	"github.com/stash-app/stash-sync/internal/model"
	syncsvc "github.com/stash-app/stash-sync/internal/sync"
)

// SyncHandler exposes the sync orchestrator over HTTP.
type SyncHandler struct {
	svc *syncsvc.Service
}

func NewSyncHandler(svc *syncsvc.Service) *SyncHandler { return &SyncHandler{svc: svc} }

// Sync handles POST /api/sync. Local credential problems map to 400,
// upstream rejections to 502, store failures to 500.
func (h *SyncHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var req model.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}

	res, err := h.svc.Sync(r.Context(), req)
	if err != nil {
		respond.WriteError(w, statusFor(err), err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, res)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrMissingCredentials), errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrUpstreamAuth), errors.Is(err, model.ErrUpstreamFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
