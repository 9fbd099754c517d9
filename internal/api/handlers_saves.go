package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stash-app/stash-sync/internal/api/respond"
	"github.com/stash-app/stash-sync/internal/model"
	"github.com/stash-app/stash-sync/internal/store"
)

// SavesHandler serves the synced rows back to clients.
type SavesHandler struct {
	saves store.Saves
}

func NewSavesHandler(saves store.Saves) *SavesHandler { return &SavesHandler{saves: saves} }

// ListSaves handles GET /api/users/{userId}/saves. An optional ?source=
// query filters by source tag (e.g. twitter_sync).
func (h *SavesHandler) ListSaves(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if userID == "" {
		respond.WriteBadRequest(w, "userId required")
		return
	}
	source := r.URL.Query().Get("source")

	rows, err := h.saves.ListByUser(r.Context(), userID, source)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	if rows == nil {
		rows = []*model.Save{}
	}
	respond.WriteJSON(w, http.StatusOK, rows)
}
