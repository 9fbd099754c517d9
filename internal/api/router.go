package api

import (
	"context"
	"time"

	"github.com/gorilla/mux"

	"github.com/stash-app/stash-sync/internal/api/recovery"
	"github.com/stash-app/stash-sync/internal/health"
	"github.com/stash-app/stash-sync/internal/store"
	syncsvc "github.com/stash-app/stash-sync/internal/sync"
)

// NewRouter creates the HTTP router with all API routes.
func NewRouter(st store.Store, service *syncsvc.Service, healthTimeout time.Duration) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware)

	syncHandler := NewSyncHandler(service)
	root.HandleFunc("/api/sync", syncHandler.Sync).Methods("POST")

	savesHandler := NewSavesHandler(st.Saves())
	root.HandleFunc("/api/users/{userId}/saves", savesHandler.ListSaves).Methods("GET")

	healthHandler := NewHealthHandler(storePinger(st), healthTimeout)
	root.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	root.HandleFunc("/api/health/db", healthHandler.CheckStoreHealth).Methods("GET")

	return root
}

// storePinger surfaces the adapter's liveness check when it has one.
func storePinger(st store.Store) health.Pinger {
	if p, ok := st.(health.Pinger); ok {
		return p
	}
	return noopPinger{}
}

type noopPinger struct{}

func (noopPinger) HealthPing(context.Context) error { return nil }
