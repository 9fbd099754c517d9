// Package syncservice wires and runs the stash-sync HTTP service.
package syncservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/stash-app/stash-sync/internal/api"
	"github.com/stash-app/stash-sync/internal/config"
	"github.com/stash-app/stash-sync/internal/creds"
	"github.com/stash-app/stash-sync/internal/factory"
	"github.com/stash-app/stash-sync/internal/logger"
	"github.com/stash-app/stash-sync/internal/scheduler"
	"github.com/stash-app/stash-sync/internal/store"
	syncsvc "github.com/stash-app/stash-sync/internal/sync"
	"github.com/stash-app/stash-sync/internal/twitter"
)

// Run starts the sync service HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("stash-sync")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Str("upstream", cfg.UpstreamBaseURL).
		Str("schedule", cfg.SyncSchedule).
		Msg("Sync service starting")

	// Cancellable root context bound to SIGINT/SIGTERM.
	ctx, stop := newServerContext()
	defer stop()

	st, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Store adapter unavailable")
		return err
	}

	service := newSyncService(st, cfg, log)
	router := api.NewRouter(st, service, cfg.HealthProbeTimeout)

	if cfg.SyncSchedule != "" {
		sched := scheduler.New(ctx, service, st.Credentials(), log)
		if err := sched.Start(cfg.SyncSchedule); err != nil {
			log.Error().Stack().Err(err).Msg("Failed to start sync scheduler")
			return err
		}
		defer sched.Stop()
	}

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// newSyncService assembles resolver, upstream client, and orchestrator.
func newSyncService(st store.Store, cfg *config.Config, log zerolog.Logger) *syncsvc.Service {
	resolver := creds.NewResolver(st.Credentials())
	client := twitter.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	return syncsvc.NewService(resolver, client, st, log)
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
