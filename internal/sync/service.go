// Package sync orchestrates one social-platform synchronization run:
// resolve credentials, fetch upstream, map, and upsert into the store.
package sync

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stash-app/stash-sync/internal/creds"
	"github.com/stash-app/stash-sync/internal/model"
	"github.com/stash-app/stash-sync/internal/store"
	"github.com/stash-app/stash-sync/internal/twitter"
)

// Fetcher is the upstream client contract the orchestrator depends on.
type Fetcher interface {
	FetchSavedItems(ctx context.Context, auth twitter.AuthorizationProvider, kind model.SyncKind) ([]twitter.Item, []twitter.Author, error)
}

// ContextResolver turns a sync request into a signing context.
type ContextResolver interface {
	Resolve(ctx context.Context, req model.SyncRequest) (creds.SigningContext, error)
}

// Service runs sync invocations. Each invocation is a single sequential
// flow; no step is retried and nothing is written unless both upstream
// calls succeed.
type Service struct {
	resolver ContextResolver
	client   Fetcher
	store    store.Store
	log      zerolog.Logger
}

// NewService wires the orchestrator.
func NewService(resolver ContextResolver, client Fetcher, st store.Store, log zerolog.Logger) *Service {
	return &Service{resolver: resolver, client: client, store: st, log: log}
}

// Sync performs one run for req and returns the number of rows upserted.
// The first failing stage aborts the run; a zero-item fetch skips the store
// entirely and reports a zero count.
func (s *Service) Sync(ctx context.Context, req model.SyncRequest) (model.SyncResult, error) {
	if req.UserID == "" {
		return model.SyncResult{}, fmt.Errorf("%w: userId is required", model.ErrInvalidCredentials)
	}
	kind := req.Kind
	if kind == "" {
		kind = model.SyncBookmarks
	}
	if !kind.Valid() {
		return model.SyncResult{}, fmt.Errorf("unknown sync kind %q", kind)
	}

	sctx, err := s.resolver.Resolve(ctx, req)
	if err != nil {
		return model.SyncResult{}, fmt.Errorf("resolve credentials: %w", err)
	}

	s.log.Info().
		Str("user", req.UserID).
		Str("kind", string(kind)).
		Str("scheme", sctx.Scheme().String()).
		Msg("starting sync")

	items, authors, err := s.client.FetchSavedItems(ctx, sctx, kind)
	if err != nil {
		return model.SyncResult{}, fmt.Errorf("fetch upstream: %w", err)
	}

	rows := MapItems(items, authors, req.UserID)
	if len(rows) == 0 {
		s.log.Info().Str("user", req.UserID).Msg("sync found no items")
		return model.SyncResult{Success: true, Count: 0}, nil
	}

	if err := s.store.Saves().UpsertBatch(ctx, rows); err != nil {
		return model.SyncResult{}, fmt.Errorf("upsert saves: %w", err)
	}

	s.log.Info().Str("user", req.UserID).Int("count", len(rows)).Msg("sync complete")
	return model.SyncResult{Success: true, Count: len(rows)}, nil
}

var _ twitter.AuthorizationProvider = creds.SigningContext{}
