// Package scheduler runs periodic background syncs for users with stored
// platform credentials.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/stash-app/stash-sync/internal/creds"
	"github.com/stash-app/stash-sync/internal/model"
	"github.com/stash-app/stash-sync/internal/store"
	syncsvc "github.com/stash-app/stash-sync/internal/sync"
)

const runTimeout = 10 * time.Minute

// Scheduler triggers a bookmarks sync for every user with a stored
// credential on each cron tick. Per-user failures are logged and do not
// stop the pass.
type Scheduler struct {
	ctx   context.Context
	cron  *cron.Cron
	svc   *syncsvc.Service
	creds store.Credentials
	log   zerolog.Logger
}

// New builds a scheduler; Start registers spec and begins ticking.
func New(ctx context.Context, svc *syncsvc.Service, credentials store.Credentials, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		ctx:   ctx,
		cron:  cron.New(cron.WithLocation(time.UTC)),
		svc:   svc,
		creds: credentials,
		log:   log,
	}
}

// Start schedules the sync pass with the given cron expression.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runPass); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the cron loop; running jobs finish on their own.
func (s *Scheduler) Stop() { s.cron.Stop() }

func (s *Scheduler) runPass() {
	ctx, cancel := context.WithTimeout(s.ctx, runTimeout)
	defer cancel()

	users, err := s.creds.ListUsers(ctx, creds.Provider)
	if err != nil {
		s.log.Error().Stack().Err(err).Msg("scheduled sync: listing users failed")
		return
	}

	for _, userID := range users {
		res, err := s.svc.Sync(ctx, model.SyncRequest{UserID: userID, Kind: model.SyncBookmarks})
		if err != nil {
			s.log.Warn().Err(err).Str("user", userID).Msg("scheduled sync failed")
			continue
		}
		s.log.Info().Str("user", userID).Int("count", res.Count).Msg("scheduled sync complete")
	}
}
