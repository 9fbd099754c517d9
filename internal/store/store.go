package store

import (
	"context"

	"github.com/stash-app/stash-sync/internal/model"
)

// Store exposes persistence operations required by the sync engine.
// Implementations live under internal/store/<driver>/ (postgres, sqlite).
type Store interface {
	Saves() Saves
	Credentials() Credentials
}

// Saves persists synced items. The uniqueness key is (userID, sourceID);
// UpsertBatch fully overwrites existing rows sharing a key, so repeated
// syncs with unchanged upstream data are convergent.
type Saves interface {
	UpsertBatch(ctx context.Context, rows []*model.Save) error
	ListByUser(ctx context.Context, userID, source string) ([]*model.Save, error)
}

// Credentials persists integration credentials, one row per
// (userID, provider). Put has upsert semantics. Get returns (nil, nil) when
// no credential exists for the pair.
type Credentials interface {
	Get(ctx context.Context, userID, provider string) (*model.Credential, error)
	Put(ctx context.Context, c *model.Credential) (*model.Credential, error)
	ListUsers(ctx context.Context, provider string) ([]string, error)
}
