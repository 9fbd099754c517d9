package sync

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stash-app/stash-sync/internal/creds"
	"github.com/stash-app/stash-sync/internal/model"
	"github.com/stash-app/stash-sync/internal/store"
	"github.com/stash-app/stash-sync/internal/twitter"
)

type fakeFetcher struct {
	items   []twitter.Item
	authors []twitter.Author
	err     error
	calls   int
}

func (f *fakeFetcher) FetchSavedItems(ctx context.Context, auth twitter.AuthorizationProvider, kind model.SyncKind) ([]twitter.Item, []twitter.Author, error) {
	f.calls++
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.items, f.authors, nil
}

type fakeStore struct {
	upserted  [][]*model.Save
	upsertErr error
	cred      *model.Credential
}

func (f *fakeStore) Saves() store.Saves             { return (*fakeSaves)(f) }
func (f *fakeStore) Credentials() store.Credentials { return (*fakeCreds)(f) }

type fakeSaves fakeStore

func (f *fakeSaves) UpsertBatch(ctx context.Context, rows []*model.Save) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, rows)
	return nil
}

func (f *fakeSaves) ListByUser(ctx context.Context, userID, source string) ([]*model.Save, error) {
	var out []*model.Save
	for _, batch := range f.upserted {
		out = append(out, batch...)
	}
	return out, nil
}

type fakeCreds fakeStore

func (f *fakeCreds) Get(ctx context.Context, userID, provider string) (*model.Credential, error) {
	return f.cred, nil
}

func (f *fakeCreds) Put(ctx context.Context, c *model.Credential) (*model.Credential, error) {
	f.cred = c
	return c, nil
}

func (f *fakeCreds) ListUsers(ctx context.Context, provider string) ([]string, error) {
	if f.cred == nil {
		return nil, nil
	}
	return []string{f.cred.UserID}, nil
}

func newTestService(fetcher *fakeFetcher, st *fakeStore) *Service {
	resolver := creds.NewResolver(st.Credentials())
	return NewService(resolver, fetcher, st, zerolog.Nop())
}

func TestSyncHappyPath(t *testing.T) {
	fetcher := &fakeFetcher{items: []twitter.Item{{ID: "9", Text: "hello world", AuthorID: "7"}}}
	st := &fakeStore{}
	svc := newTestService(fetcher, st)

	res, err := svc.Sync(context.Background(), model.SyncRequest{
		UserID: "u1",
		Kind:   model.SyncBookmarks,
		Token:  "T",
	})
	require.NoError(t, err)
	assert.Equal(t, model.SyncResult{Success: true, Count: 1}, res)

	require.Len(t, st.upserted, 1)
	row := st.upserted[0][0]
	assert.Equal(t, "u1", row.UserID)
	assert.Equal(t, "item_9", row.SourceID)
	assert.Equal(t, "Unknown", row.Author)
	assert.Equal(t, "hello world", row.Excerpt)
}

func TestSyncDefaultsToBookmarks(t *testing.T) {
	fetcher := &fakeFetcher{}
	st := &fakeStore{}
	svc := newTestService(fetcher, st)

	res, err := svc.Sync(context.Background(), model.SyncRequest{UserID: "u1", Token: "T"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 1, fetcher.calls)
}

func TestSyncZeroItemsSkipsStore(t *testing.T) {
	fetcher := &fakeFetcher{}
	st := &fakeStore{upsertErr: fmt.Errorf("store must not be called")}
	svc := newTestService(fetcher, st)

	res, err := svc.Sync(context.Background(), model.SyncRequest{UserID: "u1", Token: "T"})
	require.NoError(t, err)
	assert.Equal(t, model.SyncResult{Success: true, Count: 0}, res)
}

func TestSyncUpstreamAuthFailureWritesNothing(t *testing.T) {
	fetcher := &fakeFetcher{err: fmt.Errorf("%w: status 401", model.ErrUpstreamAuth)}
	st := &fakeStore{}
	svc := newTestService(fetcher, st)

	_, err := svc.Sync(context.Background(), model.SyncRequest{UserID: "u1", Token: "T"})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUpstreamAuth)
	assert.Empty(t, st.upserted)
}

func TestSyncMissingCredentialsFailsBeforeFetch(t *testing.T) {
	fetcher := &fakeFetcher{}
	st := &fakeStore{}
	svc := newTestService(fetcher, st)

	_, err := svc.Sync(context.Background(), model.SyncRequest{UserID: "u1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrMissingCredentials)
	assert.Zero(t, fetcher.calls)
}

func TestSyncInvalidKindRejected(t *testing.T) {
	svc := newTestService(&fakeFetcher{}, &fakeStore{})

	_, err := svc.Sync(context.Background(), model.SyncRequest{UserID: "u1", Kind: "retweets", Token: "T"})
	assert.Error(t, err)
}

func TestSyncMissingUserRejected(t *testing.T) {
	svc := newTestService(&fakeFetcher{}, &fakeStore{})

	_, err := svc.Sync(context.Background(), model.SyncRequest{Kind: model.SyncBookmarks, Token: "T"})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestSyncStoredCredentialPath(t *testing.T) {
	fetcher := &fakeFetcher{items: []twitter.Item{{ID: "1", Text: "a"}}}
	st := &fakeStore{cred: &model.Credential{UserID: "u1", Provider: "twitter", AccessToken: "stored"}}
	svc := newTestService(fetcher, st)

	res, err := svc.Sync(context.Background(), model.SyncRequest{UserID: "u1", Kind: model.SyncLikes})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
}
