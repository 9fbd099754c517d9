package creds

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stash-app/stash-sync/internal/model"
)

type fakeSource struct {
	cred *model.Credential
	err  error
	gets int
}

func (f *fakeSource) Get(ctx context.Context, userID, provider string) (*model.Credential, error) {
	f.gets++
	return f.cred, f.err
}

func fullQuadruple() *model.OAuth1Credentials {
	return &model.OAuth1Credentials{
		ConsumerKey:    "ck",
		ConsumerSecret: "cs",
		AccessToken:    "at",
		AccessSecret:   "as",
	}
}

func TestResolveOAuth1TakesPriority(t *testing.T) {
	src := &fakeSource{}
	r := NewResolver(src)

	sctx, err := r.Resolve(context.Background(), model.SyncRequest{
		UserID: "u1",
		Token:  "bearer-token",
		OAuth1: fullQuadruple(),
	})
	require.NoError(t, err)
	assert.Equal(t, SchemeOAuth1, sctx.Scheme())
	assert.Zero(t, src.gets, "store must not be consulted when explicit credentials are supplied")
}

func TestResolvePartialQuadrupleRejected(t *testing.T) {
	quad := fullQuadruple()
	quad.AccessSecret = ""
	r := NewResolver(&fakeSource{})

	_, err := r.Resolve(context.Background(), model.SyncRequest{
		UserID: "u1",
		Token:  "bearer-token",
		OAuth1: quad,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestResolveExplicitBearer(t *testing.T) {
	src := &fakeSource{}
	r := NewResolver(src)

	sctx, err := r.Resolve(context.Background(), model.SyncRequest{UserID: "u1", Token: "T"})
	require.NoError(t, err)
	assert.Equal(t, SchemeBearer, sctx.Scheme())

	header, err := sctx.AuthorizationHeader("GET", "https://api.twitter.com/2/users/me", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer T", header)
	assert.Zero(t, src.gets)
}

func TestResolveStoredCredentialFallback(t *testing.T) {
	src := &fakeSource{cred: &model.Credential{UserID: "u1", Provider: Provider, AccessToken: "stored"}}
	r := NewResolver(src)

	sctx, err := r.Resolve(context.Background(), model.SyncRequest{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, SchemeBearer, sctx.Scheme())

	header, err := sctx.AuthorizationHeader("GET", "https://api.twitter.com/2/users/me", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer stored", header)
}

func TestResolveNothingAvailable(t *testing.T) {
	r := NewResolver(&fakeSource{})

	_, err := r.Resolve(context.Background(), model.SyncRequest{UserID: "u1"})
	assert.ErrorIs(t, err, model.ErrMissingCredentials)
}

func TestResolveStoredRowWithoutToken(t *testing.T) {
	src := &fakeSource{cred: &model.Credential{UserID: "u1", Provider: Provider}}
	r := NewResolver(src)

	_, err := r.Resolve(context.Background(), model.SyncRequest{UserID: "u1"})
	assert.ErrorIs(t, err, model.ErrMissingCredentials)
}

func TestResolveLookupError(t *testing.T) {
	src := &fakeSource{err: errors.New("store down")}
	r := NewResolver(src)

	_, err := r.Resolve(context.Background(), model.SyncRequest{UserID: "u1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrMissingCredentials)
}

func TestBearerContextEmptyToken(t *testing.T) {
	sctx := NewBearerContext("")
	_, err := sctx.AuthorizationHeader("GET", "https://api.twitter.com/2/users/me", nil)
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}
