package creds

import (
	"context"
	"fmt"

	"github.com/stash-app/stash-sync/internal/model"
)

// Provider is the stored-credential provider key for the platform.
const Provider = "twitter"

// CredentialSource is the stored-credential lookup the resolver falls back
// to. Get returns (nil, nil) when no credential exists for the pair.
type CredentialSource interface {
	Get(ctx context.Context, userID, provider string) (*model.Credential, error)
}

// Resolver decides which of the three credential shapes backs a sync
// request and produces the signing context for it.
type Resolver struct {
	source CredentialSource
}

// NewResolver returns a Resolver reading stored credentials from source.
func NewResolver(source CredentialSource) *Resolver {
	return &Resolver{source: source}
}

// Resolve picks credential material in priority order: a complete OAuth1
// quadruple, then an explicit bearer token, then the stored credential for
// (userID, "twitter"). A partially supplied quadruple is rejected rather
// than silently falling through to a weaker source.
func (r *Resolver) Resolve(ctx context.Context, req model.SyncRequest) (SigningContext, error) {
	if req.OAuth1 != nil && !req.OAuth1.Empty() {
		if !req.OAuth1.Complete() {
			return SigningContext{}, fmt.Errorf("%w: OAuth1 credentials require consumerKey, consumerSecret, accessToken and accessSecret", model.ErrInvalidCredentials)
		}
		return NewOAuth1Context(*req.OAuth1), nil
	}

	if req.Token != "" {
		return NewBearerContext(req.Token), nil
	}

	stored, err := r.source.Get(ctx, req.UserID, Provider)
	if err != nil {
		return SigningContext{}, fmt.Errorf("stored credential lookup: %w", err)
	}
	if stored == nil || stored.AccessToken == "" {
		return SigningContext{}, fmt.Errorf("%w: no token supplied and no stored credential for user %s", model.ErrMissingCredentials, req.UserID)
	}
	// No local expiry check: an expired token surfaces as an upstream auth
	// failure, not a silent refresh.
	return NewBearerContext(stored.AccessToken), nil
}
