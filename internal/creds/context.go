// Package creds resolves credential material for a sync invocation into a
// signing context usable by the upstream client.
package creds

import (
	"fmt"
	"net/url"

	"github.com/stash-app/stash-sync/internal/model"
	"github.com/stash-app/stash-sync/internal/oauth1"
)

// Scheme tags the variant carried by a SigningContext.
type Scheme int

const (
	SchemeBearer Scheme = iota
	SchemeOAuth1
)

func (s Scheme) String() string {
	switch s {
	case SchemeBearer:
		return "bearer"
	case SchemeOAuth1:
		return "oauth1"
	default:
		return fmt.Sprintf("scheme(%d)", int(s))
	}
}

// SigningContext is the resolved credential material for one sync
// invocation. It is immutable once constructed and lives only for the
// duration of the invocation. Exactly one variant is populated.
type SigningContext struct {
	scheme Scheme
	token  string
	signer *oauth1.Signer
}

// NewBearerContext wraps an OAuth2 user-context access token.
func NewBearerContext(token string) SigningContext {
	return SigningContext{scheme: SchemeBearer, token: token}
}

// NewOAuth1Context wraps a complete OAuth1 credential quadruple.
func NewOAuth1Context(c model.OAuth1Credentials) SigningContext {
	return SigningContext{scheme: SchemeOAuth1, signer: oauth1.NewSigner(oauth1.Credentials{
		ConsumerKey:    c.ConsumerKey,
		ConsumerSecret: c.ConsumerSecret,
		AccessToken:    c.AccessToken,
		AccessSecret:   c.AccessSecret,
	})}
}

// newOAuth1ContextWithSigner allows tests to inject a deterministic signer.
func newOAuth1ContextWithSigner(s *oauth1.Signer) SigningContext {
	return SigningContext{scheme: SchemeOAuth1, signer: s}
}

// Scheme returns which credential variant the context carries.
func (c SigningContext) Scheme() Scheme { return c.scheme }

// AuthorizationHeader produces the Authorization header value for one
// request under whichever scheme is active. query holds the request's query
// parameters; it participates in OAuth1 signing and is ignored for bearer
// tokens.
func (c SigningContext) AuthorizationHeader(method, rawURL string, query url.Values) (string, error) {
	switch c.scheme {
	case SchemeBearer:
		if c.token == "" {
			return "", fmt.Errorf("%w: empty bearer token", model.ErrInvalidCredentials)
		}
		return "Bearer " + c.token, nil
	case SchemeOAuth1:
		return c.signer.AuthorizationHeader(method, rawURL, query)
	default:
		return "", fmt.Errorf("%w: unknown signing scheme", model.ErrInvalidCredentials)
	}
}
