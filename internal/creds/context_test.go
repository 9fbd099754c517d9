package creds

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stash-app/stash-sync/internal/oauth1"
)

func TestOAuth1ContextProducesOAuthHeader(t *testing.T) {
	signer := oauth1.NewSignerForTesting(oauth1.Credentials{
		ConsumerKey:    "ck",
		ConsumerSecret: "cs",
		AccessToken:    "at",
		AccessSecret:   "as",
	}, "fixednonce", time.Unix(1700000000, 0))
	sctx := newOAuth1ContextWithSigner(signer)

	assert.Equal(t, SchemeOAuth1, sctx.Scheme())

	header, err := sctx.AuthorizationHeader("GET", "https://api.twitter.com/2/users/me", url.Values{"expansions": {"author_id"}})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(header, "OAuth "))
	assert.Contains(t, header, `oauth_consumer_key="ck"`)
	assert.Contains(t, header, `oauth_nonce="fixednonce"`)
	assert.Contains(t, header, `oauth_timestamp="1700000000"`)
}

func TestSchemeString(t *testing.T) {
	assert.Equal(t, "bearer", SchemeBearer.String())
	assert.Equal(t, "oauth1", SchemeOAuth1.String())
}
