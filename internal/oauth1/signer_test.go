package oauth1

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Credential set and request from the platform's own signing documentation;
// the expected signature is the published reference value.
var docCreds = Credentials{
	ConsumerKey:    "xvz1evFS4wEEPTGEFPHBog",
	ConsumerSecret: "kAcSOqF21Fu85e7zjz7ZN2U4ZRhfV3WpwPAoE3Z7kBw",
	AccessToken:    "370773112-GmHxMAgYyLbNEtIKZeRNFsMKPR9EyMZeS9weJAEb",
	AccessSecret:   "LswwdoUaIvS8ltyTt5jkRh4J50vUPVVHtR2YPi5kE",
}

const (
	docNonce     = "kYjzVBB8Y0ZFabxSWbWovY3uYSQ2pTgmZeNu2VS4cg"
	docTimestamp = int64(1318622958)
)

func TestAuthorizationHeaderReferenceVector(t *testing.T) {
	s := NewSignerForTesting(docCreds, docNonce, time.Unix(docTimestamp, 0))

	header, err := s.AuthorizationHeader(
		"post",
		"https://api.twitter.com/1.1/statuses/update.json?include_entities=true",
		url.Values{"status": {"Hello Ladies + Gentlemen, a signed OAuth request!"}},
	)
	require.NoError(t, err)

	assert.Equal(t, `OAuth `+
		`oauth_consumer_key="xvz1evFS4wEEPTGEFPHBog", `+
		`oauth_nonce="kYjzVBB8Y0ZFabxSWbWovY3uYSQ2pTgmZeNu2VS4cg", `+
		`oauth_signature="hCtSmYh%2BiHYCEqBWrE7C7hYmtUk%3D", `+
		`oauth_signature_method="HMAC-SHA1", `+
		`oauth_timestamp="1318622958", `+
		`oauth_token="370773112-GmHxMAgYyLbNEtIKZeRNFsMKPR9EyMZeS9weJAEb", `+
		`oauth_version="1.0"`, header)
}

func TestAuthorizationHeaderDeterministic(t *testing.T) {
	s := NewSignerForTesting(docCreds, docNonce, time.Unix(docTimestamp, 0))

	first, err := s.AuthorizationHeader("GET", "https://api.twitter.com/2/users/me", nil)
	require.NoError(t, err)
	second, err := s.AuthorizationHeader("GET", "https://api.twitter.com/2/users/me", nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAuthorizationHeaderNoQueryParams(t *testing.T) {
	s := NewSignerForTesting(docCreds, docNonce, time.Unix(docTimestamp, 0))

	header, err := s.AuthorizationHeader("GET", "https://api.twitter.com/2/users/me", nil)
	require.NoError(t, err)
	// All six oauth_* fields plus the signature, nothing else.
	assert.Contains(t, header, `oauth_consumer_key=`)
	assert.Contains(t, header, `oauth_signature=`)
	assert.Contains(t, header, `oauth_version="1.0"`)
}

func TestRandomNonceUnique(t *testing.T) {
	s := NewSigner(docCreds)

	a, err := s.AuthorizationHeader("GET", "https://api.twitter.com/2/users/me", nil)
	require.NoError(t, err)
	b, err := s.AuthorizationHeader("GET", "https://api.twitter.com/2/users/me", nil)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPercentEncode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A B&C", "A%20B%26C"},
		{"abc-._~123", "abc-._~123"},
		{"", ""},
		{"Hello Ladies + Gentlemen, a signed OAuth request!", "Hello%20Ladies%20%2B%20Gentlemen%2C%20a%20signed%20OAuth%20request%21"},
		{"日", "%E6%97%A5"},
		{"a/b?c=d", "a%2Fb%3Fc%3Dd"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PercentEncode(tt.in), "input %q", tt.in)
	}
}

func TestParameterStringOrdering(t *testing.T) {
	params := url.Values{
		"b": {"2"},
		"a": {"2", "1"},
	}
	assert.Equal(t, "a=1&a=2&b=2", ParameterString(params))
}

func TestParameterStringPrefixKeys(t *testing.T) {
	// "a" must sort before "a1" by byte order of the key, even though '='
	// compares above '1' in a naive joined-pair sort.
	params := url.Values{
		"a1": {"x"},
		"a":  {"y"},
	}
	assert.Equal(t, "a=y&a1=x", ParameterString(params))
}

func TestParameterStringEncodesBeforeSorting(t *testing.T) {
	// Encoded forms decide the order: " " becomes %20 and sorts before "a".
	params := url.Values{
		"key": {"a", " "},
	}
	assert.Equal(t, "key=%20&key=a", ParameterString(params))
}
