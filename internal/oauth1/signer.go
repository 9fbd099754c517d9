// Package oauth1 builds OAuth 1.0a HMAC-SHA1 Authorization headers.
//
// The platform verifies signatures byte-for-byte, so encoding, parameter
// ordering, and base-string construction follow RFC 5849 exactly.
package oauth1

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	signatureMethod = "HMAC-SHA1"
	oauthVersion    = "1.0"
)

// Credentials is the four-part OAuth 1.0a credential set used for signing.
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
	AccessToken    string
	AccessSecret   string
}

// Signer produces Authorization header values for signed requests.
// Nonce generation and the clock are injectable so the signing algorithm
// itself stays deterministic under test.
type Signer struct {
	creds Credentials
	nonce func() (string, error)
	now   func() time.Time
}

// NewSigner returns a Signer backed by crypto/rand nonces and the wall clock.
func NewSigner(creds Credentials) *Signer {
	return &Signer{creds: creds, nonce: randomNonce, now: time.Now}
}

// NewSignerForTesting returns a Signer with a fixed nonce and timestamp.
func NewSignerForTesting(creds Credentials, nonce string, ts time.Time) *Signer {
	return &Signer{
		creds: creds,
		nonce: func() (string, error) { return nonce, nil },
		now:   func() time.Time { return ts },
	}
}

// AuthorizationHeader signs one request and returns the complete header
// value. extra holds request parameters not already present in rawURL's
// query; both are included in the signature.
func (s *Signer) AuthorizationHeader(method, rawURL string, extra url.Values) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	nonce, err := s.nonce()
	if err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	timestamp := strconv.FormatInt(s.now().Unix(), 10)

	oauthParams := map[string]string{
		"oauth_consumer_key":     s.creds.ConsumerKey,
		"oauth_nonce":            nonce,
		"oauth_signature_method": signatureMethod,
		"oauth_timestamp":        timestamp,
		"oauth_token":            s.creds.AccessToken,
		"oauth_version":          oauthVersion,
	}

	// Signature covers query params already on the URL, the caller's extra
	// params, and the oauth_* set. The signature itself is never included.
	params := url.Values{}
	for k, vs := range u.Query() {
		for _, v := range vs {
			params.Add(k, v)
		}
	}
	for k, vs := range extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}
	for k, v := range oauthParams {
		params.Add(k, v)
	}

	base := baseString(method, u, params)
	key := PercentEncode(s.creds.ConsumerSecret) + "&" + PercentEncode(s.creds.AccessSecret)

	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(base))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	oauthParams["oauth_signature"] = signature
	return headerValue(oauthParams), nil
}

// baseString builds the OAuth signature base string: the uppercased method,
// the base URL stripped of its query, and the canonical parameter string,
// each percent-encoded and joined with "&".
func baseString(method string, u *url.URL, params url.Values) string {
	baseURL := &url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}
	return strings.ToUpper(method) + "&" +
		PercentEncode(baseURL.String()) + "&" +
		PercentEncode(ParameterString(params))
}

// ParameterString canonicalizes request parameters: each key and value is
// percent-encoded, pairs are sorted by encoded key (ties broken by encoded
// value), and joined with "&".
func ParameterString(params url.Values) string {
	type pair struct{ key, val string }
	pairs := make([]pair, 0, len(params))
	for k, vs := range params {
		ek := PercentEncode(k)
		for _, v := range vs {
			pairs = append(pairs, pair{key: ek, val: PercentEncode(v)})
		}
	}
	// Byte order of the encoded key; a shared key sorts by encoded value.
	// Sorting the joined "k=v" strings instead would misorder keys that are
	// prefixes of one another, since '=' is above the digits.
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].key != pairs[j].key {
			return pairs[i].key < pairs[j].key
		}
		return pairs[i].val < pairs[j].val
	})
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.key + "=" + p.val
	}
	return strings.Join(out, "&")
}

// headerValue emits the Authorization header with fields in a fixed order.
// The order is cosmetic for the protocol but kept deterministic.
func headerValue(p map[string]string) string {
	fields := []string{
		"oauth_consumer_key",
		"oauth_nonce",
		"oauth_signature",
		"oauth_signature_method",
		"oauth_timestamp",
		"oauth_token",
		"oauth_version",
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+`="`+PercentEncode(p[f])+`"`)
	}
	return "OAuth " + strings.Join(parts, ", ")
}

// PercentEncode escapes a string per RFC 3986: unreserved characters
// (ALPHA, DIGIT, "-", "_", ".", "~") pass through, every other byte becomes
// %XX with uppercase hex.
func PercentEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
		} else {
			b.WriteByte('%')
			b.WriteString(strings.ToUpper(hex.EncodeToString([]byte{c})))
		}
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_' || c == '.' || c == '~':
		return true
	}
	return false
}

// randomNonce returns an opaque random alphanumeric string. 32 hex chars of
// crypto/rand output keeps the collision probability negligible.
func randomNonce() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
