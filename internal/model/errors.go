package model

import "errors"

var (
	// ErrMissingCredentials means no usable credential material was found:
	// nothing supplied and no stored credential for the user.
	ErrMissingCredentials = errors.New("missing credentials")
	// ErrInvalidCredentials means the supplied material is malformed, e.g.
	// a partial OAuth1 quadruple or an empty bearer token. Detected locally,
	// never sent upstream.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUpstreamAuth means the platform rejected the identity call.
	ErrUpstreamAuth = errors.New("upstream auth failed")
	// ErrUpstreamFetch means the saved-items call was rejected or the
	// transport failed.
	ErrUpstreamFetch = errors.New("upstream fetch failed")
)
