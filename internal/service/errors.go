package service

import "errors"

var (
	// ErrNotAuthenticated is returned by vault operations when the session
	// holds no token. No request is sent in that case.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrTokenMissing is returned by login when the backend answered 2xx
	// without a usable token.
	ErrTokenMissing = errors.New("token missing in response")

	// ErrRevealCanceled is returned by RevealNow when the reveal state was
	// wiped (for example by logout) while the request was in flight. The
	// plaintext is discarded.
	ErrRevealCanceled = errors.New("reveal canceled")
)
