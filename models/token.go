package models

import "time"

// SessionToken is the persisted form of the client's authentication
// session. Only the bearer credential is stored, never vault data.
type SessionToken struct {
	// Token is the opaque bearer token received from POST /auth/login.
	Token string

	// SavedAt is when the token was written to local storage.
	SavedAt time.Time
}

// TokenClaims holds the subset of JWT claims the client reads from a bearer
// token for display and proactive expiry. Both fields are zero for opaque
// (non-JWT) tokens.
type TokenClaims struct {
	// Subject is the "sub" claim, typically the account identifier.
	Subject string

	// ExpiresAt is the "exp" claim; zero when the token carries none.
	ExpiresAt time.Time
}

// Expired reports whether the claims carry an expiry that is not after now.
func (c TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !c.ExpiresAt.After(now)
}
