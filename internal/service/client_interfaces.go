package service

import (
	"context"
	"time"

	"github.com/MKhiriev/vault-guard/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// Mask is shown in place of a secret that is not currently revealed. Its
// length is fixed and says nothing about the secret.
const Mask = "********"

// ClientSession is the process-wide authentication state. It is the only
// writer of the bearer token.
type ClientSession interface {
	// Login stores token (whitespace-trimmed) and makes the session
	// authenticated. An empty token leaves the session unauthenticated.
	// No network call is made.
	Login(token string)

	// Logout clears the token. Calling it on an unauthenticated session is
	// a no-op.
	Logout()

	// CurrentToken returns the token and whether one is set.
	CurrentToken() (string, bool)

	// IsAuthenticated reports whether a token is set.
	IsAuthenticated() bool

	// Claims returns the JWT claims of the current token. ok is false when
	// there is no token or the token is opaque.
	Claims() (claims models.TokenClaims, ok bool)

	// Restore loads a token persisted by a previous run. It reports whether
	// the session is authenticated afterwards. Expired JWTs are discarded.
	Restore(ctx context.Context) bool

	// Subscribe registers fn to be called on every transition between
	// authenticated and unauthenticated. The returned func unregisters it.
	Subscribe(fn func(authenticated bool)) (unsubscribe func())
}

// ClientAuthService defines the client-side contract for user registration
// and authentication.
type ClientAuthService interface {
	// Register creates an account and returns the backend's confirmation
	// message. It does not log in.
	Register(ctx context.Context, req models.RegisterRequest) (string, error)

	// Login authenticates against the backend and, on success, stores the
	// returned token in the session. A 2xx response without a token fails
	// with [ErrTokenMissing] and leaves the session untouched.
	Login(ctx context.Context, req models.LoginRequest) error

	// Logout ends the session locally.
	Logout()
}

// ClientVaultService defines CRUD over password records. Every operation
// checks the session first and fails with [ErrNotAuthenticated] without
// contacting the backend when there is no token.
type ClientVaultService interface {
	// List fetches the authoritative list and replaces the cached snapshot.
	List(ctx context.Context) (models.PasswordList, error)

	// Records returns the cached snapshot when fresh, otherwise calls List.
	Records(ctx context.Context) (models.PasswordList, error)

	// Add creates a record and invalidates the cache.
	Add(ctx context.Context, accountName, username, password string) (models.PasswordRecord, error)

	// Update sends only the non-nil fields of upd and invalidates the cache.
	Update(ctx context.Context, id string, upd models.PasswordUpdate) (models.PasswordRecord, error)

	// Remove deletes a record and invalidates the cache.
	Remove(ctx context.Context, id string) error

	// Reveal fetches the plaintext secret of a record. The cache is not
	// touched.
	Reveal(ctx context.Context, id string) (string, error)
}

// ClientListCache is the shared password-list snapshot the UI renders.
type ClientListCache interface {
	// Snapshot returns a copy of the cached list and whether it is fresh.
	Snapshot() (list models.PasswordList, fresh bool)

	// Generation identifies the current invalidation epoch.
	Generation() uint64

	// Replace stores list. The snapshot becomes fresh only if no
	// invalidation happened since generation was read; a list read before
	// the last Reset is dropped.
	Replace(list models.PasswordList, generation uint64)

	// Invalidate marks the snapshot stale.
	Invalidate()

	// Reset drops the snapshot entirely.
	Reset()

	// Subscribe registers fn to be called after every change.
	Subscribe(fn func(list models.PasswordList, fresh bool)) (unsubscribe func())
}

// ClientRevealService discloses plaintext secrets for a bounded window.
type ClientRevealService interface {
	// RevealNow fetches the secret of id and keeps it visible for the
	// configured window, replacing any previous entry and restarting its
	// timer. On failure the previous state of id is kept.
	RevealNow(ctx context.Context, id string) (string, error)

	// IsRevealed reports whether id is currently visible.
	IsRevealed(id string) bool

	// CurrentPlaintext returns the visible secret of id.
	CurrentPlaintext(id string) (string, bool)

	// Display returns the visible secret of id or [Mask].
	Display(id string) string

	// ExpiresAt returns when the visible secret of id will be hidden.
	ExpiresAt(id string) (time.Time, bool)

	// Hide retracts id immediately.
	Hide(id string)

	// HideAll retracts every visible secret.
	HideAll()

	// Subscribe registers fn to be called whenever an id becomes visible or
	// hidden.
	Subscribe(fn func(id string, visible bool)) (unsubscribe func())
}
