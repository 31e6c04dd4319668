package store

import (
	"context"

	"github.com/MKhiriev/vault-guard/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// SessionRepository keeps the client's bearer token between runs. It never
// stores vault records or secrets.
type SessionRepository interface {
	// Load returns the stored token or [ErrLocalSessionNotFound].
	Load(ctx context.Context) (models.SessionToken, error)
	// Save replaces the stored token.
	Save(ctx context.Context, token models.SessionToken) error
	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
