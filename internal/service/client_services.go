package service

import (
	"time"

	"github.com/MKhiriev/vault-guard/internal/adapter"
	"github.com/MKhiriev/vault-guard/internal/logger"
	"github.com/MKhiriev/vault-guard/internal/store"
)

// ClientServices wires the client-side services together.
type ClientServices struct {
	Session       ClientSession
	AuthService   ClientAuthService
	VaultService  ClientVaultService
	RevealService ClientRevealService
	ListCache     ClientListCache
}

// NewClientServices builds all services on top of api. sessionRepo may be
// nil to keep the session in memory only.
//
// When the session ends (explicit logout, a 401 from the backend, or the
// expiry watcher) every revealed secret is hidden and the list cache is
// dropped.
func NewClientServices(api adapter.VaultAPI, sessionRepo store.SessionRepository, clock Clock, revealWindow time.Duration, logger *logger.Logger) *ClientServices {
	session := NewClientSession(sessionRepo, clock, logger)
	cache := NewClientListCache()
	vaultSvc := NewClientVaultService(api, session, cache, logger)
	revealSvc := NewClientRevealService(vaultSvc, clock, revealWindow, logger)

	session.Subscribe(func(authenticated bool) {
		if !authenticated {
			revealSvc.HideAll()
			cache.Reset()
		}
	})

	return &ClientServices{
		Session:       session,
		AuthService:   NewClientAuthService(api, session, logger),
		VaultService:  vaultSvc,
		RevealService: revealSvc,
		ListCache:     cache,
	}
}
