// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/vault-guard/internal/logger"
	"github.com/MKhiriev/vault-guard/internal/store"
	"github.com/MKhiriev/vault-guard/internal/utils"
	"github.com/MKhiriev/vault-guard/models"
)

const persistTimeout = 5 * time.Second

type clientSession struct {
	repo  store.SessionRepository
	clock Clock

	mu     sync.Mutex
	token  string
	claims models.TokenClaims
	isJWT  bool

	subscribers listeners[func(bool)]

	logger *logger.Logger
}

// NewClientSession returns an unauthenticated session. repo may be nil, in
// which case the token lives only in memory.
func NewClientSession(repo store.SessionRepository, clock Clock, logger *logger.Logger) ClientSession {
	return &clientSession{repo: repo, clock: clock, logger: logger}
}

func (s *clientSession) Login(token string) {
	token = strings.TrimSpace(token)
	if token == "" {
		s.logger.Warn().Str("func", "clientSession.Login").Msg("empty token ignored")
		return
	}

	claims, err := utils.ParseTokenClaims(token)
	isJWT := err == nil

	s.mu.Lock()
	previous := s.token
	s.token, s.claims, s.isJWT = token, claims, isJWT
	s.persist(func(ctx context.Context) error {
		return s.repo.Save(ctx, models.SessionToken{Token: token, SavedAt: s.clock.Now()})
	})
	s.mu.Unlock()

	s.logger.Info().Str("func", "clientSession.Login").Bool("jwt", isJWT).Msg("session authenticated")
	if previous == token {
		return
	}
	// a different token ends the previous session first
	if previous != "" {
		s.notify(false)
	}
	s.notify(true)
}

func (s *clientSession) Logout() {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return
	}
	s.token, s.claims, s.isJWT = "", models.TokenClaims{}, false
	s.persist(func(ctx context.Context) error {
		return s.repo.Clear(ctx)
	})
	s.mu.Unlock()

	s.logger.Info().Str("func", "clientSession.Logout").Msg("session cleared")
	s.notify(false)
}

func (s *clientSession) CurrentToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

func (s *clientSession) IsAuthenticated() bool {
	_, ok := s.CurrentToken()
	return ok
}

func (s *clientSession) Claims() (models.TokenClaims, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.claims, s.token != "" && s.isJWT
}

func (s *clientSession) Restore(ctx context.Context) bool {
	if s.repo == nil {
		return s.IsAuthenticated()
	}

	stored, err := s.repo.Load(ctx)
	if errors.Is(err, store.ErrLocalSessionNotFound) {
		return s.IsAuthenticated()
	}
	if err != nil {
		s.logger.Err(err).Str("func", "clientSession.Restore").Msg("failed to load stored session")
		return s.IsAuthenticated()
	}

	if claims, err := utils.ParseTokenClaims(stored.Token); err == nil && claims.Expired(s.clock.Now()) {
		s.logger.Info().Str("func", "clientSession.Restore").Msg("stored token expired, discarding")
		if err := s.repo.Clear(ctx); err != nil {
			s.logger.Err(err).Str("func", "clientSession.Restore").Msg("failed to clear expired session")
		}
		return s.IsAuthenticated()
	}

	s.Login(stored.Token)
	return s.IsAuthenticated()
}

func (s *clientSession) Subscribe(fn func(authenticated bool)) func() {
	return s.subscribers.add(fn)
}

func (s *clientSession) notify(authenticated bool) {
	for _, fn := range s.subscribers.snapshot() {
		fn(authenticated)
	}
}

// persist runs op against the repository. Failures are logged only; the
// in-memory session stays authoritative. Must be called with s.mu held so
// that writes reach the store in transition order.
func (s *clientSession) persist(op func(ctx context.Context) error) {
	if s.repo == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := op(ctx); err != nil {
		s.logger.Err(err).Str("func", "clientSession.persist").Msg("failed to persist session")
	}
}
