// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/vault-guard/internal/logger"
)

// DefaultExpiryCheckInterval is used when the configured interval is not
// positive.
const DefaultExpiryCheckInterval = 30 * time.Second

type sessionExpiryWatcher struct {
	session  Session
	now      NowFunc
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewSessionExpiryWatcher returns a worker that logs the session out once
// the "exp" claim of its JWT has passed. Opaque tokens carry no claims and
// are left to the backend, which answers 401 when they are no longer valid.
// The worker is idle until Start is called.
func NewSessionExpiryWatcher(session Session, now NowFunc, interval time.Duration, logger *logger.Logger) Worker {
	if interval <= 0 {
		interval = DefaultExpiryCheckInterval
	}
	if now == nil {
		now = time.Now
	}
	return &sessionExpiryWatcher{session: session, now: now, interval: interval, logger: logger}
}

// Start implements Worker. It stops any previously running loop, checks
// once right away, then checks on every tick.
func (w *sessionExpiryWatcher) Start(ctx context.Context) {
	w.Stop()

	w.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()

		w.check()
		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				w.check()
			}
		}
	}()
}

// Stop implements Worker.
func (w *sessionExpiryWatcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

// check reports whether it ended the session.
func (w *sessionExpiryWatcher) check() bool {
	claims, ok := w.session.Claims()
	if !ok || !claims.Expired(w.now()) {
		return false
	}

	w.logger.Info().
		Str("func", "sessionExpiryWatcher.check").
		Time("expires_at", claims.ExpiresAt).
		Msg("session token expired, logging out")
	w.session.Logout()
	return true
}
