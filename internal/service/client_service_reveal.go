// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/vault-guard/internal/logger"
)

// DefaultRevealWindow is how long a revealed secret stays visible when no
// window is configured.
const DefaultRevealWindow = 15 * time.Second

type revealEntry struct {
	plaintext  string
	expiresAt  time.Time
	generation uint64
	timer      Timer
}

type clientRevealService struct {
	vault  ClientVaultService
	clock  Clock
	window time.Duration

	mu      sync.Mutex
	entries map[string]*revealEntry
	// generation increases with every stored entry; an expiry callback only
	// removes the entry it was scheduled for.
	generation uint64
	// epoch increases with every HideAll; reveals started in an older epoch
	// are discarded.
	epoch uint64

	subscribers listeners[func(string, bool)]

	logger *logger.Logger
}

// NewClientRevealService returns a reveal scheduler that keeps secrets
// visible for window (DefaultRevealWindow if window <= 0).
func NewClientRevealService(vault ClientVaultService, clock Clock, window time.Duration, logger *logger.Logger) ClientRevealService {
	if window <= 0 {
		window = DefaultRevealWindow
	}
	return &clientRevealService{
		vault:   vault,
		clock:   clock,
		window:  window,
		entries: make(map[string]*revealEntry),
		logger:  logger,
	}
}

func (r *clientRevealService) RevealNow(ctx context.Context, id string) (string, error) {
	r.mu.Lock()
	epoch := r.epoch
	r.mu.Unlock()

	plaintext, err := r.vault.Reveal(ctx, id)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	if r.epoch != epoch {
		r.mu.Unlock()
		r.logger.Debug().Str("func", "clientRevealService.RevealNow").Str("id", id).Msg("reveal state wiped while in flight")
		return "", ErrRevealCanceled
	}

	if prev, ok := r.entries[id]; ok {
		prev.timer.Stop()
	}

	r.generation++
	generation := r.generation
	r.entries[id] = &revealEntry{
		plaintext:  plaintext,
		expiresAt:  r.clock.Now().Add(r.window),
		generation: generation,
		timer:      r.clock.AfterFunc(r.window, func() { r.expire(id, generation) }),
	}
	r.mu.Unlock()

	r.notify(id, true)
	return plaintext, nil
}

func (r *clientRevealService) IsRevealed(id string) bool {
	_, ok := r.CurrentPlaintext(id)
	return ok
}

func (r *clientRevealService) CurrentPlaintext(id string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return "", false
	}
	return e.plaintext, true
}

func (r *clientRevealService) Display(id string) string {
	if plaintext, ok := r.CurrentPlaintext(id); ok {
		return plaintext
	}
	return Mask
}

func (r *clientRevealService) ExpiresAt(id string) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return time.Time{}, false
	}
	return e.expiresAt, true
}

func (r *clientRevealService) Hide(id string) {
	r.mu.Lock()
	e, ok := r.entries[id]
	if ok {
		e.timer.Stop()
		delete(r.entries, id)
	}
	r.mu.Unlock()

	if ok {
		r.notify(id, false)
	}
}

func (r *clientRevealService) HideAll() {
	r.mu.Lock()
	r.epoch++
	ids := make([]string, 0, len(r.entries))
	for id, e := range r.entries {
		e.timer.Stop()
		ids = append(ids, id)
	}
	clear(r.entries)
	r.mu.Unlock()

	for _, id := range ids {
		r.notify(id, false)
	}
}

func (r *clientRevealService) Subscribe(fn func(id string, visible bool)) func() {
	return r.subscribers.add(fn)
}

func (r *clientRevealService) expire(id string, generation uint64) {
	r.mu.Lock()
	e, ok := r.entries[id]
	if !ok || e.generation != generation {
		r.mu.Unlock()
		return
	}
	delete(r.entries, id)
	r.mu.Unlock()

	r.notify(id, false)
}

func (r *clientRevealService) notify(id string, visible bool) {
	for _, fn := range r.subscribers.snapshot() {
		fn(id, visible)
	}
}
