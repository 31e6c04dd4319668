// Package workers provides abstractions for managing and running
// background workers in the client.
// It defines the Worker interface and a Workers aggregate that starts and
// stops multiple workers in a unified way.
package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/vault-guard/models"
)

// Worker is the interface that must be implemented by any background worker.
//
// Start launches the worker in its own goroutine and returns immediately.
// The worker runs until ctx is cancelled or Stop is called. Stop blocks
// until the goroutine has exited and is safe to call when the worker is
// not running.
//
// Example implementation:
//
//	type MyWorker struct{ cancel context.CancelFunc }
//
//	func (w *MyWorker) Start(ctx context.Context) { ... }
//	func (w *MyWorker) Stop()                     { ... }
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// Session is the part of the authentication session the expiry watcher
// needs.
type Session interface {
	Claims() (models.TokenClaims, bool)
	Logout()
}

// NowFunc returns the current time.
type NowFunc func() time.Time
