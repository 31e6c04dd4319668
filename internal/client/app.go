package client

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/vault-guard/internal/config"
	"github.com/MKhiriev/vault-guard/internal/logger"
	"github.com/MKhiriev/vault-guard/internal/service"
	"github.com/MKhiriev/vault-guard/internal/tui"
	"github.com/MKhiriev/vault-guard/internal/workers"
)

type App struct {
	services *service.ClientServices
	ui       UI
	workers  *workers.Workers
	closer   func() error

	logger *logger.Logger
}

// NewApp assembles the client. closer releases the session storage on exit
// and may be nil.
func NewApp(services *service.ClientServices, ui UI, workersCfg config.ClientWorkers, closer func() error, logger *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, errors.New("client app: services and ui are required")
	}

	expiryWatcher := workers.NewSessionExpiryWatcher(services.Session, nil, workersCfg.ExpiryCheckInterval, logger)

	return &App{
		services: services,
		ui:       ui,
		workers:  workers.NewWorkers(expiryWatcher),
		closer:   closer,
		logger:   logger,
	}, nil
}

// Run implements [Client]. It restores a persisted session, starts the
// background workers and blocks in the UI until the user quits or the
// process receives a stop signal. Quitting with ctrl+c is not an error.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return a.run(ctx)
}

func (a *App) run(ctx context.Context) (err error) {
	defer func() {
		if a.closer == nil {
			return
		}
		if closeErr := a.closer(); closeErr != nil {
			a.logger.Err(closeErr).Str("func", "App.run").Msg("failed to close session storage")
		}
	}()

	if a.services.Session.Restore(ctx) {
		a.logger.Info().Str("func", "App.run").Msg("session restored")
	}

	a.workers.Start(ctx)
	defer a.workers.Stop()

	err = a.ui.Run(ctx)
	switch {
	case err == nil, errors.Is(err, tui.ErrUserQuit):
		return nil
	case errors.Is(err, context.Canceled):
		a.logger.Info().Str("func", "App.run").Msg("stopped by signal")
		return nil
	default:
		return fmt.Errorf("ui: %w", err)
	}
}
