package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/vault-guard/internal/adapter"
	"github.com/MKhiriev/vault-guard/internal/client"
	"github.com/MKhiriev/vault-guard/internal/config"
	"github.com/MKhiriev/vault-guard/internal/logger"
	"github.com/MKhiriev/vault-guard/internal/service"
	"github.com/MKhiriev/vault-guard/internal/store"
	"github.com/MKhiriev/vault-guard/internal/tui"
	"github.com/MKhiriev/vault-guard/internal/validators"
	"github.com/MKhiriev/vault-guard/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewClientLogger("vault-guard-client", "").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("vault-guard-client", cfg.LogFilePath)

	gateway, err := adapter.NewHTTPGateway(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create http gateway")
	}

	storages, err := store.NewClientStorages(context.Background(), cfg.Session, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create session storage")
	}

	services := service.NewClientServices(
		adapter.NewVaultAPI(gateway),
		storages.SessionRepository,
		service.NewRealClock(),
		cfg.Reveal.Window,
		log,
	)

	ui := tui.New(services, validators.NewFormValidator(), buildInfo, log)

	app, err := client.NewApp(services, ui, cfg.Workers, storages.Close, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}
