package config

import (
	"fmt"
	"strings"
	"time"

	"dario.cat/mergo"
)

// Defaults applied by [GetClientConfig] to every field left empty by all
// configuration sources.
const (
	DefaultHTTPAddress         = "http://localhost:4000"
	DefaultRequestTimeout      = 15 * time.Second
	DefaultSessionDSN          = "vault-guard.db"
	DefaultRevealWindow        = 15 * time.Second
	DefaultExpiryCheckInterval = 30 * time.Second
)

// ClientAdapter holds network settings used by the API gateway.
type ClientAdapter struct {
	// HTTPAddress is the backend base address.
	HTTPAddress string
	// RequestTimeout is the timeout for a single outbound request.
	RequestTimeout time.Duration
}

// ClientSession holds local session persistence settings.
type ClientSession struct {
	// DSN is the SQLite connection string of the session store.
	DSN string
}

// InMemory reports whether the session store lives only for the process
// lifetime.
func (s ClientSession) InMemory() bool {
	return s.DSN == ":memory:" || strings.Contains(s.DSN, "mode=memory")
}

// ClientReveal holds settings of the secret-reveal workflow.
type ClientReveal struct {
	// Window is how long a revealed secret stays visible.
	Window time.Duration
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// ExpiryCheckInterval defines how often the session watcher runs.
	ExpiryCheckInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Version is the configured application version, if any.
	Version string
	// LogFilePath is the client log destination.
	LogFilePath string
	// Adapter contains backend address and timeout.
	Adapter ClientAdapter
	// Session contains session storage settings.
	Session ClientSession
	// Reveal contains the reveal window.
	Reveal ClientReveal
	// Workers contains background job settings.
	Workers ClientWorkers
}

// DefaultClientConfig returns the configuration used for every field that
// no source sets.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Session: ClientSession{DSN: DefaultSessionDSN},
		Reveal:  ClientReveal{Window: DefaultRevealWindow},
		Workers: ClientWorkers{ExpiryCheckInterval: DefaultExpiryCheckInterval},
	}
}

// GetClientConfig builds and validates the client config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps the fields
// relevant to the client runtime, fills the gaps from
// [DefaultClientConfig], and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg)
}

func newClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		Version:     cfg.App.Version,
		LogFilePath: cfg.Log.FilePath,
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Session: ClientSession{DSN: cfg.Session.DSN},
		Reveal:  ClientReveal{Window: cfg.Reveal.Window},
		Workers: ClientWorkers{ExpiryCheckInterval: cfg.Workers.ExpiryCheckInterval},
	}

	if err := mergo.Merge(clientCfg, DefaultClientConfig()); err != nil {
		return nil, fmt.Errorf("error applying config defaults: %w", err)
	}

	return clientCfg, clientCfg.validate()
}
