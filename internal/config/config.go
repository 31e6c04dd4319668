// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// vault-guard client. It aggregates all sub-configurations and is populated
// by merging values from environment variables, command-line flags, and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings.
	App App `envPrefix:"APP_"`

	// Adapter holds the backend address and request timeout used by the
	// API gateway.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Session holds settings for local persistence of the bearer token.
	Session Session `envPrefix:"SESSION_"`

	// Reveal holds the secret-reveal window settings.
	Reveal Reveal `envPrefix:"REVEAL_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds logging output settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string reported by the client.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Adapter holds the network settings of the outbound transport.
type Adapter struct {
	// HTTPAddress is the backend base address, either a full URL
	// ("http://localhost:4000") or "host:port".
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single backend request (e.g. "10s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Session holds local session persistence settings.
type Session struct {
	// DSN is the SQLite file in which the bearer token is kept between
	// runs. ":memory:" disables persistence across restarts.
	// Env: SESSION_DSN
	DSN string `env:"DSN"`
}

// Reveal holds settings of the secret-reveal workflow.
type Reveal struct {
	// Window is how long a revealed plaintext stays visible before it is
	// retracted automatically (e.g. "15s").
	// Env: REVEAL_WINDOW
	Window time.Duration `env:"WINDOW"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// ExpiryCheckInterval is how often the session watcher checks the
	// token's "exp" claim.
	// Env: WORKERS_EXPIRY_CHECK_INTERVAL
	ExpiryCheckInterval time.Duration `env:"EXPIRY_CHECK_INTERVAL"`
}

// Log holds logging output settings.
type Log struct {
	// FilePath is the file the client logs are appended to. Empty means a
	// "logs" file next to the executable.
	// Env: LOG_FILE_PATH
	FilePath string `env:"FILE_PATH"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
