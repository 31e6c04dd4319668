// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_VERSION": "1.2.3",

		"ADAPTER_ADDRESS":         "http://vault.local:4000",
		"ADAPTER_REQUEST_TIMEOUT": "30s",

		"SESSION_DSN": "/tmp/session.db",

		"REVEAL_WINDOW": "20s",

		"WORKERS_EXPIRY_CHECK_INTERVAL": "1m",

		"LOG_FILE_PATH": "/tmp/client.log",
	})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, "http://vault.local:4000", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "/tmp/session.db", cfg.Session.DSN)
	assert.Equal(t, 20*time.Second, cfg.Reveal.Window)
	assert.Equal(t, time.Minute, cfg.Workers.ExpiryCheckInterval)
	assert.Equal(t, "/tmp/client.log", cfg.Log.FilePath)
}

func TestParseEnv_Empty(t *testing.T) {
	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("REVEAL_WINDOW", "soon")

	err := parseEnv(&StructuredConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}
