package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_AllFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-a", "localhost:4000",
		"-t", "5s",
		"-d", ":memory:",
		"-r", "3s",
		"-expiry-check-interval", "10s",
		"-log-file", "/tmp/vg.log",
		"-c", "/etc/vg.json",
	})
	require.NoError(t, err)

	assert.Equal(t, "localhost:4000", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, ":memory:", cfg.Session.DSN)
	assert.Equal(t, 3*time.Second, cfg.Reveal.Window)
	assert.Equal(t, 10*time.Second, cfg.Workers.ExpiryCheckInterval)
	assert.Equal(t, "/tmp/vg.log", cfg.Log.FilePath)
	assert.Equal(t, "/etc/vg.json", cfg.JSONFilePath)
}

func TestParseFlags_ConfigAlias(t *testing.T) {
	cfg, err := parseFlags([]string{"-config", "/etc/vg.json"})
	require.NoError(t, err)
	assert.Equal(t, "/etc/vg.json", cfg.JSONFilePath)
}

func TestParseFlags_NoArgs(t *testing.T) {
	cfg, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"-unknown"}},
		{name: "bad duration", args: []string{"-t", "forever"}},
		{name: "missing value", args: []string{"-a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseFlags(tt.args)
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "error parsing flags")
		})
	}
}
