// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks the merged [StructuredConfig] before defaults are applied.
// Only values that can never become valid are rejected here; missing values
// are filled in by [GetClientConfig].
func (cfg *StructuredConfig) validate() error {
	if cfg.Adapter.RequestTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Reveal.Window < 0 {
		return ErrInvalidRevealConfigs
	}
	if cfg.Workers.ExpiryCheckInterval < 0 {
		return ErrInvalidWorkerConfigs
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Session.DSN == "" {
		return ErrInvalidSessionConfigs
	}

	if cfg.Reveal.Window <= 0 {
		return ErrInvalidRevealConfigs
	}

	if cfg.Workers.ExpiryCheckInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
