package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, a negative request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidSessionConfigs indicates invalid session storage settings.
	ErrInvalidSessionConfigs = errors.New("invalid session configuration")
	// ErrInvalidRevealConfigs indicates a non-positive reveal window.
	ErrInvalidRevealConfigs = errors.New("invalid reveal configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, a non-positive expiry check interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
