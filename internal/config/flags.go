package config

import (
	"flag"
	"fmt"
	"io"
	"time"
)

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a backend address (URL or host:port)
//	-t request timeout (e.g., "10s")
//	-d session database DSN
//	-r reveal window (e.g., "15s")
//	-expiry-check-interval session expiry check interval (e.g., "30s")
//	-log-file log file path
//	-c/-config json file path with configs
func parseFlags(args []string) (*StructuredConfig, error) {
	var address string
	var requestTimeout time.Duration
	var sessionDSN string
	var revealWindow time.Duration
	var expiryCheckInterval time.Duration
	var logFile string
	var jsonConfigPath string

	fs := flag.NewFlagSet("vault-guard", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&address, "a", "", "Backend address (http://host:port)")
	fs.DurationVar(&requestTimeout, "t", 0, "Request timeout (e.g., 10s)")
	fs.StringVar(&sessionDSN, "d", "", "Session database DSN")
	fs.DurationVar(&revealWindow, "r", 0, "Reveal window (e.g., 15s)")
	fs.DurationVar(&expiryCheckInterval, "expiry-check-interval", 0, "Session expiry check interval (e.g., 30s)")
	fs.StringVar(&logFile, "log-file", "", "Log file path")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		Adapter: Adapter{
			HTTPAddress:    address,
			RequestTimeout: requestTimeout,
		},
		Session: Session{
			DSN: sessionDSN,
		},
		Reveal: Reveal{
			Window: revealWindow,
		},
		Workers: Workers{
			ExpiryCheckInterval: expiryCheckInterval,
		},
		Log: Log{
			FilePath: logFile,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}
