// Package config assembles runtime settings for the RentEase CLI. Sources
// are layered, later ones overriding earlier: defaults, JSON file, .env /
// environment, command-line flags.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the RentEase CLI.
type Config struct {
	// APIBaseURL is the root of the backend REST API, without a trailing
	// slash.
	APIBaseURL string

	// RequestTimeout bounds every API request.
	RequestTimeout time.Duration

	// StateDir holds the local sqlite state database.
	StateDir string

	// EmailCheckRPS throttles interactive email-availability probes.
	// Zero or negative disables throttling.
	EmailCheckRPS float64

	// Verbose enables debug logging.
	Verbose bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:3000"
	c.RequestTimeout = 15 * time.Second
	c.StateDir = defaultStateDir()
	c.EmailCheckRPS = 2
}

func defaultStateDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, "rentease")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment, and command-line flags, in that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
