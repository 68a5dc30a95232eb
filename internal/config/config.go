package config

import (
	"os"
	"strconv"

	"github.com/TehRiehlDeal/teh-riehl-character-builder-sub000/internal/errors"
)

// Config holds all configuration for the application
type Config struct {
	Sheet SheetConfig
}

// SheetConfig holds configuration for the sheet calculator
type SheetConfig struct {
	// BundlePath is the character bundle to load
	BundlePath string

	// Verbose enables per-element processing logs
	Verbose bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Sheet: SheetConfig{
			BundlePath: os.Getenv("SHEET_BUNDLE"),
			Verbose:    getEnvAsBoolOrDefault("SHEET_VERBOSE", false),
		},
	}

	return cfg, nil
}

// Validate checks that required configuration is present. The bundle path
// may instead arrive as a command-line argument, so validation is separate
// from loading.
func (c *Config) Validate() error {
	if c.Sheet.BundlePath == "" {
		return errors.InvalidArgument("SHEET_BUNDLE is required")
	}
	return nil
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
