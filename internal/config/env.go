package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names recognized by datascan.
const (
	// EnvThreshold overrides the performance threshold.
	EnvThreshold = "DATASCAN_THRESHOLD"

	// EnvOutput overrides the report file path.
	EnvOutput = "DATASCAN_OUTPUT"

	// EnvDBDir overrides the history database directory.
	EnvDBDir = "DATASCAN_DB_DIR"

	// EnvNoHistory disables history recording when set to a true value.
	EnvNoHistory = "DATASCAN_NO_HISTORY"
)

// ApplyEnvironment overlays environment variables onto the config.
// A .env file in the current directory is honored when present; godotenv
// never overrides variables already set in the real environment, so the
// precedence within this step is environment over .env file. CLI flags are
// applied afterwards by the CLI layer and win over both.
func (c *Config) ApplyEnvironment() error {
	// A missing .env file is the normal case, not an error
	_ = godotenv.Load() //nolint:errcheck // .env is optional

	if v := os.Getenv(EnvThreshold); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvThreshold, v, err)
		}
		c.Threshold = threshold
	}

	if v := os.Getenv(EnvOutput); v != "" {
		c.OutputFile = v
	}

	if v := os.Getenv(EnvDBDir); v != "" {
		c.DBDir = v
	}

	if v := os.Getenv(EnvNoHistory); v != "" {
		noHistory, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvNoHistory, v, err)
		}
		c.NoHistory = noHistory
	}

	return nil
}
