package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvAPIURL         = "CUSTOMERCONNECT_API_URL"
	EnvStatePath      = "CUSTOMERCONNECT_STATE"
	EnvLogLevel       = "CUSTOMERCONNECT_LOG_LEVEL"
	EnvRequestTimeout = "CUSTOMERCONNECT_REQUEST_TIMEOUT"
	EnvCacheTTL       = "CUSTOMERCONNECT_CACHE_TTL"
	EnvLogFormat      = "CUSTOMERCONNECT_LOG_FORMAT"
)

// loadDotEnv exports the variables of a dotenv file into the process
// environment. Variables that are already set keep their values; a missing
// file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// parseEnv overlays cfg with CUSTOMERCONNECT_* variables. Empty values are
// ignored.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := lookup(EnvStatePath); ok && v != "" {
		cfg.StatePath = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvRequestTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := lookup(EnvCacheTTL); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCacheTTL, err)
		}
		cfg.CacheTTL = d
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		cfg.LogFormat = v
	}
	return nil
}
