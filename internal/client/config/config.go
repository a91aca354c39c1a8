package config

import (
	"os"
	"path/filepath"
	"time"
)

const DefaultAPIBaseURL = "http://localhost:5000/api"

// Config holds runtime settings for the CustomerConnect console.
//
// Fields:
//   - APIBaseURL: base URL of the REST backend, including the /api prefix.
//   - StatePath: SQLite file holding the persisted session.
//   - RequestTimeout: upper bound for a single API request.
//   - CacheTTL: lifetime of cached GET responses; 0 (the default) disables
//     the cache. A cached read is not re-checked with the server, so a
//     revoked session is noticed only after its entries expire.
//   - LogLevel: debug, info, warn or error.
//   - LogFormat: "console" (zap) or "text" (slog key=value lines).
type Config struct {
	APIBaseURL     string
	StatePath      string
	RequestTimeout time.Duration
	CacheTTL       time.Duration
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.StatePath = defaultStatePath()
	c.RequestTimeout = 15 * time.Second
	c.CacheTTL = 0
	c.LogLevel = "info"
	c.LogFormat = "console"
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "customerconnect", "state.db")
}

// LoadConfig applies defaults, then the environment (after loading .env if
// present), then the JSON file named by -c/-config, then flags. Later
// sources take precedence over earlier ones. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
