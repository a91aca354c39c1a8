package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestParseEnv(t *testing.T) {
	cfg := &Config{APIBaseURL: "default", StatePath: "default.db", LogLevel: "info", RequestTimeout: time.Second}

	err := parseEnv(cfg, lookupFrom(map[string]string{
		EnvAPIURL:         "https://crm.example.com/api",
		EnvStatePath:      "",
		EnvRequestTimeout: "45s",
	}))
	require.NoError(t, err)

	assert.Equal(t, &Config{
		APIBaseURL:     "https://crm.example.com/api",
		StatePath:      "default.db",
		LogLevel:       "info",
		RequestTimeout: 45 * time.Second,
	}, cfg)
}

func TestParseEnv_CacheAndLogFormat(t *testing.T) {
	cfg := &Config{LogFormat: "console"}

	err := parseEnv(cfg, lookupFrom(map[string]string{
		EnvCacheTTL:  "20s",
		EnvLogFormat: "text",
	}))
	require.NoError(t, err)
	assert.Equal(t, 20*time.Second, cfg.CacheTTL)
	assert.Equal(t, "text", cfg.LogFormat)

	err = parseEnv(cfg, lookupFrom(map[string]string{EnvCacheTTL: "forever"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvCacheTTL)
}

func TestParseEnv_BadTimeout(t *testing.T) {
	err := parseEnv(&Config{}, lookupFrom(map[string]string{EnvRequestTimeout: "soon"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvRequestTimeout)
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), "absent.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CUSTOMERCONNECT_TEST_DOTENV=from-file\n"), 0o600))

	t.Setenv("CUSTOMERCONNECT_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("CUSTOMERCONNECT_TEST_DOTENV"))

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("CUSTOMERCONNECT_TEST_DOTENV"))
}

func TestLoadDotEnv_KeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CUSTOMERCONNECT_TEST_KEEP=from-file\n"), 0o600))

	t.Setenv("CUSTOMERCONNECT_TEST_KEEP", "from-env")
	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "from-env", os.Getenv("CUSTOMERCONNECT_TEST_KEEP"))
}
