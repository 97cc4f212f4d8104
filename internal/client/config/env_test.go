package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(envServerAddr, "stackquery.dev:443")
	t.Setenv(envRequestTimeout, "30s")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "stackquery.dev:443", cfg.ServerEndpointAddr)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "data/client.db", cfg.DatabasePath)
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STACKQUERY_LOG_LEVEL=error\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv(envLogLevel) })

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "error", cfg.LogLevel)
}

func TestParseEnv_BadTimeoutPanics(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(envRequestTimeout, "soon")

	cfg := &Config{}
	require.Panics(t, func() { parseEnv(cfg) })
}
