package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/constants"
	apperrors "github.com/WebStaticCS/Addon-Sport-Live-Stremio/internal/errors"
	"github.com/WebStaticCS/Addon-Sport-Live-Stremio/pkg/logger"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAMLFile(t *testing.T) {
	path := writeFile(t, "config.yaml", `
port: "8080"
events_feed_url: https://feed.example/events.json
resolver_timeout: 3s
resolver_concurrency: 4
providers:
  streamtp:
    base_url: https://tp.example/global.php
    rate_limit: 2
`)
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load(logger.Discard())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://feed.example/events.json", cfg.EventsFeedURL)
	assert.Equal(t, 3*time.Second, cfg.ResolverTimeout.Std())
	assert.Equal(t, 4, cfg.ResolverConcurrency)

	tp := cfg.Providers[constants.ProviderStreamTP]
	assert.Equal(t, "https://tp.example/global.php", tp.BaseURL)
	assert.Equal(t, 2, tp.RateLimit)
	assert.Equal(t, constants.ProviderRateBurst, tp.Burst)

	// providers missing from the file keep their defaults
	assert.NotEmpty(t, cfg.Providers[constants.ProviderLa12HD].BaseURL)
}

func TestLoadJSONFileWithEnvOverride(t *testing.T) {
	path := writeFile(t, "config.json", `{
  "EVENTS_FEED_URL": "https://feed.example/a.json",
  "REQUEST_TIMEOUT": "45s",
  "METRICS_ENABLED": false
}`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("EVENTS_FEED_URL", "https://feed.example/b.json")
	t.Setenv("RESOLVER_CONCURRENCY", "2")

	cfg, err := Load(logger.Discard())
	require.NoError(t, err)

	assert.Equal(t, "https://feed.example/b.json", cfg.EventsFeedURL)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout.Std())
	assert.Equal(t, 2, cfg.ResolverConcurrency)
	assert.False(t, cfg.MetricsEnabled)
}

func TestLoadRequiresFeed(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("EVENTS_FEED_URL", "")

	_, err := Load(logger.Discard())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConfigurationInvalid))
}

func TestLoadRejectsBadEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("EVENTS_FEED_URL", "https://feed.example/a.json")
	t.Setenv("RESOLVER_TIMEOUT", "soon")

	_, err := Load(logger.Discard())
	assert.Error(t, err)
}

func TestValidateFillsDefaults(t *testing.T) {
	cfg := Default()
	cfg.EventsFeedURL = "file.json"
	cfg.ResolverConcurrency = 0
	cfg.ResolverTimeout = 0

	require.NoError(t, cfg.Validate())
	assert.Equal(t, constants.ResolverConcurrency, cfg.ResolverConcurrency)
	assert.Equal(t, constants.ResolverTimeout, cfg.ResolverTimeout.Std())
}
