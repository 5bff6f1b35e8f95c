package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "midas.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://rl.insider.gg", cfg.Source.BaseURL)
	assert.Equal(t, "en", cfg.Source.Locale)
	assert.Equal(t, "pc", cfg.Source.Platform)
	assert.Equal(t, "#SteamPrice > .pfData", cfg.Source.PriceSelector)
	assert.False(t, cfg.Source.WithQuality)
	assert.Equal(t, runtime.NumCPU(), cfg.Fetch.Concurrency)
	assert.Equal(t, 10*time.Second, cfg.Fetch.RequestTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Fetch.Deadline)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.PublishingEnabled())
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, `
source:
  base_url: http://localhost:8080
  with_quality: true
fetch:
  concurrency: 3
  request_timeout: 2s
  deadline: 1m
log:
  level: debug
  format: json
redis:
  addr: localhost:6379
  stream: valuations
metrics:
  textfile: /tmp/midas.prom
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Source.BaseURL)
	assert.Equal(t, "en", cfg.Source.Locale, "unset keys keep defaults")
	assert.True(t, cfg.Source.WithQuality)
	assert.Equal(t, 3, cfg.Fetch.Concurrency)
	assert.Equal(t, 2*time.Second, cfg.Fetch.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.Fetch.Deadline)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "valuations", cfg.Redis.Stream)
	assert.Equal(t, int64(1000), cfg.Redis.MaxLen)
	assert.Equal(t, "/tmp/midas.prom", cfg.Metrics.Textfile)
	assert.True(t, cfg.PublishingEnabled())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "fetch:\n  concurrency: 3\n")
	t.Setenv("MIDAS_CONCURRENCY", "16")
	t.Setenv("MIDAS_REQUEST_TIMEOUT", "500ms")
	t.Setenv("MIDAS_WITH_QUALITY", "true")
	t.Setenv("MIDAS_REDIS_ADDR", "redis:6379")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Fetch.Concurrency)
	assert.Equal(t, 500*time.Millisecond, cfg.Fetch.RequestTimeout)
	assert.True(t, cfg.Source.WithQuality)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("MIDAS_CONCURRENCY", "many")
	t.Setenv("MIDAS_DEADLINE", "soon")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid MIDAS_CONCURRENCY")
	assert.Contains(t, err.Error(), "invalid MIDAS_DEADLINE")
}

func TestLoad_LeavesValidationToCaller(t *testing.T) {
	cfg, err := Load(writeConfig(t, "fetch:\n  concurrency: 0\n"))
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())

	cfg.Fetch.Concurrency = 4
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "fetch: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"zero concurrency", func(c *Config) { c.Fetch.Concurrency = 0 }, "fetch.concurrency"},
		{"no timeout", func(c *Config) { c.Fetch.RequestTimeout = 0 }, "fetch.request_timeout"},
		{"no deadline", func(c *Config) { c.Fetch.Deadline = -time.Second }, "fetch.deadline"},
		{"empty base", func(c *Config) { c.Source.BaseURL = "" }, "source.base_url"},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("MIDAS_TEST_VAR", "set")
	assert.Equal(t, "set", getEnv("MIDAS_TEST_VAR", "fallback"))
	assert.Equal(t, "fallback", getEnv("MIDAS_TEST_UNSET", "fallback"))
}
