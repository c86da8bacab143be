package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := Default()
	cfg.URL = "http://localhost:8080/"
	return cfg
}

func TestResolveDefaults(t *testing.T) {
	cfg := validConfig()

	require.NoError(t, cfg.Resolve())

	assert.Equal(t, DefaultRequests, cfg.Requests)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
	assert.Equal(t, 10*time.Second, cfg.TimeoutDuration)
	assert.Equal(t, 5.0, cfg.Capacity.PrecisionPct)
	assert.Equal(t, 0.95, cfg.Capacity.SuccessRatePct)
	assert.Equal(t, 500*time.Millisecond, cfg.Capacity.P99ThresholdDur)
}

func TestResolveRejectsZeroConcurrency(t *testing.T) {
	cfg := validConfig()
	cfg.Concurrency = 0

	require.ErrorIs(t, cfg.Resolve(), ErrZeroConcurrency)
}

func TestResolveRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing url", func(c *Config) { c.URL = "" }},
		{"bad scheme", func(c *Config) { c.URL = "ftp://example.com" }},
		{"zero requests", func(c *Config) { c.Requests = 0 }},
		{"negative warmup", func(c *Config) { c.Warmup = -1 }},
		{"bad timeout", func(c *Config) { c.Timeout = "soon" }},
		{"zero timeout", func(c *Config) { c.Timeout = "0s" }},
		{"capacity range inverted", func(c *Config) { c.Capacity.MinConcurrency = 10; c.Capacity.MaxConcurrency = 5 }},
		{"capacity bad rate", func(c *Config) { c.Capacity.SuccessRate = "lots" }},
		{"capacity rate out of range", func(c *Config) { c.Capacity.SuccessRate = "150%" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Resolve())
		})
	}
}

func TestLoadFileOverlaysValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
url: http://localhost:9000/
requests: 50
timeout: 3s
influx:
  enabled: true
  host: http://influx:8181
`), 0o600))

	cfg := Default()
	require.NoError(t, LoadFile(cfg, path))

	assert.Equal(t, "http://localhost:9000/", cfg.URL)
	assert.Equal(t, 50, cfg.Requests)
	assert.Equal(t, "3s", cfg.Timeout)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency, "unset file fields keep defaults")
	assert.True(t, cfg.Influx.Enabled)
	assert.Equal(t, "http://influx:8181", cfg.Influx.Host)

	require.NoError(t, cfg.Resolve())
}

func TestLoadFileRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte("url = 'x'"), 0o600))

	assert.Error(t, LoadFile(Default(), path))
}

func TestLoadFileMissing(t *testing.T) {
	assert.Error(t, LoadFile(Default(), filepath.Join(t.TempDir(), "absent.yaml")))
}
