package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  environment: development
  log_level: debug
  read_timeout_seconds: 3
upstream:
  use_mock: false
  base_address: https://bored-api.appbrewery.com/
  activity_path: random
  timeout_seconds: 4
  pooled_connection_lifetime_minutes: 2
cors:
  allowed_origins:
    - http://localhost:5173
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Server.IsDevelopment())
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.False(t, cfg.Upstream.UseMock)
	assert.Equal(t, "https://bored-api.appbrewery.com/", cfg.Upstream.BaseAddress)
	assert.Equal(t, "random", cfg.Upstream.ActivityPath)
	assert.Equal(t, 4*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 2*time.Minute, cfg.Upstream.PooledConnectionLifetime)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "upstream:\n  use_mock: true\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Environment)
	assert.False(t, cfg.Server.IsDevelopment())
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 15*time.Minute, cfg.Upstream.PooledConnectionLifetime)
	assert.True(t, cfg.Upstream.UseMock)
	assert.Empty(t, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
upstream:
  use_mock: false
  base_address: https://bored-api.appbrewery.com/
  activity_path: random
`)
	t.Setenv("SERVER_PORT", "7000")
	t.Setenv("UPSTREAM_USE_MOCK", "true")
	t.Setenv("UPSTREAM_BASE_ADDRESS", "http://localhost:3000/")
	t.Setenv("UPSTREAM_ACTIVITY_PATH", "api/activity")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.True(t, cfg.Upstream.UseMock)
	assert.Equal(t, "http://localhost:3000/", cfg.Upstream.BaseAddress)
	assert.Equal(t, "api/activity", cfg.Upstream.ActivityPath)
}

func TestLoad_IgnoresUnparsableOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\nupstream:\n  use_mock: true\n")
	t.Setenv("SERVER_PORT", "not-a-port")
	t.Setenv("UPSTREAM_USE_MOCK", "maybe")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Upstream.UseMock)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "Port out of range", content: "server:\n  port: 70000\n"},
		{name: "Unknown environment", content: "server:\n  environment: staging\n"},
		{name: "Unknown log level", content: "server:\n  log_level: verbose\n"},
		{name: "Empty allowed origin", content: "cors:\n  allowed_origins:\n    - \"\"\n"},
		{name: "Malformed YAML", content: "server: [port\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tc.content))
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, cfg)
}
