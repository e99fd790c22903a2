package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewConfig_Defaults(t *testing.T) {
	path := writeConfigFile(t, ``)

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, "standard", cfg.LogFormat)
	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, filepath.Join(filepath.Dir(path), DefaultPapersDir), cfg.Papers.Dir)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	require.NotNil(t, cfg.CORS.AllowCredentials)
	assert.True(t, *cfg.CORS.AllowCredentials)
	assert.False(t, cfg.Datadog.Enabled)
	assert.Equal(t, DefaultDatadogService, cfg.Datadog.Service)

	assert.Equal(t, Timeouts{
		Read:     15 * time.Second,
		Write:    15 * time.Second,
		Idle:     60 * time.Second,
		Shutdown: 10 * time.Second,
	}, cfg.Server.Timeouts())
}

func TestNewConfig_Explicit(t *testing.T) {
	path := writeConfigFile(t, `
log_level  = "debug"
log_format = "json"

server {
  addr             = "127.0.0.1:9000"
  shutdown_timeout = "2s"
}

papers {
  dir = "/srv/papers"
}

cors {
  allowed_origins   = ["https://readable.example.com", "http://localhost:3000"]
  allow_credentials = false
}

datadog {
  enabled = true
  env     = "staging"
}
`)

	cfg, err := NewConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.Timeouts().Shutdown)
	assert.Equal(t, 15*time.Second, cfg.Server.Timeouts().Read)
	assert.Equal(t, "/srv/papers", cfg.Papers.Dir)
	assert.Equal(t,
		[]string{"https://readable.example.com", "http://localhost:3000"},
		cfg.CORS.AllowedOrigins)
	assert.False(t, *cfg.CORS.AllowCredentials)
	assert.True(t, cfg.Datadog.Enabled)
	assert.Equal(t, "staging", cfg.Datadog.Env)
	assert.Equal(t, DefaultDatadogService, cfg.Datadog.Service)
}

func TestNewConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown log level",
			content: `log_level = "loud"`,
			wantErr: "LogLevel",
		},
		{
			name:    "bad duration",
			content: "server {\n  read_timeout = \"soon\"\n}",
			wantErr: "must be a duration",
		},
		{
			name:    "origin with path",
			content: "cors {\n  allowed_origins = [\"http://localhost:3000/app\"]\n}",
			wantErr: "must not contain a path",
		},
		{
			name:    "origin without scheme",
			content: "cors {\n  allowed_origins = [\"localhost:3000\"]\n}",
			wantErr: "must be an origin",
		},
		{
			name:    "unknown attribute",
			content: `port = 8001`,
			wantErr: "failed to parse configuration file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(writeConfigFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewConfig_MissingFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration file not found")

	_, err = NewConfig("")
	assert.EqualError(t, err, "configuration file path is required")
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := GenerateSimplifiedConfig(filepath.Join(dir, "papers"))
	require.NoError(t, cfg.Validate())

	path := filepath.Join(dir, "readable.hcl")
	require.NoError(t, WriteConfig(cfg, path))

	loaded, err := NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
