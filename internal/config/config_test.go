package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "memory", cfg.Storage.Backend)
	require.Equal(t, "0.0.0.0:8080", cfg.Server.ListenAddr())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marketplace.yaml")
	content := `
server:
  port: 9090
  read_timeout: 5s
storage:
  backend: file
  file_dir: /tmp/growthlab
celebrations:
  schedule: "@every 30s"
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, Duration(5*time.Second), cfg.Server.ReadTimeout)
	// Unset fields keep their defaults.
	require.Equal(t, Duration(15*time.Second), cfg.Server.WriteTimeout)
	require.Equal(t, "file", cfg.Storage.Backend)
	require.Equal(t, "/tmp/growthlab", cfg.Storage.FileDir)
	require.Equal(t, "@every 30s", cfg.Celebrations.Schedule)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Server.Port)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	require.Equal(t, 7070, cfg.Server.Port)
	require.Equal(t, "redis", cfg.Storage.Backend)
	require.Equal(t, "localhost:6379", cfg.Storage.RedisAddr)
}

func TestValidateRejectsIncompleteBackends(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Storage.Backend = "etcd" }},
		{"file without dir", func(c *Config) { c.Storage.Backend = "file" }},
		{"redis without addr", func(c *Config) { c.Storage.Backend = "redis" }},
		{"postgres without dsn", func(c *Config) { c.Storage.Backend = "postgres" }},
		{"bad port", func(c *Config) { c.Server.Port = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
