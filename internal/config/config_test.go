package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/od")
	t.Setenv("ENV", "")
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("MIGRATIONS_PATH", "")
	t.Setenv("WINDOW_CAPACITY", "")
	t.Setenv("LOAD_CONCURRENCY", "")
	t.Setenv("BOOTSTRAP_TIMEOUT", "")
	t.Setenv("HOLDER_RELOAD_INTERVAL", "")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultEnvironment, cfg.Environment)
	assert.Equal(t, DefaultMigrationsPath, cfg.MigrationsPath)
	assert.Equal(t, DefaultWindowCapacity, cfg.WindowCapacity)
	assert.Equal(t, DefaultLoadConcurrency, cfg.LoadConcurrency)
	assert.Equal(t, DefaultBootstrapTimeout, cfg.BootstrapTimeout)
	assert.Zero(t, cfg.HolderReloadInterval)
	assert.False(t, cfg.BotEnabled())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/od")
	t.Setenv("ENV", "production")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("WINDOW_CAPACITY", "16")
	t.Setenv("LOAD_CONCURRENCY", "2")
	t.Setenv("BOOTSTRAP_TIMEOUT", "5s")
	t.Setenv("HOLDER_RELOAD_INTERVAL", "10m")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 16, cfg.WindowCapacity)
	assert.Equal(t, 2, cfg.LoadConcurrency)
	assert.Equal(t, 5*time.Second, cfg.BootstrapTimeout)
	assert.Equal(t, 10*time.Minute, cfg.HolderReloadInterval)
	assert.True(t, cfg.BotEnabled())
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"missing dsn", "DB_DSN", ""},
		{"capacity not a number", "WINDOW_CAPACITY", "eight"},
		{"capacity zero", "WINDOW_CAPACITY", "0"},
		{"concurrency negative", "LOAD_CONCURRENCY", "-1"},
		{"bad timeout", "BOOTSTRAP_TIMEOUT", "soon"},
		{"negative interval", "HOLDER_RELOAD_INTERVAL", "-1m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DB_DSN", "postgres://localhost/od")
			t.Setenv("WINDOW_CAPACITY", "")
			t.Setenv("LOAD_CONCURRENCY", "")
			t.Setenv("BOOTSTRAP_TIMEOUT", "")
			t.Setenv("HOLDER_RELOAD_INTERVAL", "")
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
