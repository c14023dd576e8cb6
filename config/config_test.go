package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_DIR", dir)
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DB_FILE", "")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("EVENTS_HEARTBEAT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "myposts.db"), cfg.DBPath)
	assert.Equal(t, "unix:"+filepath.Join(dir, "myposts.sock"), cfg.ListenAddr)
	assert.Equal(t, "http://localhost:4200", cfg.CORSOrigins)
	assert.Equal(t, 15*time.Second, cfg.EventsHeartbeat)
	assert.False(t, cfg.IsProduction())

	// every Load builds its own value
	again, err := Load()
	require.NoError(t, err)
	assert.NotSame(t, cfg, again)
	assert.Equal(t, cfg, again)
}

func TestLoad_Overrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_DIR", dir)
	t.Setenv("ENV", "production")
	t.Setenv("DB_FILE", "notes.db")
	t.Setenv("LISTEN_ADDR", "127.0.0.1:4321")
	t.Setenv("EVENTS_HEARTBEAT", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, filepath.Join(dir, "notes.db"), cfg.DBPath)
	assert.Equal(t, "127.0.0.1:4321", cfg.ListenAddr)
	assert.Equal(t, 2*time.Second, cfg.EventsHeartbeat)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"Heartbeat not a duration", "EVENTS_HEARTBEAT", "soon"},
		{"Negative heartbeat", "EVENTS_HEARTBEAT", "-1s"},
		{"DB file with directory", "DB_FILE", "../elsewhere.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATA_DIR", t.TempDir())
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("MYPOSTS_TEST_KEY", "value")
	assert.Equal(t, "value", GetEnv("MYPOSTS_TEST_KEY", "default"))
	assert.Equal(t, "default", GetEnv("MYPOSTS_TEST_MISSING", "default"))
}
