package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "remote:\n  base_url: http://tracker.local\n"))
	require.NoError(t, err)

	assert.Equal(t, "http://tracker.local", cfg.Remote.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Server.CacheTTL)
	assert.Equal(t, 10*time.Minute, cfg.Server.RateLimitIdle)
	assert.Equal(t, "/api/sync", cfg.Sync.PushPath)
	assert.Equal(t, time.Second, cfg.Sync.ReconnectMin)
	assert.Equal(t, 30*time.Second, cfg.Sync.ReconnectMax)
	assert.True(t, cfg.Sync.ListenForPush())
	assert.False(t, cfg.Sync.PreserveOnFailure)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, DefaultSnapshotKey, cfg.Snapshot.Key)
	assert.Equal(t, 1, cfg.WorkerPool.Size)
	assert.False(t, cfg.Push.Enabled())
}

func TestLoad_ExampleFile(t *testing.T) {
	cfg, err := Load("config.example.yaml")
	require.NoError(t, err)

	assert.Equal(t, "application/json", cfg.Remote.Headers["Accept"])
	assert.Equal(t, 2, cfg.WorkerPool.Size)
	assert.Equal(t, 3600, cfg.Push.TTL)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
sync:
  preserve_on_failure: true
  push_enabled: false
  reconnect_min_ms: 50
  reconnect_max_ms: 20
database:
  driver: postgres
  dsn: postgres://localhost/tracker
`))
	require.NoError(t, err)

	assert.True(t, cfg.Sync.PreserveOnFailure)
	assert.False(t, cfg.Sync.ListenForPush())
	assert.Equal(t, 50*time.Millisecond, cfg.Sync.ReconnectMin)
	assert.Equal(t, 30*time.Second, cfg.Sync.ReconnectMax, "max below min falls back to the default")
	assert.Equal(t, "postgres://localhost/tracker", cfg.Database.DSN)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
