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
	cfg, err := Load(writeConfig(t, "log:\n  level: debug\n"))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "Asia/Bangkok", cfg.Timezone)
	assert.Equal(t, 100, cfg.Sync.BatchSize)
	assert.Equal(t, 30*time.Second, cfg.Sync.Timeout)
	assert.Equal(t, 1000, cfg.Credits.ChunkSize)
	assert.True(t, cfg.Credits.GrantAfterSync)
	assert.False(t, cfg.Credits.GrantOTAfterSync)
	assert.Equal(t, CursorBackendFile, cfg.Sync.Cursor.Backend)

	loc, err := cfg.Location()
	require.NoError(t, err)
	floor := cfg.EpochFloor(loc)
	assert.Equal(t, time.Date(2025, 12, 26, 0, 0, 0, 0, loc), floor)
}

func TestLoad_Devices(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
sync:
  timeout: 45s
  devices:
    - id: gate-1
      name: Main gate
      address: 192.168.0.151
    - id: canteen
      address: s3://exports/canteen/attlog.csv
      kind: csv
      timezone: Asia/Bangkok
rules:
  skip_lunch_break: true
`))
	require.NoError(t, err)

	require.Len(t, cfg.Sync.Devices, 2)
	assert.Equal(t, DeviceKindBridge, cfg.Sync.Devices[0].Kind)
	assert.Equal(t, DeviceKindCSV, cfg.Sync.Devices[1].Kind)
	assert.Equal(t, 45*time.Second, cfg.Sync.Timeout)
	assert.True(t, cfg.Rules.SkipLunchBreak)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TIMECLOCK_TIMEZONE", "UTC")
	t.Setenv("TIMECLOCK_CREDITS_CHUNK_SIZE", "250")

	cfg, err := Load(writeConfig(t, "timezone: Asia/Bangkok\n"))
	require.NoError(t, err)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 250, cfg.Credits.ChunkSize)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad timezone", "timezone: Mars/Olympus\n"},
		{"bad floor", "sync:\n  epoch_floor: 26/12/2025\n"},
		{"bad driver", "db:\n  driver: sqlite\n"},
		{"s3 cursor without bucket", "sync:\n  cursor:\n    backend: s3\n"},
		{"duplicate device", "sync:\n  devices:\n    - {id: a, address: x}\n    - {id: a, address: y}\n"},
		{"device kind", "sync:\n  devices:\n    - {id: a, address: x, kind: serial}\n"},
		{"missing address", "sync:\n  devices:\n    - {id: a}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestJWTKey(t *testing.T) {
	cfg := &Config{}
	_, err := cfg.JWTKey()
	assert.Error(t, err)

	cfg.Server.JWTSecret = "IxrAjDoa2FqElO7IhrSrUJELhUckePEPVpaePlS/Xaw="
	key, err := cfg.JWTKey()
	require.NoError(t, err)
	assert.Len(t, key, 32)
}
