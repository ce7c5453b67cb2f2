package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, SequenceBackendDatabase, cfg.Sequence.Backend)
	assert.Equal(t, 5*time.Second, cfg.Email.PollInterval)
	assert.Equal(t, 12*time.Hour, cfg.JWT.AccessTokenExpiry)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", ":memory:")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("REPORT_SEQUENCE_BACKEND", "redis")
	t.Setenv("EMAIL_WORKER_POLL_INTERVAL", "30s")
	t.Setenv("RESEND_BASE_URL", "http://127.0.0.1:8025")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, ":memory:", cfg.Database.URL)
	assert.Equal(t, SequenceBackendRedis, cfg.Sequence.Backend)
	assert.Equal(t, 30*time.Second, cfg.Email.PollInterval)
	assert.Equal(t, "http://127.0.0.1:8025", cfg.Email.ResendBaseURL)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  port: 7070\ngemini:\n  model: custom-model\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "custom-model", cfg.Gemini.Model)
}

func TestLoad_RedisSequenceRequiresRedis(t *testing.T) {
	t.Setenv("REPORT_SEQUENCE_BACKEND", "redis")

	_, err := Load()
	assert.ErrorContains(t, err, "requires REDIS_URL")
}

func TestLoad_UnsupportedDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "mysql")

	_, err := Load()
	assert.ErrorContains(t, err, "unsupported database driver")
}
