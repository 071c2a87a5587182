package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/ticket_booking/internal/platform/config"
)

func TestLoadWithPath_FileAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(
		"SERVER_PORT=9090\nDATABASE_ENABLED=true\nDATABASE_HOST=db\nREDIS_IDEMPOTENCY_TTL=10m\n",
	), 0o600))

	cfg, err := config.LoadWithPath(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, ":9090", cfg.Server.Addr())
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "postgres://postgres:@db:5432/ticket_booking?sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, 10*time.Minute, cfg.Redis.IdempotencyTTL)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 1024, cfg.Booking.PostCommitBuffer)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.False(t, cfg.IsProduction())
}

func TestLoadWithPath_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SERVER_PORT=9090\n"), 0o600))
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("CATALOG_SEED_FILE", "configs/catalog.yaml")

	cfg, err := config.LoadWithPath(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "configs/catalog.yaml", cfg.Catalog.SeedFile)
}

func TestLoadWithPath_MissingFile(t *testing.T) {
	_, err := config.LoadWithPath(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoadWithPath_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SERVER_PORT=0\nBOOKING_POST_COMMIT_BUFFER=0\n"), 0o600))

	_, err := config.LoadWithPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server port")
	assert.Contains(t, err.Error(), "post-commit buffer")
}
