package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://test/db")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("SERVER_ENV", "production")
	t.Setenv("SERVER_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://test/db", cfg.Database.DSN)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "production", cfg.Server.Env)

	// Defaults fill the gaps.
	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, 7, cfg.JWT.TTLDays)
	assert.Equal(t, 10, cfg.OTP.ExpiryMinutes)
}

func TestLoadFromYAML(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: 8080
  env: development
database:
  url: "postgres://yaml/db"
jwt:
  secret: "yaml-secret"
  ttl_days: 3
otp:
  expiry_minutes: 5
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres://yaml/db", cfg.Database.DSN)
	assert.Equal(t, "yaml-secret", cfg.JWT.Secret)
	assert.Equal(t, 3, cfg.JWT.TTLDays)
	assert.Equal(t, 5, cfg.OTP.ExpiryMinutes)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
