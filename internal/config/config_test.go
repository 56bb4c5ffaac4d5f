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

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "db:\n  driver: sqlite\n")
	cfg, err := Load(path, false)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadHeaderTimeout)
	assert.Equal(t, "admin_token", cfg.Auth.CookieName)
	assert.Equal(t, 168*time.Hour, cfg.Auth.CookieMaxAge)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, "0 0 21 * * *", cfg.Digest.Schedule)
	assert.True(t, cfg.App.IsDev())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DV_DB_DRIVER", "sqlite")
	t.Setenv("DV_AUTH_ADMIN_TOKEN", "from-env")
	t.Setenv("DV_APP_ENV", "prod")

	cfg, err := Load("does-not-exist.yaml", true)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.AdminToken)
	assert.False(t, cfg.App.IsDev())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), false)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{App: AppConfig{Env: "prod"}, DB: DBConfig{Driver: "sqlite"}}
	assert.Error(t, cfg.Validate())

	cfg.Auth.AdminToken = "t"
	assert.NoError(t, cfg.Validate())

	cfg.DB.Driver = "mysql"
	assert.Error(t, cfg.Validate())
}

func TestLocation(t *testing.T) {
	assert.Equal(t, time.UTC, AppConfig{}.Location())
	assert.Equal(t, time.UTC, AppConfig{Timezone: "Not/AZone"}.Location())
	assert.Equal(t, "Europe/Berlin", AppConfig{Timezone: "Europe/Berlin"}.Location().String())
}
