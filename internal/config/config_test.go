package config

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 168*time.Hour, cfg.SessionTTL)
	assert.Equal(t, DefaultLimits(), cfg.Limits)
	assert.Empty(t, cfg.SeedAllowList)
	assert.Equal(t, []string{"en", "ko"}, cfg.SupportedLanguages)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SEED_ALLOW_LIST", "111,222")
	t.Setenv("DISCORD_CLIENT_ID", "client")
	t.Setenv("CHARACTER_MIN_ITEM_LEVEL", "1302.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, []string{"111", "222"}, cfg.SeedAllowList)
	assert.Equal(t, "client", cfg.Discord.ClientID)
	assert.Equal(t, 1302.5, cfg.Limits.MinItemLevel)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_UnsupportedDriver(t *testing.T) {
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("DB_DRIVER", "mysql")
	_, err := Load()
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{PGUser: "u", PGPassword: "p", PGHost: "h", PGPort: "5432", PGDB: "d"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.PostgresDSN())

	cfg.PGUser = "raid@lead"
	cfg.PGPassword = "p@ss:w/rd#1"
	dsn := cfg.PostgresDSN()
	assert.NotContains(t, dsn, "p@ss")

	parsed, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "raid@lead", parsed.User.Username())
	pass, _ := parsed.User.Password()
	assert.Equal(t, "p@ss:w/rd#1", pass)
	assert.Equal(t, "h:5432", parsed.Host)
}
