package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("CACHE_TTL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "/dashboard", cfg.Search.DashboardPath)
	assert.Equal(t, 60, cfg.Search.RedirectMaxAge)
	assert.Same(t, cfg, Global)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("CACHE_TTL", "90")
	t.Setenv("DB_RECONNECT_WAIT", "750ms")
	t.Setenv("VALKEY_ENABLED", "on")
	t.Setenv("APP_CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 750*time.Millisecond, cfg.Failover.ReconnectWait)
	assert.True(t, cfg.Database.ValkeyEnabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.CorsAllowedOrigins)
}

func TestConfig_DashboardURL(t *testing.T) {
	cfg := &Config{Search: SearchConfig{DashboardPath: "/dashboard"}}
	assert.Equal(t, "/dashboard", cfg.DashboardURL())

	cfg.App.BasePath = "/kabang"
	assert.Equal(t, "/kabang/dashboard", cfg.DashboardURL())

	cfg.App.BasePath = "/kabang/"
	assert.Equal(t, "/kabang/dashboard", cfg.DashboardURL())
}

func TestConfig_SettingsOmitSecrets(t *testing.T) {
	cfg := &Config{
		App:      AppConfig{Version: "v1.0.0", BasePath: "/kabang"},
		Database: DatabaseConfig{Driver: "postgres", Password: "hunter2", ValkeyPassword: "s3cret"},
		Cache:    CacheConfig{TTL: time.Minute},
	}

	settings := cfg.Settings()
	assert.Equal(t, "postgres", settings["db_driver"])
	assert.Equal(t, "1m0s", settings["cache_ttl"])
	assert.Equal(t, "/kabang", settings["app_base_path"])
	for _, v := range settings {
		assert.NotEqual(t, "hunter2", v)
		assert.NotEqual(t, "s3cret", v)
	}
}
