package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Settings returns the non-secret settings, for diagnostics.
func (c *Config) Settings() map[string]any {
	return map[string]any{
		"app_version":           c.App.Version,
		"app_debug":             c.App.Debug,
		"app_base_path":         c.App.BasePath,
		"db_driver":             c.Database.Driver,
		"valkey_enabled":        c.Database.ValkeyEnabled,
		"cache_ttl":             c.Cache.TTL.String(),
		"search_dashboard_path": c.Search.DashboardPath,
	}
}

// Helpers
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		vLower := strings.ToLower(v)
		return vLower == "1" || vLower == "true" || vLower == "yes" || vLower == "on"
	}
	return fallback
}

// getEnvDuration accepts Go durations ("90s") or plain seconds ("90").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}
