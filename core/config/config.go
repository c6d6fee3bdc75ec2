package config

import (
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Config holds all application configuration in a structured way.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Failover FailoverConfig
	Cache    CacheConfig
	Search   SearchConfig
}

type AppConfig struct {
	Version            string
	Port               string
	Debug              bool
	Environment        string
	BasePath           string
	TrustedProxies     []string
	CorsAllowedOrigins []string
	DashboardDir       string
	RateLimitPerMinute int
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string // File path for SQLite, DB Name for Postgres
	// URI overrides the assembled DSN when set.
	URI string

	ValkeyEnabled   bool
	ValkeyAddress   string
	ValkeyPassword  string
	ValkeyDB        int
	ValkeyKeyPrefix string
}

type FailoverConfig struct {
	ProbeTimeout   time.Duration
	ConnectTimeout time.Duration
	ReconnectWait  time.Duration
}

type CacheConfig struct {
	TTL time.Duration
}

type SearchConfig struct {
	DashboardPath    string
	RedirectMaxAge   int
	SuggestionMaxAge int
	SuggestionLimit  int
	DashboardCommand string
}

// Global provides access to the loaded configuration from the CLI layer.
var Global *Config

// LoadConfig loads configuration from Environment Variables or defaults.
func LoadConfig() (*Config, error) {
	storages := getEnv("APP_BASE_DIR", "storages")

	cors := []string{"http://localhost:5123"}
	if v := getEnv("APP_CORS_ALLOWED_ORIGINS", ""); v != "" {
		cors = strings.Split(v, ",")
	}

	appCfg := AppConfig{
		Version:            "v1.0.0",
		Port:               getEnv("APP_PORT", "5674"),
		Debug:              getEnvBool("APP_DEBUG", false),
		Environment:        getEnv("APP_ENV", "development"),
		BasePath:           getEnv("APP_BASE_PATH", ""),
		CorsAllowedOrigins: cors,
		DashboardDir:       getEnv("APP_DASHBOARD_DIR", ""),
		RateLimitPerMinute: getEnvInt("APP_RATE_LIMIT_PER_MINUTE", 1000),
	}
	if v := getEnv("APP_TRUSTED_PROXIES", ""); v != "" {
		appCfg.TrustedProxies = strings.Split(v, ",")
	}

	dbCfg := DatabaseConfig{
		Driver:          getEnv("DB_DRIVER", "sqlite"),
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnvInt("DB_PORT", 5432),
		User:            getEnv("DB_USER", "postgres"),
		Password:        getEnv("DB_PASSWORD", ""),
		Name:            getEnv("DB_NAME", filepath.Join(storages, "kabang.db")),
		URI:             getEnv("DB_URI", ""),
		ValkeyEnabled:   getEnvBool("VALKEY_ENABLED", false),
		ValkeyAddress:   getEnv("VALKEY_ADDRESS", "localhost:6379"),
		ValkeyPassword:  getEnv("VALKEY_PASSWORD", ""),
		ValkeyDB:        getEnvInt("VALKEY_DB", 0),
		ValkeyKeyPrefix: getEnv("VALKEY_KEY_PREFIX", "kabang:"),
	}

	failoverCfg := FailoverConfig{
		ProbeTimeout:   getEnvDuration("DB_PROBE_TIMEOUT", 500*time.Millisecond),
		ConnectTimeout: getEnvDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		ReconnectWait:  getEnvDuration("DB_RECONNECT_WAIT", 2*time.Second),
	}

	searchCfg := SearchConfig{
		DashboardPath:    getEnv("SEARCH_DASHBOARD_PATH", "/dashboard"),
		RedirectMaxAge:   getEnvInt("SEARCH_REDIRECT_MAX_AGE", 60),
		SuggestionMaxAge: getEnvInt("SUGGESTION_MAX_AGE", 5),
		SuggestionLimit:  getEnvInt("SUGGESTION_DEFAULT_LIMIT", 5),
		DashboardCommand: getEnv("SEARCH_DASHBOARD_COMMAND", "kabang"),
	}

	cfg := &Config{
		App:      appCfg,
		Database: dbCfg,
		Failover: failoverCfg,
		Cache:    CacheConfig{TTL: getEnvDuration("CACHE_TTL", 5*time.Minute)},
		Search:   searchCfg,
	}

	Global = cfg
	return cfg, nil
}

// DashboardURL is the dashboard path as browsers reach it, behind BasePath.
func (c *Config) DashboardURL() string {
	return path.Join("/", c.App.BasePath, c.Search.DashboardPath)
}
