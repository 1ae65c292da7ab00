// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Source site: hamariweb.com
// --------------------------------------------------------------------------

const (
	DefaultSourceOrigin = "https://hamariweb.com"
	DefaultSchedulesURL = "https://hamariweb.com/cricket/schedules.aspx"
	DefaultFlagsBaseURL = "https://hamariweb.com//cricket/flags/"
	DefaultUserAgent    = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
)

// Flag mapping store backends.
const (
	FlagsStoreFile     = "file"
	FlagsStorePostgres = "postgres"
	FlagsStoreMemory   = "memory"
)

// --------------------------------------------------------------------------
// Config struct: populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache
	CacheEnabled     bool
	ScheduleCacheTTL time.Duration

	// Source site
	SourceOrigin     string
	SchedulesURL     string
	FlagsBaseURL     string
	UserAgent        string
	ScheduleTimeout  time.Duration
	ScorecardTimeout time.Duration
	FlagTimeout      time.Duration
	FlagDownloadRPM  int

	// Static assets and flag mapping
	StaticDir              string
	FlagsStore             string
	FlagsReconcileInterval time.Duration

	// Database (only for FLAGS_STORE=postgres)
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{"*"}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 120),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled:     envBool("CACHE_ENABLED", true),
		ScheduleCacheTTL: envDuration("SCHEDULE_CACHE_TTL", 60*time.Second),

		SourceOrigin:     strings.TrimRight(envOr("SOURCE_ORIGIN", DefaultSourceOrigin), "/"),
		SchedulesURL:     envOr("SCHEDULES_URL", DefaultSchedulesURL),
		FlagsBaseURL:     envOr("FLAGS_BASE_URL", DefaultFlagsBaseURL),
		UserAgent:        envOr("USER_AGENT", DefaultUserAgent),
		ScheduleTimeout:  envDuration("SCHEDULE_TIMEOUT", 20*time.Second),
		ScorecardTimeout: envDuration("SCORECARD_TIMEOUT", 25*time.Second),
		FlagTimeout:      envDuration("FLAG_TIMEOUT", 20*time.Second),
		FlagDownloadRPM:  envInt("FLAG_DOWNLOAD_RPM", 120),

		StaticDir:              envOr("STATIC_DIR", "static"),
		FlagsStore:             strings.ToLower(envOr("FLAGS_STORE", FlagsStoreFile)),
		FlagsReconcileInterval: envDuration("FLAGS_RECONCILE_INTERVAL", 10*time.Minute),

		DatabaseURL:    envOr("DATABASE_URL", ""),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 4),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,
	}

	switch cfg.FlagsStore {
	case FlagsStoreFile, FlagsStoreMemory:
	case FlagsStorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL must be set when FLAGS_STORE=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown FLAGS_STORE %q (want file, postgres or memory)", cfg.FlagsStore)
	}

	return cfg, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// MappingPath is where the file-backed flag mapping lives.
func (c *Config) MappingPath() string {
	return filepath.Join(c.StaticDir, "flags", "mapping.json")
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

// envDuration accepts Go duration strings ("90s", "2m") or bare seconds.
func envDuration(key string, fallback time.Duration) time.Duration {
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

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
