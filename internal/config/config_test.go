package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "API_PORT", "SCHEDULES_URL", "SCHEDULE_CACHE_TTL",
		"SCHEDULE_TIMEOUT", "SCORECARD_TIMEOUT", "FLAGS_STORE", "STATIC_DIR"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.APIPort)
	assert.Equal(t, DefaultSchedulesURL, cfg.SchedulesURL)
	assert.Equal(t, 60*time.Second, cfg.ScheduleCacheTTL)
	assert.Equal(t, 20*time.Second, cfg.ScheduleTimeout)
	assert.Equal(t, 25*time.Second, cfg.ScorecardTimeout)
	assert.Equal(t, FlagsStoreFile, cfg.FlagsStore)
	assert.Equal(t, filepath.Join("static", "flags", "mapping.json"), cfg.MappingPath())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("SCHEDULE_CACHE_TTL", "90")
	t.Setenv("FLAG_TIMEOUT", "5s")
	t.Setenv("SOURCE_ORIGIN", "https://example.test/")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.APIPort)
	assert.Equal(t, 90*time.Second, cfg.ScheduleCacheTTL)
	assert.Equal(t, 5*time.Second, cfg.FlagTimeout)
	assert.Equal(t, "https://example.test", cfg.SourceOrigin)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowOrigins)
}

func TestLoad_PostgresStoreRequiresDatabaseURL(t *testing.T) {
	t.Setenv("FLAGS_STORE", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://localhost/flags")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, FlagsStorePostgres, cfg.FlagsStore)
}

func TestLoad_UnknownStore(t *testing.T) {
	t.Setenv("FLAGS_STORE", "redis")
	_, err := Load()
	assert.Error(t, err)
}
