package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_TypesenseConfig(t *testing.T) {
	t.Setenv("TYPESENSE_URL", "http://test-typesense:8108")
	t.Setenv("TYPESENSE_API_KEY", "test-key")
	t.Setenv("TYPESENSE_ENABLED", "true")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "http://test-typesense:8108", cfg.Typesense.URL)
	assert.Equal(t, "test-key", cfg.Typesense.APIKey)
	assert.True(t, cfg.Typesense.Enabled)
}

func TestLoad_SearchDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Search.PageSize)
	assert.Equal(t, 10, cfg.Search.BlockSize)
	assert.Equal(t, time.Hour, cfg.Search.RegionsTTL)
	assert.Equal(t, 10*time.Minute, cfg.Search.ResultsTTL)
	assert.Equal(t, 37.4979, cfg.Search.FallbackLat)
	assert.Equal(t, 127.0276, cfg.Search.FallbackLng)
	assert.Equal(t, []string{"서울", "부산", "경기"}, cfg.Search.FallbackRegions)
	assert.True(t, cfg.Search.RequireCriteria)
	assert.Equal(t, BackendPostgres, cfg.Search.Backend)
}

func TestLoad_SearchOverrides(t *testing.T) {
	t.Setenv("SEARCH_PAGE_SIZE", "20")
	t.Setenv("SEARCH_RESULTS_TTL", "30s")
	t.Setenv("SEARCH_FALLBACK_REGIONS", " 대구 , ,광주")
	t.Setenv("SEARCH_BACKEND", "Typesense")
	t.Setenv("SEARCH_FALLBACK_LAT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Search.PageSize)
	assert.Equal(t, 30*time.Second, cfg.Search.ResultsTTL)
	assert.Equal(t, []string{"대구", "광주"}, cfg.Search.FallbackRegions)
	assert.Equal(t, BackendTypesense, cfg.Search.Backend)
	assert.Equal(t, 37.4979, cfg.Search.FallbackLat, "unparseable values keep the default")
}

func TestValidate_EmptyPasswordIsWarning(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")

	cfg, err := Load()
	require.NoError(t, err)

	warnings, err := cfg.Validate()
	assert.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "DB_PASSWORD")
}

func TestValidate_RejectsBadSearchSettings(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("SEARCH_PAGE_SIZE", "0")
	t.Setenv("SEARCH_BACKEND", "elastic")

	cfg, err := Load()
	require.NoError(t, err)

	warnings, err := cfg.Validate()
	assert.Empty(t, warnings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SEARCH_PAGE_SIZE")
	assert.Contains(t, err.Error(), `"elastic"`)
}

func TestDatabaseURL(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5433, User: "app", Password: "pw", Database: "branches", SSLMode: "disable"}

	assert.Equal(t, "postgres://app:pw@db:5433/branches?sslmode=disable", db.DatabaseURL())
	assert.Equal(t, "host=db port=5433 user=app password=pw dbname=branches sslmode=disable", db.DatabaseDSN())
}
