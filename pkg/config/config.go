package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Search backends
const (
	BackendPostgres  = "postgres"
	BackendTypesense = "typesense"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Typesense TypesenseConfig
	Search    SearchConfig
	OTEL      OTELConfig
	Log       LogConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host           string
	Port           int
	Env            string
	AllowedOrigins []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host           string
	Port           int
	User           string
	Password       string
	Database       string
	SSLMode        string
	MigrateOnStart bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Enabled  bool
}

// TypesenseConfig holds Typesense configuration
type TypesenseConfig struct {
	URL     string
	APIKey  string
	Enabled bool
}

// SearchConfig holds branch search tuning
type SearchConfig struct {
	PageSize        int
	BlockSize       int
	RegionsTTL      time.Duration
	ResultsTTL      time.Duration
	SessionTTL      time.Duration
	FallbackLat     float64
	FallbackLng     float64
	FallbackRegions []string
	RequireCriteria bool
	Backend         string
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Env:            getEnv("APP_ENV", "development"),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnvAsInt("DB_PORT", 5432),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", ""),
			Database:       getEnv("DB_NAME", "branchfinder"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MigrateOnStart: getEnvAsBool("DB_MIGRATE_ON_START", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},
		Typesense: TypesenseConfig{
			URL:     getEnv("TYPESENSE_URL", "http://localhost:8108"),
			APIKey:  getEnv("TYPESENSE_API_KEY", "xyz"),
			Enabled: getEnvAsBool("TYPESENSE_ENABLED", false),
		},
		Search: SearchConfig{
			PageSize:        getEnvAsInt("SEARCH_PAGE_SIZE", 5),
			BlockSize:       getEnvAsInt("SEARCH_BLOCK_SIZE", 10),
			RegionsTTL:      getEnvAsDuration("SEARCH_REGIONS_TTL", time.Hour),
			ResultsTTL:      getEnvAsDuration("SEARCH_RESULTS_TTL", 10*time.Minute),
			SessionTTL:      getEnvAsDuration("SEARCH_SESSION_TTL", 30*time.Minute),
			FallbackLat:     getEnvAsFloat("SEARCH_FALLBACK_LAT", 37.4979),
			FallbackLng:     getEnvAsFloat("SEARCH_FALLBACK_LNG", 127.0276),
			FallbackRegions: getEnvAsList("SEARCH_FALLBACK_REGIONS", []string{"서울", "부산", "경기"}),
			RequireCriteria: getEnvAsBool("SEARCH_REQUIRE_CRITERIA", true),
			Backend:         strings.ToLower(getEnv("SEARCH_BACKEND", BackendPostgres)),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "branchfinder"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Validate checks the configuration. Problems that the service can run
// with are returned as warnings; anything else is an error.
func (c *Config) Validate() ([]string, error) {
	var warnings []string
	var errs []error

	if c.Database.Password == "" {
		warnings = append(warnings, "DB_PASSWORD is empty; branch search will degrade if the database rejects the connection")
	}
	if c.Search.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("SEARCH_PAGE_SIZE must be positive, got %d", c.Search.PageSize))
	}
	if c.Search.BlockSize <= 0 {
		errs = append(errs, fmt.Errorf("SEARCH_BLOCK_SIZE must be positive, got %d", c.Search.BlockSize))
	}
	switch c.Search.Backend {
	case BackendPostgres:
	case BackendTypesense:
		if !c.Typesense.Enabled {
			warnings = append(warnings, "SEARCH_BACKEND=typesense but TYPESENSE_ENABLED is false; falling back to postgres")
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SEARCH_BACKEND %q", c.Search.Backend))
	}
	if c.Search.ResultsTTL < 0 || c.Search.RegionsTTL < 0 || c.Search.SessionTTL < 0 {
		errs = append(errs, errors.New("search TTLs must not be negative"))
	}

	return warnings, errors.Join(errs...)
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// DatabaseURL returns the connection string in URL form, as golang-migrate expects it
func (c *DatabaseConfig) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.Database,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated value, dropping blank entries
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
