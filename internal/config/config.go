package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	AutoMigrate        bool
}

// PaginationConfig bounds the page size accepted by list endpoints.
type PaginationConfig struct {
	DefaultLimit int
	MaximumLimit int
}

// JWTConfig holds token signing secrets and lifetimes.
type JWTConfig struct {
	Issuer                 string
	AccessTokenSecret      string
	AccessTokenExpiration  time.Duration
	RefreshTokenSecret     string
	RefreshTokenExpiration time.Duration
}

// LogConfig selects the zap level and encoder.
type LogConfig struct {
	Level  string
	Format string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Environment string
	Port        string
	Database    DatabaseConfig
	Pagination  PaginationConfig
	JWT         JWTConfig
	Log         LogConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Environment: getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			AutoMigrate:        getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Pagination: PaginationConfig{
			DefaultLimit: getEnvInt("DEFAULT_LIMIT", 10),
			MaximumLimit: getEnvInt("MAXIMUM_LIMIT", 50),
		},
		JWT: JWTConfig{
			Issuer:                 getEnv("JWT_ISSUER", "groupapi"),
			AccessTokenSecret:      getEnv("ACCESS_TOKEN_SECRET", ""),
			AccessTokenExpiration:  getEnvDuration("ACCESS_TOKEN_EXPIRATION", 15*time.Minute),
			RefreshTokenSecret:     getEnv("REFRESH_TOKEN_SECRET", ""),
			RefreshTokenExpiration: getEnvDuration("REFRESH_TOKEN_EXPIRATION", 7*24*time.Hour),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

// Validate reports every missing or inconsistent setting at once.
// It is meant to run once at startup; the config is never re-read afterwards.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.Database.Host == "" || c.Database.User == "" || c.Database.Name == "" {
		errs = append(errs, errors.New("DB_HOST, DB_USER and DB_NAME are required"))
	}
	if c.Pagination.DefaultLimit <= 0 {
		errs = append(errs, fmt.Errorf("DEFAULT_LIMIT must be positive, got %d", c.Pagination.DefaultLimit))
	}
	if c.Pagination.MaximumLimit < c.Pagination.DefaultLimit {
		errs = append(errs, fmt.Errorf("MAXIMUM_LIMIT (%d) must not be lower than DEFAULT_LIMIT (%d)",
			c.Pagination.MaximumLimit, c.Pagination.DefaultLimit))
	}
	if c.JWT.AccessTokenSecret == "" || c.JWT.RefreshTokenSecret == "" {
		errs = append(errs, errors.New("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET are required"))
	}
	if c.JWT.AccessTokenExpiration <= 0 || c.JWT.RefreshTokenExpiration <= 0 {
		errs = append(errs, errors.New("token expirations must be positive durations"))
	}
	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvDuration accepts Go durations ("15m") or a bare number of seconds.
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}
