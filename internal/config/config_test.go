package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("DEFAULT_LIMIT", "5")
	t.Setenv("MAXIMUM_LIMIT", "25")
	t.Setenv("ACCESS_TOKEN_EXPIRATION", "30m")
	t.Setenv("REFRESH_TOKEN_EXPIRATION", "3600")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 5, cfg.Pagination.DefaultLimit)
	assert.Equal(t, 25, cfg.Pagination.MaximumLimit)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, time.Hour, cfg.JWT.RefreshTokenExpiration)
}

func validConfig() *AppConfig {
	return &AppConfig{
		Port: "8080",
		Database: DatabaseConfig{
			Host: "localhost",
			Port: "5432",
			User: "user",
			Name: "db",
		},
		Pagination: PaginationConfig{DefaultLimit: 10, MaximumLimit: 50},
		JWT: JWTConfig{
			AccessTokenSecret:      "a",
			AccessTokenExpiration:  time.Minute,
			RefreshTokenSecret:     "r",
			RefreshTokenExpiration: time.Hour,
		},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, validConfig().Validate())
	})

	t.Run("maximum below default", func(t *testing.T) {
		cfg := validConfig()
		cfg.Pagination.MaximumLimit = 5
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MAXIMUM_LIMIT")
	})

	t.Run("missing secrets and database", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWT.AccessTokenSecret = ""
		cfg.Database.Host = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ACCESS_TOKEN_SECRET")
		assert.Contains(t, err.Error(), "DB_HOST")
	})
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_DURATION_VAR"
	defer os.Unsetenv(key)

	os.Setenv(key, "2h")
	assert.Equal(t, 2*time.Hour, getEnvDuration(key, time.Second))

	os.Setenv(key, "90")
	assert.Equal(t, 90*time.Second, getEnvDuration(key, time.Second))

	os.Setenv(key, "soon")
	assert.Equal(t, time.Second, getEnvDuration(key, time.Second))
}
