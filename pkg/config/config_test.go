// nolint: funlen
package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phonebook/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("loads config from environment variables", func(t *testing.T) {
		envVars := map[string]string{
			"APP_ENV":        "test",
			"PORT":           "9090",
			"LOG_LEVEL":      "debug",
			"SENTRY_DSN":     "https://test@sentry.io/123",
			"ALLOW_ORIGINS":  "*",
			"STORAGE_DRIVER": "postgres",
			"DATA_FILE":      "/tmp/book.bin",
			"DB_NAME":        "testdb",
			"DB_HOST":        "localhost",
			"DB_PORT":        "5433",
			"DB_USER":        "testuser",
			"DB_PASS":        "testpass",
			"ENABLE_SSL":     "true",
			"DDB_REGION":     "eu-west-1",
			"DDB_TABLE":      "books",
			"DDB_BOOK_KEY":   "home",
		}
		for key, value := range envVars {
			t.Setenv(key, value)
		}

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "https://test@sentry.io/123", cfg.SentryDSN)
		assert.Equal(t, "*", cfg.AllowOrigins)
		assert.Equal(t, config.DriverPostgres, cfg.Storage.Driver)
		assert.Equal(t, "/tmp/book.bin", cfg.Storage.DataFile)
		assert.Equal(t, "testdb", cfg.DB.Name)
		assert.Equal(t, "localhost", cfg.DB.Host)
		assert.Equal(t, 5433, cfg.DB.Port)
		assert.Equal(t, "testuser", cfg.DB.User)
		assert.Equal(t, "testpass", cfg.DB.Pass)
		assert.True(t, cfg.DB.EnableSSL)
		assert.Equal(t, "eu-west-1", cfg.DynamoDB.Region)
		assert.Equal(t, "books", cfg.DynamoDB.Table)
		assert.Equal(t, "home", cfg.DynamoDB.BookKey)
	})

	t.Run("applies defaults", func(t *testing.T) {
		for _, key := range []string{"APP_ENV", "PORT", "LOG_LEVEL", "STORAGE_DRIVER", "DATA_FILE", "DB_PORT", "DDB_BOOK_KEY"} {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}

		cfg, err := config.LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "local", cfg.AppEnv)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, config.DriverFile, cfg.Storage.Driver)
		assert.Equal(t, "phonebook.bin", cfg.Storage.DataFile)
		assert.Equal(t, 5432, cfg.DB.Port)
		assert.Equal(t, "phonebook", cfg.DynamoDB.BookKey)
	})

	t.Run("handles invalid port number", func(t *testing.T) {
		t.Setenv("PORT", "invalid")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("handles invalid boolean value", func(t *testing.T) {
		t.Setenv("ENABLE_SSL", "not-a-boolean")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("rejects unknown storage driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "redis")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "unknown storage driver")
	})
}

func TestConfig_Origins(t *testing.T) {
	cfg := &config.Config{AllowOrigins: " https://a.example, ,https://b.example "}

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins())
	assert.Nil(t, config.Empty.Origins())
}
