package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_OverpassConfig(t *testing.T) {
	os.Setenv("OVERPASS_URL", "http://test-overpass:9000/api/interpreter")
	os.Setenv("OVERPASS_TIMEOUT_SECONDS", "25")
	defer func() {
		os.Unsetenv("OVERPASS_URL")
		os.Unsetenv("OVERPASS_TIMEOUT_SECONDS")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "http://test-overpass:9000/api/interpreter", cfg.Overpass.URL)
	assert.Equal(t, 25, cfg.Overpass.TimeoutSeconds)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("OVERPASS_URL")
	os.Unsetenv("OVERPASS_TIMEOUT_SECONDS")
	os.Unsetenv("TYPESENSE_URL")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "https://overpass-api.de/api/interpreter", cfg.Overpass.URL)
	assert.Equal(t, 10, cfg.Overpass.TimeoutSeconds)
	assert.Equal(t, "http://localhost:8108", cfg.Typesense.URL)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5433,
		User:     "carefinder",
		Password: "secret",
		Database: "carefinder",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=db port=5433 user=carefinder password=secret dbname=carefinder sslmode=disable",
		cfg.DatabaseDSN())
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", cfg.RedisAddr())
}
