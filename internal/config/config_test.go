package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSecret is long enough to pass the minimum-length check.
const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LOSTFOUND_JWT_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "lostfound_dev", cfg.Database.DBName)
	assert.Equal(t, 25, cfg.Database.MaxConns)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTTL)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LOSTFOUND_JWT_SECRET", testSecret)
	t.Setenv("LOSTFOUND_DB_HOST", "db.internal")
	t.Setenv("LOSTFOUND_DB_PORT", "6432")
	t.Setenv("LOSTFOUND_REDIS_ADDR", "redis.internal:6379")
	t.Setenv("LOSTFOUND_JWT_ACCESS_TTL", "30m")
	t.Setenv("LOSTFOUND_SERVER_ADDR", ":9090")
	t.Setenv("LOSTFOUND_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6432, cfg.Database.Port)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("LOSTFOUND_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOSTFOUND_JWT_SECRET is required")
}

func TestLoad_ShortJWTSecret(t *testing.T) {
	t.Setenv("LOSTFOUND_JWT_SECRET", "too-short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 characters")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantMsg string
	}{
		{name: "non-numeric port", key: "LOSTFOUND_DB_PORT", value: "not-a-port", wantMsg: "as int"},
		{name: "port out of range", key: "LOSTFOUND_DB_PORT", value: "70000", wantMsg: "must be 1-65535"},
		{name: "zero max conns", key: "LOSTFOUND_DB_MAX_CONNS", value: "0", wantMsg: "must be >= 1"},
		{name: "bad duration", key: "LOSTFOUND_JWT_ACCESS_TTL", value: "fifteen minutes", wantMsg: "as duration"},
		{name: "negative access ttl", key: "LOSTFOUND_JWT_ACCESS_TTL", value: "-5m", wantMsg: "must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOSTFOUND_JWT_SECRET", testSecret)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	db := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "lostfound",
		Password: "secret",
		DBName:   "lostfound_dev",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=lostfound password=secret dbname=lostfound_dev sslmode=disable",
		db.DSN(),
	)
}
