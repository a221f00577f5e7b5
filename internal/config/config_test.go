package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("RATE_LIMIT_REQUESTS", "")
	t.Setenv("APP_ENV", "")

	cfg := Load()

	assert.Equal(t, StoragePostgres, cfg.StorageBackend)
	assert.Equal(t, 100, cfg.RateLimitRequests)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxBodyBytes)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "Mongo")
	t.Setenv("STORE_TIMEOUT_SECONDS", "2")
	t.Setenv("APP_ENV", "production")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("MAX_DB_CONNS", "not-a-number")

	cfg := Load()

	assert.Equal(t, StorageMongo, cfg.StorageBackend)
	assert.Equal(t, 2*time.Second, cfg.StoreTimeout)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, int32(16), cfg.MaxDBConns)
}

func TestLoadRejectsNonPositiveLimits(t *testing.T) {
	t.Setenv("RATE_LIMIT_WINDOW_MINUTES", "0")
	t.Setenv("RATE_LIMIT_REQUESTS", "-5")
	t.Setenv("MAX_BODY_MB", "0")
	t.Setenv("JWT_EXPIRY_HOURS", "0")

	cfg := Load()

	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 100, cfg.RateLimitRequests)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxBodyBytes)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
}

func TestLoadTrustedProxies(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "")
	assert.Nil(t, Load().TrustedProxies)

	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.10")
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.10"}, Load().TrustedProxies)
}
