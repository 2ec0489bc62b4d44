package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 30, cfg.RateLimit.WriteRequests)
	assert.True(t, cfg.Server.IsDevelopment())
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.Expiry())
	assert.Equal(t, "teamboard:events", cfg.Realtime.Channel)
	assert.Equal(t, 30*24*time.Hour, cfg.Notifications.Retention())
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:5174"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com ,,https://b.example.com")
	t.Setenv("NOTIFICATION_RETENTION_DAYS", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr())
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 7*24*time.Hour, cfg.Notifications.Retention())
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("SERVER_ENV", "production")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Server.IsDevelopment())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", d.DSN())
}
