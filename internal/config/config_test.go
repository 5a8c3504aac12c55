package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, DriverSpanner, cfg.Store.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTPAddr())
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.GRPCAddr())
	assert.Equal(t, "0 0 * * *", cfg.Refresh.Schedule)
	assert.Equal(t, 5*time.Minute, cfg.Refresh.Timeout)
	assert.Contains(t, cfg.Spanner.Database, "collecte-db")
	assert.False(t, cfg.OTel.TracingEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORE_DRIVER":        "postgres",
		"DB_DSN":              "postgres://collecte@localhost/collecte?sslmode=disable",
		"REFRESH_SCHEDULE":    "@every 1h",
		"SERVER_RATE_LIMIT":   "0",
		"OTEL_ENDPOINT":       "http://localhost:4318",
		"AUTH_JWT_SECRET":     "s3cret",
		"SERVER_READ_TIMEOUT": "5s",
	}))
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "@every 1h", cfg.Refresh.Schedule)
	assert.Zero(t, cfg.Server.RateLimit)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.OTel.TracingEnabled())
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"STORE_DRIVER": "mysql"}))
		assert.ErrorContains(t, err, "STORE_DRIVER")
	})

	t.Run("production needs a signing key", func(t *testing.T) {
		_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"APP_ENVIRONMENT": "production"}))
		assert.ErrorContains(t, err, "AUTH_JWT_SECRET")
	})
}
