// Package config loads the service configuration from the environment.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Storage drivers.
const (
	DriverSpanner  = "spanner"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `env:",prefix=SERVER_"`
	Store   StoreConfig   `env:",prefix=STORE_"`
	Spanner SpannerConfig `env:",prefix=SPANNER_"`
	DB      DBConfig      `env:",prefix=DB_"`
	Refresh RefreshConfig `env:",prefix=REFRESH_"`
	Auth    AuthConfig    `env:",prefix=AUTH_"`
	App     AppConfig     `env:",prefix=APP_"`
	OTel    OTelConfig    `env:",prefix=OTEL_"`
}

// ServerConfig holds listener settings.
type ServerConfig struct {
	Host            string        `env:"HOST,default=0.0.0.0"`
	HTTPPort        string        `env:"HTTP_PORT,default=8080"`
	GRPCPort        string        `env:"GRPC_PORT,default=9090"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT,default=30s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT,default=30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=15s"`
	RateLimit       float64       `env:"RATE_LIMIT,default=50"` // requests per second, 0 disables
	RateBurst       int           `env:"RATE_BURST,default=100"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Driver string `env:"DRIVER,default=spanner"`
}

// SpannerConfig holds the Spanner database path.
type SpannerConfig struct {
	Database string `env:"DATABASE,default=projects/test-project/instances/dev-instance/databases/collecte-db"`
}

// DBConfig holds the SQL backend settings.
type DBConfig struct {
	DSN             string        `env:"DSN,default=file:collecte.db"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS,default=25"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS,default=5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME,default=5m"`
	AutoMigrate     bool          `env:"AUTO_MIGRATE,default=true"`
}

// RefreshConfig drives the scheduled status refresher.
type RefreshConfig struct {
	Enabled  bool          `env:"ENABLED,default=true"`
	Schedule string        `env:"SCHEDULE,default=0 0 * * *"` // daily at midnight
	Timeout  time.Duration `env:"TIMEOUT,default=5m"`
	TimeZone string        `env:"TIMEZONE,default=UTC"`
}

// AuthConfig holds the bearer token verification key.
type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET"`
	Issuer    string `env:"ISSUER"`
}

// AppConfig holds application-wide settings.
type AppConfig struct {
	Name        string `env:"NAME,default=collecte-service"`
	Environment string `env:"ENVIRONMENT,default=development"`
}

// OTelConfig enables tracing when Endpoint is set.
type OTelConfig struct {
	Endpoint string `env:"ENDPOINT"`
	Enabled  bool   `env:"ENABLED,default=true"`
}

// Load loads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSpanner, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Auth.JWTSecret == "" && c.App.IsProduction() {
		return fmt.Errorf("AUTH_JWT_SECRET is required in production")
	}
	if c.Refresh.Enabled && c.Refresh.Schedule == "" {
		return fmt.Errorf("REFRESH_SCHEDULE cannot be empty when the refresher is enabled")
	}
	return nil
}

// HTTPAddr returns the HTTP listen address.
func (c *ServerConfig) HTTPAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.HTTPPort)
}

// GRPCAddr returns the gRPC listen address.
func (c *ServerConfig) GRPCAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.GRPCPort)
}

// IsProduction returns true if running in production.
func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

// TracingEnabled reports whether spans should be exported.
func (c *OTelConfig) TracingEnabled() bool {
	return c.Enabled && c.Endpoint != ""
}
