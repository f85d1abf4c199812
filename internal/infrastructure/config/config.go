package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Store drivers.
const (
	DriverRedis    = "redis"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverNone     = "none"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	PublicURL string `env:"PUBLIC_URL, default=http://localhost:8080"`

	Session SessionConfig
	OAuth   OAuthConfig

	ConfigStore string `env:"CONFIG_STORE, default=redis"`
	AdminStore  string `env:"ADMIN_STORE,  default=postgres"`

	Redis    RedisConfig
	Postgres PostgresConfig
	Mongo    MongoConfig
}

type SessionConfig struct {
	CookieSecure bool `env:"COOKIE_SECURE, default=false"`
}

type OAuthConfig struct {
	StateSecret string        `env:"STATE_SECRET, required"`
	StateTTL    time.Duration `env:"STATE_TTL,    default=10m"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR,      default=localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,        default=0"`
	Timeout  time.Duration `env:"REDIS_TIMEOUT,   default=5s"`
	PoolSize int           `env:"REDIS_POOL_SIZE, default=4"`
}

type PostgresConfig struct {
	DSN     string `env:"POSTGRES_DSN,     default=postgres://localhost:5432/gatekeeper?sslmode=disable"`
	Migrate bool   `env:"POSTGRES_MIGRATE, default=true"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=gatekeeper"`
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from the process environment using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration from the given lookuper and validates the
// store drivers.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	switch cfg.ConfigStore {
	case DriverRedis, DriverMemory:
	default:
		return nil, fmt.Errorf("config: CONFIG_STORE must be %q or %q, got %q", DriverRedis, DriverMemory, cfg.ConfigStore)
	}
	switch cfg.AdminStore {
	case DriverPostgres, DriverMongo, DriverMemory, DriverNone:
	default:
		return nil, fmt.Errorf("config: unsupported ADMIN_STORE %q", cfg.AdminStore)
	}

	return &cfg, nil
}
