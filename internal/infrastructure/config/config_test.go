package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"STATE_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.ConfigStore != DriverRedis || cfg.AdminStore != DriverPostgres {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.OAuth.StateTTL != 10*time.Minute {
		t.Fatalf("unexpected state ttl: %s", cfg.OAuth.StateTTL)
	}
	if !cfg.Postgres.Migrate || cfg.Session.CookieSecure {
		t.Fatalf("unexpected bool defaults: %+v", cfg)
	}
	if cfg.IsProduction() {
		t.Fatalf("default env should not be production")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"STATE_SECRET":  "s3cret",
		"ENV":           "production",
		"CONFIG_STORE":  "memory",
		"ADMIN_STORE":   "mongo",
		"COOKIE_SECURE": "true",
		"REDIS_DB":      "3",
		"REDIS_TIMEOUT": "250ms",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.IsProduction() || cfg.ConfigStore != DriverMemory || cfg.AdminStore != DriverMongo {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if !cfg.Session.CookieSecure || cfg.Redis.DB != 3 || cfg.Redis.Timeout != 250*time.Millisecond || cfg.Redis.PoolSize != 4 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadFrom_Errors(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret": {},
		"bad config store": {
			"STATE_SECRET": "x",
			"CONFIG_STORE": "etcd",
		},
		"bad admin store": {
			"STATE_SECRET": "x",
			"ADMIN_STORE":  "sqlite",
		},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(context.Background(), envconfig.MapLookuper(env))
			if err == nil || !strings.HasPrefix(err.Error(), "config:") {
				t.Fatalf("expected config error, got %v", err)
			}
		})
	}
}
