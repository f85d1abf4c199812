package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ownergate/gatekeeper/internal/core/domain"
)

const (
	defaultTimeout = 5 * time.Second
	// The bootstrap keys are read a handful of times per request and written
	// only during setup and reset.
	defaultPoolSize = 4
)

// Config holds the connection settings for the bootstrap configuration store.
type Config struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
	PoolSize int
}

// Connect dials the Redis instance that holds the OAuth config, owner record
// and setup flag, and returns it as a ConfigStore. Timeout bounds the dial,
// every command and the initial ping. A failed ping closes the client and
// wraps domain.ErrStoreUnavailable so startup reports the store, not the
// driver.
func Connect(ctx context.Context, cfg Config) (*ConfigStore, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		PoolSize:     poolSize,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, domain.StoreError(fmt.Sprintf("redis connect %s db %d", cfg.Addr, cfg.DB), err)
	}

	return NewConfigStore(client), nil
}
