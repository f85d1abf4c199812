package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/ownergate/gatekeeper/internal/core/domain"
)

// ConfigStore implements ports.ConfigStore on plain Redis string keys.
// Writes never expire; the bootstrap keys live until a reset deletes them.
type ConfigStore struct {
	client *redis.Client
}

// NewConfigStore wraps the given Redis client.
func NewConfigStore(client *redis.Client) *ConfigStore {
	return &ConfigStore{client: client}
}

// Close releases the underlying client.
func (s *ConfigStore) Close() error {
	return s.client.Close()
}

func (s *ConfigStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, domain.StoreError("redis get "+key, err)
	}
	return v, true, nil
}

func (s *ConfigStore) Put(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return domain.StoreError("redis set "+key, err)
	}
	return nil
}

func (s *ConfigStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return domain.StoreError("redis del "+key, err)
	}
	return nil
}

func (s *ConfigStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return domain.StoreError("redis ping", err)
	}
	return nil
}
