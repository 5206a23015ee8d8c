package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prperemyshlev/seller-portal/pkg/database"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps session values in Redis, namespaced by prefix
type RedisStore struct {
	redis  *database.Redis
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store. A zero ttl keeps values until removed.
func NewRedisStore(redis *database.Redis, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "session"
	}
	return &RedisStore{redis: redis, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(k string) string {
	return fmt.Sprintf("%s:%s", s.prefix, k)
}

// Get reads a session value
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.redis.Client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get session value: %w", err)
	}
	return v, nil
}

// Set writes a session value
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.redis.Client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session value: %w", err)
	}
	return nil
}

// Remove deletes a session value
func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.redis.Client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to remove session value: %w", err)
	}
	return nil
}
