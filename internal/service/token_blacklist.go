package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/prperemyshlev/seller-portal/pkg/database"
)

// redisTokenBlacklist keeps revoked tokens in Redis so every server instance sees them
type redisTokenBlacklist struct {
	redis *database.Redis
}

// NewRedisTokenBlacklist creates a Redis-backed token blacklist
func NewRedisTokenBlacklist(redis *database.Redis) TokenBlacklist {
	return &redisTokenBlacklist{redis: redis}
}

func (b *redisTokenBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	if err := b.redis.Client.Set(ctx, blacklistKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to add token to blacklist: %w", err)
	}
	return nil
}

func (b *redisTokenBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	exists, err := b.redis.Client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return exists > 0, nil
}

// memoryTokenBlacklist is used when no Redis is configured
type memoryTokenBlacklist struct {
	cache *gocache.Cache
}

// NewMemoryTokenBlacklist creates an in-process token blacklist
func NewMemoryTokenBlacklist() TokenBlacklist {
	return &memoryTokenBlacklist{cache: gocache.New(gocache.NoExpiration, 10*time.Minute)}
}

func (b *memoryTokenBlacklist) Add(_ context.Context, token string, ttl time.Duration) error {
	b.cache.Set(blacklistKey(token), struct{}{}, ttl)
	return nil
}

func (b *memoryTokenBlacklist) Contains(_ context.Context, token string) (bool, error) {
	_, found := b.cache.Get(blacklistKey(token))
	return found, nil
}

// blacklistKey stores a digest rather than the bearer token itself
func blacklistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "blacklist:token:" + hex.EncodeToString(sum[:])
}
