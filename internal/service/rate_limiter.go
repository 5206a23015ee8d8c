package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/prperemyshlev/seller-portal/pkg/database"
	"github.com/redis/go-redis/v9"
)

// redisRateLimiter implements a sliding window log in a sorted set per key
type redisRateLimiter struct {
	redis *database.Redis
}

// NewRedisRateLimiter creates a Redis-backed rate limiter
func NewRedisRateLimiter(redis *database.Redis) RateLimiter {
	return &redisRateLimiter{redis: redis}
}

func (r *redisRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (RateLimitResult, error) {
	now := time.Now()
	windowStart := now.Add(-window)
	redisKey := "ratelimit:" + key

	if err := r.redis.Client.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart.UnixNano(), 10)).Err(); err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to clean old entries: %w", err)
	}

	count, err := r.redis.Client.ZCard(ctx, redisKey).Result()
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to count entries: %w", err)
	}

	if count >= int64(limit) {
		result := RateLimitResult{RetryAfter: window}
		oldest, err := r.redis.Client.ZRangeWithScores(ctx, redisKey, 0, 0).Result()
		if err == nil && len(oldest) > 0 {
			result.RetryAfter = window - now.Sub(time.Unix(0, int64(oldest[0].Score)))
		}
		return result, nil
	}

	err = r.redis.Client.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: strconv.FormatInt(now.UnixNano(), 10),
	}).Err()
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to add entry: %w", err)
	}

	// best effort; the window cleanup above bounds the set anyway
	_ = r.redis.Client.Expire(ctx, redisKey, window+time.Minute).Err()

	return RateLimitResult{Allowed: true, Remaining: limit - int(count) - 1}, nil
}

// memoryRateLimiter is a fixed window counter for single-instance deployments
type memoryRateLimiter struct {
	mu    sync.Mutex
	cache *gocache.Cache
	now   func() time.Time
}

type rateWindow struct {
	count   int
	resetAt time.Time
}

// NewMemoryRateLimiter creates an in-process rate limiter
func NewMemoryRateLimiter() RateLimiter {
	return &memoryRateLimiter{
		cache: gocache.New(gocache.NoExpiration, 5*time.Minute),
		now:   time.Now,
	}
}

func (r *memoryRateLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (RateLimitResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	w := rateWindow{resetAt: now.Add(window)}
	if v, found := r.cache.Get(key); found {
		if current := v.(rateWindow); now.Before(current.resetAt) {
			w = current
		}
	}

	if w.count >= limit {
		return RateLimitResult{RetryAfter: w.resetAt.Sub(now)}, nil
	}

	w.count++
	r.cache.Set(key, w, w.resetAt.Sub(now))
	return RateLimitResult{Allowed: true, Remaining: limit - w.count}, nil
}
