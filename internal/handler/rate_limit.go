package handler

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prperemyshlev/seller-portal/internal/service"
	"go.uber.org/zap"
)

// RateLimitMiddleware creates a rate limiting middleware.
// Limiter failures are logged and the request is let through.
func RateLimitMiddleware(
	rateLimiter service.RateLimiter,
	limit int,
	window time.Duration,
	keyFunc func(*gin.Context) string,
	logger *zap.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.FullPath() + ":" + keyFunc(c)

		result, err := rateLimiter.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))

		if !result.Allowed {
			seconds := int(math.Ceil(result.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(seconds))
			respondError(c, http.StatusTooManyRequests,
				fmt.Sprintf("Too many requests, try again in %ds", seconds), nil)
			return
		}

		c.Next()
	}
}

// IPBasedKey keys on the client IP as gin resolves it. Forwarding headers only count when the
// request came through one of the engine's trusted proxies.
func IPBasedKey(c *gin.Context) string {
	return c.ClientIP()
}
