package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiter is a Redis-backed fixed-window request limiter keyed by client
// IP. The store failing does not take the API down with it: errors log and
// the request passes.
type RateLimiter struct {
	client *redis.Client
	window time.Duration
	max    int
	logger *zap.Logger
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(client *redis.Client, window time.Duration, max int, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		client: client,
		window: window,
		max:    max,
		logger: logger.Named("RateLimiter"),
	}
}

// Middleware returns the gin handler enforcing the limit.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s", c.ClientIP())

		count, err := rl.client.Incr(ctx, key).Result()
		if err != nil {
			rl.logger.Warn("rate limit check failed, allowing request", zap.Error(err))
			c.Next()
			return
		}
		if count == 1 {
			if err := rl.client.Expire(ctx, key, rl.window).Err(); err != nil {
				rl.logger.Warn("failed to set rate limit window", zap.Error(err))
			}
		}

		if count > int64(rl.max) {
			c.JSON(http.StatusTooManyRequests, gin.H{"status": "fail", "response": "Too many requests. Please try again later."})
			c.Abort()
			return
		}

		c.Next()
	}
}
