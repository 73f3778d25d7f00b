package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/ledgerkit/backend/internal/domain/error"
	"github.com/ledgerkit/backend/internal/integration/entrypoint/dto"
)

// RateLimiter provides a fixed-window request limiter backed by Redis, so the
// counters survive restarts and are shared across instances.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter creates a new rate limiter instance.
func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Limit returns a Gin middleware handler that enforces the request limit per
// client. Authenticated requests are keyed by user ID, anonymous ones by IP.
// When Redis is unreachable the request passes through.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := c.ClientIP()
		if userID, ok := GetUserIDFromContext(c); ok {
			identity = userID.String()
		}
		key := fmt.Sprintf("ratelimit:%s:%s", c.FullPath(), identity)

		ctx := c.Request.Context()
		count, err := rl.client.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			rl.client.Expire(ctx, key, rl.window)
		}

		if count > int64(rl.limit) {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests, please try again later",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
