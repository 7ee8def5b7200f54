package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"marketplace-api/internal/utils"
)

// RateLimiter is a fixed-window limiter backed by redis, keyed by client
// IP. The window state survives process restarts.
type RateLimiter struct {
	Redis  *redis.Client
	Prefix string
	Limit  int
	Window time.Duration
}

func NewRateLimiter(r *redis.Client, prefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{Redis: r, Prefix: prefix, Limit: limit, Window: window}
}

func (r *RateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("%s:%s", r.Prefix, c.IP())
		count, err := r.Redis.Incr(c.Context(), key).Result()
		if err != nil {
			// Limiter outage must not take the API down with it.
			return c.Next()
		}
		if count == 1 {
			r.Redis.Expire(c.Context(), key, r.Window)
		}
		if count > int64(r.Limit) {
			return utils.JSONError(c, fiber.StatusTooManyRequests, "Too many requests, please try again later.")
		}
		return c.Next()
	}
}
