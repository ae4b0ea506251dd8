package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const (
	rateLimitPeriod = 1 * time.Minute
	rateLimitCount  = 5
)

// RateLimiter throttles a route per client IP using Redis. When no Redis
// client is configured, or Redis is unreachable, requests pass through.
func RateLimiter(client *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if client == nil {
			return c.Next()
		}

		key := "rate_limit:" + c.IP()
		count, err := client.Incr(c.Context(), key).Result()
		if err != nil {
			return c.Next()
		}
		if count == 1 {
			client.Expire(c.Context(), key, rateLimitPeriod)
		}
		if count > rateLimitCount {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many requests"})
		}
		return c.Next()
	}
}
