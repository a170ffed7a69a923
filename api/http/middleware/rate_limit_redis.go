package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/dshop/shop/pkg/metrics"
)

// RedisRateLimit provides a coarse fixed-window Redis-backed limiter keyed
// by client IP, for deployments with more than one replica. Algorithm:
// INCR a per-window key and compare against allowed = floor(rps*windowSeconds)+burst.
// Falls back to the in-memory limiter when no client is configured.
func RedisRateLimit(client *redis.Client, rps float64, burst int, window time.Duration) fiber.Handler {
	if client == nil {
		return RateLimit(rps, burst)
	}
	windowSeconds := int(window.Seconds())
	if windowSeconds <= 0 {
		windowSeconds = 1
	}
	allowedPerWindow := int(rps*float64(windowSeconds)) + burst
	return func(c *fiber.Ctx) error {
		ip := c.IP()
		if ip == "" {
			ip = "unknown"
		}
		bucket := time.Now().Unix() / int64(windowSeconds)
		redisKey := fmt.Sprintf("rl:ip:%s:%d", ip, bucket)

		cnt, err := client.Incr(c.Context(), redisKey).Result()
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"message": "rate limit check failed"})
		}
		if cnt == 1 {
			_ = client.Expire(c.Context(), redisKey, time.Duration(windowSeconds+1)*time.Second).Err()
		}
		if int(cnt) > allowedPerWindow {
			c.Set("Retry-After", fmt.Sprintf("%d", windowSeconds))
			metrics.RateLimitRejected.WithLabelValues("redis").Inc()
			return c.Status(http.StatusTooManyRequests).JSON(fiber.Map{"message": "rate limit exceeded"})
		}
		metrics.RateLimitAllowed.WithLabelValues("redis").Inc()
		return c.Next()
	}
}
