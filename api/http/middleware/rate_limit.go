package middleware

import (
	"net/http"
	"sync"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/dshop/shop/pkg/metrics"
)

// limiterStore lazily creates one token-bucket limiter per key.
type limiterStore struct {
	limiters sync.Map // map[string]*rate.Limiter
	rps      float64
	burst    int
}

func (s *limiterStore) get(key string) *rate.Limiter {
	if v, ok := s.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(rate.Limit(s.rps), s.burst)
	actual, _ := s.limiters.LoadOrStore(key, lim)
	return actual.(*rate.Limiter)
}

// RateLimit returns a Fiber middleware enforcing a token-bucket limit per
// client IP. Auth endpoints sit in front of credential checks, so the key
// is always the caller address; authenticated keying is not needed here.
// rps = allowed events per second, burst = maximum tokens in bucket.
func RateLimit(rps float64, burst int) fiber.Handler {
	store := &limiterStore{rps: rps, burst: burst}
	return func(c *fiber.Ctx) error {
		ip := c.IP()
		if ip == "" {
			ip = "unknown"
		}

		if !store.get("ip:" + ip).Allow() {
			c.Set("Retry-After", "1")
			metrics.RateLimitRejected.WithLabelValues("memory").Inc()
			return c.Status(http.StatusTooManyRequests).JSON(fiber.Map{"message": "rate limit exceeded"})
		}
		metrics.RateLimitAllowed.WithLabelValues("memory").Inc()
		return c.Next()
	}
}
