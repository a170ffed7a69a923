package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedApp(mw fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Post("/login", mw, func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func hit(t *testing.T, app *fiber.App) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRateLimit_RejectsAfterBurst(t *testing.T) {
	// 0 refill rate: only the initial burst passes.
	app := limitedApp(RateLimit(0, 2))

	assert.Equal(t, http.StatusOK, hit(t, app))
	assert.Equal(t, http.StatusOK, hit(t, app))
	assert.Equal(t, http.StatusTooManyRequests, hit(t, app))
}

func TestRedisRateLimit_FixedWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	// 1 rps over a 1s window plus burst 1 → 2 allowed per window.
	app := limitedApp(RedisRateLimit(client, 1, 1, time.Second))

	assert.Equal(t, http.StatusOK, hit(t, app))
	assert.Equal(t, http.StatusOK, hit(t, app))
	assert.Equal(t, http.StatusTooManyRequests, hit(t, app))
}

func TestRedisRateLimit_NilClientFallsBack(t *testing.T) {
	app := limitedApp(RedisRateLimit(nil, 0, 1, time.Second))

	assert.Equal(t, http.StatusOK, hit(t, app))
	assert.Equal(t, http.StatusTooManyRequests, hit(t, app))
}
