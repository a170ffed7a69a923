package checkers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisChecker struct {
	client  *redis.Client
	timeout time.Duration
}

// NewRedisChecker builds a readiness checker that pings the client,
// giving up after timeout (non-positive means one second).
func NewRedisChecker(client *redis.Client, timeout time.Duration) *RedisChecker {
	if timeout <= 0 {
		timeout = time.Second
	}
	return &RedisChecker{client: client, timeout: timeout}
}

func (c *RedisChecker) Name() string { return "redis" }

func (c *RedisChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.client.Ping(ctx).Err()
}
