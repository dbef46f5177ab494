package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter counts requests per caller in a fixed window.
type RedisLimiter struct {
	client *redis.Client
	limit  int // Max requests per window
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

func usageKey(userID string) string {
	return "usage:" + userID
}

// Consume adds to the caller's usage and reports whether the new total is within
// the limit. The window starts with the first request. Rejected requests count too.
func (r *RedisLimiter) Consume(ctx context.Context, userID string, requests int) (bool, error) {
	key := usageKey(userID)

	var usage *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		usage = pipe.IncrBy(ctx, key, int64(requests))
		pipe.ExpireNX(ctx, key, r.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("record usage for %s: %w", userID, err)
	}
	return usage.Val() <= int64(r.limit), nil
}

// NoopLimiter never limits.
type NoopLimiter struct{}

func (NoopLimiter) Consume(context.Context, string, int) (bool, error) { return true, nil }
