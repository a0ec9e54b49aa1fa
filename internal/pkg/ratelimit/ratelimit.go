// internal/pkg/ratelimit/ratelimit.go
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window counter per (scope, client) kept in Redis.
type RateLimiter struct {
	client redis.Cmdable
	limit  int64
	window time.Duration
}

func NewRateLimiter(client redis.Cmdable, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window}
}

// Allow counts one hit and reports whether it is within the limit, plus the
// hits left in the current window. The increment and the window expiry are
// sent in one MULTI/EXEC, so a counter never outlives its window.
func (r *RateLimiter) Allow(ctx context.Context, scope, clientID string) (bool, int64, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", scope, clientID)

	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		// NX keeps the window fixed: only a counter without a TTL gets one.
		pipe.ExpireNX(ctx, key, r.window)
		return nil
	})
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}
	count := incr.Val()

	remaining := r.limit - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= r.limit, remaining, nil
}

// Reset clears the counter for a client.
func (r *RateLimiter) Reset(ctx context.Context, scope, clientID string) error {
	key := fmt.Sprintf("ratelimit:%s:%s", scope, clientID)
	return r.client.Del(ctx, key).Err()
}
