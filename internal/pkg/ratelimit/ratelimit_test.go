package ratelimit

import (
	"context"
	"testing"
	"time"

	"bizcare-service/internal/testutil/redistest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Allow(t *testing.T) {
	client := redistest.Start(t)
	ctx := context.Background()
	limiter := NewRateLimiter(client, 3, time.Minute)

	for i := int64(1); i <= 3; i++ {
		ok, remaining, err := limiter.Allow(ctx, "submit", "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 3-i, remaining)
	}

	ok, remaining, err := limiter.Allow(ctx, "submit", "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, remaining)

	// other scopes and clients have their own windows
	ok, _, err = limiter.Allow(ctx, "sign", "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _, err = limiter.Allow(ctx, "submit", "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok)

	ttl, err := client.TTL(ctx, "ratelimit:submit:10.0.0.1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestRateLimiter_Reset(t *testing.T) {
	client := redistest.Start(t)
	ctx := context.Background()
	limiter := NewRateLimiter(client, 1, time.Minute)

	ok, _, err := limiter.Allow(ctx, "search", "ip")
	require.NoError(t, err)
	require.True(t, ok)
	ok, _, _ = limiter.Allow(ctx, "search", "ip")
	require.False(t, ok)

	require.NoError(t, limiter.Reset(ctx, "search", "ip"))

	ok, _, err = limiter.Allow(ctx, "search", "ip")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRateLimiter_WindowDoesNotSlide(t *testing.T) {
	client := redistest.Start(t)
	ctx := context.Background()
	limiter := NewRateLimiter(client, 10, time.Minute)
	key := "ratelimit:submit:10.0.0.3"

	_, _, err := limiter.Allow(ctx, "submit", "10.0.0.3")
	require.NoError(t, err)
	require.NoError(t, client.Expire(ctx, key, 5*time.Second).Err())

	_, _, err = limiter.Allow(ctx, "submit", "10.0.0.3")
	require.NoError(t, err)

	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.LessOrEqual(t, ttl, 5*time.Second)
}

func TestRateLimiter_RecoversCounterWithoutTTL(t *testing.T) {
	client := redistest.Start(t)
	ctx := context.Background()
	limiter := NewRateLimiter(client, 3, time.Minute)
	key := "ratelimit:sign:10.0.0.4"

	// A counter left behind without an expiry must not block the client forever.
	require.NoError(t, client.Set(ctx, key, 7, 0).Err())

	ok, _, err := limiter.Allow(ctx, "sign", "10.0.0.4")
	require.NoError(t, err)
	assert.False(t, ok)

	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}
