//go:build integration

package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_Allow(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set - skipping integration test")
	}

	ctx := context.Background()
	client, err := NewClient(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewLimiter(client, "test:ratelimit:")
	key := uuid.NewString()

	for i := 0; i < 3; i++ {
		res, err := limiter.Allow(ctx, key, 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res, err := limiter.Allow(ctx, key, 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.WithinDuration(t, time.Now().Add(time.Minute), res.ResetAt, 5*time.Second)

	other, err := limiter.Allow(ctx, uuid.NewString(), 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, other.Allowed, "keys are limited independently")
}
