package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_AllowsWithinBurst(t *testing.T) {
	t.Parallel()

	l := NewLimiter(100, 5, "value")
	start := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, l.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond, "burst tokens should not block")
}

func TestLimiter_BlocksBeyondRate(t *testing.T) {
	t.Parallel()

	l := NewLimiter(10, 1, "value")
	require.NoError(t, l.Wait(context.Background()))

	start := time.Now()
	require.NoError(t, l.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond, "second token waits for refill")
}

func TestLimiter_WaitHonorsContext(t *testing.T) {
	t.Parallel()

	l := NewLimiter(0.1, 1, "value")
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
