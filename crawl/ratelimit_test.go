package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/crawlkit/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("spaces requests to the same host", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(50 * time.Millisecond)
		ctx := context.Background()

		start := time.Now()
		require.NoError(t, limiter.Wait(ctx, "example.com"))
		require.NoError(t, limiter.Wait(ctx, "example.com"))
		elapsed := time.Since(start)

		assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	})

	t.Run("does not block requests to different hosts", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(time.Second)
		ctx := context.Background()

		start := time.Now()
		require.NoError(t, limiter.Wait(ctx, "a.example.com"))
		require.NoError(t, limiter.Wait(ctx, "b.example.com"))

		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("zero delay disables limiting", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(0)
		ctx := context.Background()

		start := time.Now()
		for i := 0; i < 10; i++ {
			require.NoError(t, limiter.Wait(ctx, "example.com"))
		}
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("returns error when context is canceled", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(time.Minute)
		ctx, cancel := context.WithCancel(context.Background())

		require.NoError(t, limiter.Wait(ctx, "example.com"))

		cancel()
		assert.Error(t, limiter.Wait(ctx, "example.com"))
	})
}
