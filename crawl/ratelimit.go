package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/crawlkit"
	"golang.org/x/time/rate"
)

var _ crawlkit.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter enforces the politeness delay using per-host token
// buckets: requests to the same host are spaced by at least the
// configured delay, while requests to different hosts do not block each
// other.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	delay    time.Duration
}

// NewDomainLimiter creates a DomainLimiter with the given minimum delay
// between requests to the same host. A non-positive delay disables
// limiting. Each host gets its own limiter with a burst of 1.
func NewDomainLimiter(delay time.Duration) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		delay:    delay,
	}
}

// Wait blocks until the next request to the host is allowed.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	if d.delay <= 0 {
		return ctx.Err()
	}

	d.mu.Lock()
	limiter, ok := d.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(d.delay), 1)
		d.limiters[host] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
