package mock

import (
	"context"

	"github.com/fwojciec/crawlkit"
)

var _ crawlkit.Frontier = (*Frontier)(nil)

// Frontier is a mock implementation of crawlkit.Frontier.
type Frontier struct {
	PushFn func(url string) bool
	PopFn  func() (string, bool)
	LenFn  func() int
	SeenFn func(url string) bool
}

func (f *Frontier) Push(url string) bool {
	return f.PushFn(url)
}

func (f *Frontier) Pop() (string, bool) {
	return f.PopFn()
}

func (f *Frontier) Len() int {
	return f.LenFn()
}

func (f *Frontier) Seen(url string) bool {
	return f.SeenFn(url)
}

var _ crawlkit.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of crawlkit.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}
