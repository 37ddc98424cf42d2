package mock

import "github.com/fwojciec/crawlkit"

var _ crawlkit.Paginator = (*Paginator)(nil)

// Paginator is a mock implementation of crawlkit.Paginator.
type Paginator struct {
	NextFn func(page *crawlkit.Page) (string, bool, error)
}

func (p *Paginator) Next(page *crawlkit.Page) (string, bool, error) {
	return p.NextFn(page)
}
