package mock

import (
	"context"

	"github.com/fwojciec/crawlkit"
)

var _ crawlkit.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of crawlkit.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*crawlkit.Page, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*crawlkit.Page, error) {
	return f.FetchFn(ctx, url)
}

var _ crawlkit.PageParser = (*PageParser)(nil)

// PageParser is a mock implementation of crawlkit.PageParser.
type PageParser struct {
	ParsePageFn func(html string, baseURL string) (*crawlkit.Page, error)
}

func (p *PageParser) ParsePage(html string, baseURL string) (*crawlkit.Page, error) {
	return p.ParsePageFn(html, baseURL)
}

var _ crawlkit.ElementSelector = (*ElementSelector)(nil)

// ElementSelector is a mock implementation of crawlkit.ElementSelector.
type ElementSelector struct {
	SelectFn func(html string, selector string) ([]crawlkit.Element, error)
}

func (s *ElementSelector) Select(html string, selector string) ([]crawlkit.Element, error) {
	return s.SelectFn(html, selector)
}

var _ crawlkit.SeedSource = (*SeedSource)(nil)

// SeedSource is a mock implementation of crawlkit.SeedSource.
type SeedSource struct {
	DiscoverFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SeedSource) Discover(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverFn(ctx, baseURL)
}
