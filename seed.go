package crawlkit

import "context"

// SeedSource discovers additional start URLs for a site-wide crawl,
// for example from the site's sitemap.
type SeedSource interface {
	// Discover returns candidate seed URLs for the site at baseURL.
	// An empty result is not an error; it means the crawl starts from
	// the start URL alone.
	Discover(ctx context.Context, baseURL string) ([]string, error)
}
