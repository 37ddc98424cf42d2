package crawlkit

import "context"

// Frontier manages the working set of discovered-but-unvisited URLs
// during a site-wide crawl, with deduplication.
type Frontier interface {
	// Push adds a URL to the frontier.
	// Returns false if the URL has already been seen.
	Push(url string) bool

	// Pop removes and returns the next URL to visit.
	// Returns false if the frontier is empty.
	Pop() (string, bool)

	// Len returns the number of URLs awaiting a visit.
	Len() int

	// Seen returns true if the URL has been visited or queued.
	Seen(url string) bool
}

// DomainLimiter enforces the politeness delay between successive
// requests, per host.
type DomainLimiter interface {
	// Wait blocks until the next request to the host is allowed.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
