package crawl_test

import (
	"context"
	"sync"
	"testing"

	"github.com/fwojciec/crawlkit"
	"github.com/fwojciec/crawlkit/crawl"
	"github.com/fwojciec/crawlkit/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// siteFetcher serves a fixed link graph and records every fetched URL.
// Safe for concurrent use.
type siteFetcher struct {
	mu      sync.Mutex
	graph   map[string][]string
	fail    map[string]bool
	fetched []string
}

func (f *siteFetcher) Fetch(_ context.Context, url string) (*crawlkit.Page, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, url)
	f.mu.Unlock()

	if f.fail[url] {
		return nil, crawlkit.Errorf(crawlkit.EUNAVAILABLE, "request failed after 3 attempts")
	}
	return &crawlkit.Page{URL: url, Links: f.graph[url]}, nil
}

func (f *siteFetcher) fetchedURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.fetched...)
}

func TestCrawler_CrawlSite(t *testing.T) {
	t.Parallel()

	t.Run("collects linked pages breadth-first", func(t *testing.T) {
		t.Parallel()

		fetcher := &siteFetcher{graph: map[string][]string{
			"http://example.com/":  {"http://example.com/a", "http://example.com/b"},
			"http://example.com/a": {},
			"http://example.com/b": {},
		}}

		c := &crawl.Crawler{Fetcher: fetcher, MaxPages: 10}
		result, err := c.CrawlSite(context.Background(), "http://example.com/")
		require.NoError(t, err)

		require.Len(t, result.Pages, 3)
		assert.Equal(t, "http://example.com/", result.Pages[0].URL)
		assert.Equal(t, "http://example.com/a", result.Pages[1].URL)
		assert.Equal(t, "http://example.com/b", result.Pages[2].URL)
		assert.NotEmpty(t, result.RunID)
	})

	t.Run("respects the page budget on a cyclic graph", func(t *testing.T) {
		t.Parallel()

		// Start page links to itself and to 5 distinct pages.
		fetcher := &siteFetcher{graph: map[string][]string{
			"http://example.com/": {
				"http://example.com/",
				"http://example.com/p1",
				"http://example.com/p2",
				"http://example.com/p3",
				"http://example.com/p4",
				"http://example.com/p5",
			},
		}}

		c := &crawl.Crawler{Fetcher: fetcher, MaxPages: 3}
		result, err := c.CrawlSite(context.Background(), "http://example.com/")
		require.NoError(t, err)

		assert.Len(t, result.Pages, 3)

		seen := make(map[string]bool)
		for _, p := range result.Pages {
			assert.False(t, seen[p.URL], "page %s collected twice", p.URL)
			seen[p.URL] = true
		}
		assert.Len(t, seen, 3)
	})

	t.Run("never fetches the same URL twice", func(t *testing.T) {
		t.Parallel()

		// a and b link back to the start and to each other.
		fetcher := &siteFetcher{graph: map[string][]string{
			"http://example.com/":  {"http://example.com/a", "http://example.com/b"},
			"http://example.com/a": {"http://example.com/", "http://example.com/b"},
			"http://example.com/b": {"http://example.com/", "http://example.com/a"},
		}}

		c := &crawl.Crawler{Fetcher: fetcher, MaxPages: 10}
		_, err := c.CrawlSite(context.Background(), "http://example.com/")
		require.NoError(t, err)

		counts := make(map[string]int)
		for _, u := range fetcher.fetchedURLs() {
			counts[u]++
		}
		for u, n := range counts {
			assert.Equal(t, 1, n, "URL %s fetched %d times", u, n)
		}
	})

	t.Run("a failing page never aborts the run", func(t *testing.T) {
		t.Parallel()

		fetcher := &siteFetcher{
			graph: map[string][]string{
				"http://example.com/":  {"http://example.com/bad", "http://example.com/good"},
				"http://example.com/good": {},
			},
			fail: map[string]bool{"http://example.com/bad": true},
		}

		c := &crawl.Crawler{Fetcher: fetcher, MaxPages: 10}
		result, err := c.CrawlSite(context.Background(), "http://example.com/")
		require.NoError(t, err)

		assert.Len(t, result.Pages, 2)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("out-of-scope links are skipped", func(t *testing.T) {
		t.Parallel()

		fetcher := &siteFetcher{graph: map[string][]string{
			"http://example.com/": {
				"http://other.com/page",
				"http://example.com/doc.pdf",
				"http://example.com/ok",
			},
			"http://example.com/ok": {},
		}}

		c := &crawl.Crawler{Fetcher: fetcher, MaxPages: 10}
		result, err := c.CrawlSite(context.Background(), "http://example.com/")
		require.NoError(t, err)

		require.Len(t, result.Pages, 2)
		assert.Equal(t, 2, result.Skipped)
		assert.NotContains(t, fetcher.fetchedURLs(), "http://other.com/page")
		assert.NotContains(t, fetcher.fetchedURLs(), "http://example.com/doc.pdf")
	})

	t.Run("uses explicit scope over the start host default", func(t *testing.T) {
		t.Parallel()

		fetcher := &siteFetcher{graph: map[string][]string{
			"http://example.com/":    {"http://docs.example.com/a", "http://other.com/b"},
			"http://docs.example.com/a": {},
		}}

		c := &crawl.Crawler{
			Fetcher:  fetcher,
			MaxPages: 10,
			Scope:    &crawlkit.Scope{AllowedDomains: []string{"example.com"}},
		}
		result, err := c.CrawlSite(context.Background(), "http://example.com/")
		require.NoError(t, err)

		require.Len(t, result.Pages, 2)
		assert.Equal(t, 1, result.Skipped)
	})

	t.Run("seeds discovered URLs into the frontier", func(t *testing.T) {
		t.Parallel()

		fetcher := &siteFetcher{graph: map[string][]string{
			"http://example.com/":       {},
			"http://example.com/seeded": {},
		}}
		seeds := &mock.SeedSource{
			DiscoverFn: func(_ context.Context, baseURL string) ([]string, error) {
				return []string{"http://example.com/seeded"}, nil
			},
		}

		c := &crawl.Crawler{Fetcher: fetcher, Seeds: seeds, MaxPages: 10}
		result, err := c.CrawlSite(context.Background(), "http://example.com/")
		require.NoError(t, err)

		require.Len(t, result.Pages, 2)
		assert.Equal(t, "http://example.com/seeded", result.Pages[1].URL)
	})

	t.Run("stops between fetches when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*crawlkit.Page, error) {
				cancel()
				return &crawlkit.Page{URL: url, Links: []string{"http://example.com/more"}}, nil
			},
		}

		c := &crawl.Crawler{Fetcher: fetcher, MaxPages: 10}
		result, err := c.CrawlSite(ctx, "http://example.com/")
		require.NoError(t, err)

		assert.Len(t, result.Pages, 1, "no new fetch starts after cancellation")
	})

	t.Run("concurrent crawl preserves budget and dedup invariants", func(t *testing.T) {
		t.Parallel()

		graph := map[string][]string{"http://example.com/": {}}
		for i := 0; i < 20; i++ {
			child := "http://example.com/p" + string(rune('a'+i))
			graph["http://example.com/"] = append(graph["http://example.com/"], child)
			graph[child] = []string{"http://example.com/"}
		}
		fetcher := &siteFetcher{graph: graph}

		c := &crawl.Crawler{Fetcher: fetcher, MaxPages: 7, Concurrency: 4}
		result, err := c.CrawlSite(context.Background(), "http://example.com/")
		require.NoError(t, err)

		assert.LessOrEqual(t, len(result.Pages), 7)

		seen := make(map[string]bool)
		for _, p := range result.Pages {
			assert.False(t, seen[p.URL], "page %s collected twice", p.URL)
			seen[p.URL] = true
		}

		counts := make(map[string]int)
		for _, u := range fetcher.fetchedURLs() {
			counts[u]++
		}
		for u, n := range counts {
			assert.Equal(t, 1, n, "URL %s fetched %d times", u, n)
		}
	})

	t.Run("rejects an unparseable start URL", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{Fetcher: &siteFetcher{}}
		_, err := c.CrawlSite(context.Background(), "http://\x00bad")
		require.Error(t, err)
		assert.Equal(t, crawlkit.EINVALID, crawlkit.ErrorCode(err))
	})
}
