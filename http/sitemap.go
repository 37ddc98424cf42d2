package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/crawlkit"
)

// Ensure SitemapSeeder implements crawlkit.SeedSource.
var _ crawlkit.SeedSource = (*SitemapSeeder)(nil)

// maxSitemapDepth bounds recursion through nested sitemap indexes.
const maxSitemapDepth = 5

// SitemapSeeder discovers seed URLs for a site crawl from /sitemap.xml.
// Sitemap indexes are resolved recursively.
type SitemapSeeder struct {
	client *http.Client
}

// NewSitemapSeeder creates a SitemapSeeder with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapSeeder(client *http.Client) *SitemapSeeder {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapSeeder{client: client}
}

// Discover returns the URLs listed in the site's sitemap. A missing
// sitemap is not an error; the result is simply empty.
func (s *SitemapSeeder) Discover(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, crawlkit.Errorf(crawlkit.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	sitemapURL := base.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()

	seen := make(map[string]bool)
	urls, err := s.process(ctx, sitemapURL, seen, 0)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// Treat an unreachable or malformed sitemap as "no seeds".
		return nil, nil
	}
	return urls, nil
}

// process fetches and parses one sitemap, handling both urlset and
// sitemapindex documents.
func (s *SitemapSeeder) process(ctx context.Context, sitemapURL string, seen map[string]bool, depth int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if depth > maxSitemapDepth || seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML")
	}

	if root.Tag == "sitemapindex" {
		var all []string
		for _, sm := range root.SelectElements("sitemap") {
			loc := sm.SelectElement("loc")
			if loc == nil {
				continue
			}
			urls, err := s.process(ctx, strings.TrimSpace(loc.Text()), seen, depth+1)
			if err != nil {
				return nil, err
			}
			all = append(all, urls...)
		}
		return all, nil
	}

	var urls []string
	for _, u := range root.SelectElements("url") {
		loc := u.SelectElement("loc")
		if loc == nil {
			continue
		}
		if text := strings.TrimSpace(loc.Text()); text != "" {
			urls = append(urls, text)
		}
	}
	return urls, nil
}

func (s *SitemapSeeder) fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}
	return resp.Body, nil
}
