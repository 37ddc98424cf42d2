// Package crawl provides crawl orchestration: a breadth-first site
// crawl over a deduplicating frontier and a paginated data crawl, both
// bounded by a page budget and a URL scope.
package crawl

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/fwojciec/crawlkit"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Default run limits.
const (
	// DefaultSiteMaxPages bounds a site-wide crawl when no budget is set.
	DefaultSiteMaxPages = 100
	// DefaultPaginatedMaxPages bounds a paginated crawl when no budget is set.
	DefaultPaginatedMaxPages = 10
)

// Crawler orchestrates crawl runs. All dependencies are injected; the
// zero value is not usable without a Fetcher.
type Crawler struct {
	// Fetcher retrieves and parses pages.
	Fetcher crawlkit.Fetcher

	// Selector extracts data elements during paginated crawls.
	Selector crawlkit.ElementSelector

	// Limiter enforces the politeness delay. Optional.
	Limiter crawlkit.DomainLimiter

	// Seeds discovers extra start URLs for site crawls. Optional.
	Seeds crawlkit.SeedSource

	// Scope bounds which URLs may be followed. When nil, or when its
	// allow list is empty, the start URL's host is allowed.
	Scope *crawlkit.Scope

	// Logger receives run progress. Optional.
	Logger *slog.Logger

	// MaxPages is the page budget per run. Defaults per run kind.
	MaxPages int

	// Concurrency is the number of fetch workers for site crawls.
	// Values below 2 select the single-threaded reference behavior.
	Concurrency int
}

// SiteResult is the outcome of a site-wide crawl.
type SiteResult struct {
	// RunID identifies this run in logs and summaries.
	RunID string

	// Pages holds the collected pages in visit order.
	Pages []*crawlkit.Page

	// Failed counts URLs lost to transport or parse failures.
	Failed int

	// Skipped counts URLs rejected by the scope policy.
	Skipped int
}

// CrawlSite explores the site graph breadth-first starting from
// startURL, collecting at most MaxPages pages. Individual page failures
// are recorded as omissions and never abort the run; the crawl stops
// when the frontier empties, the budget is reached, or the context is
// canceled. Cancellation is observed between fetches: an in-flight
// fetch completes, no new fetch starts.
func (c *Crawler) CrawlSite(ctx context.Context, startURL string) (*SiteResult, error) {
	if _, err := url.Parse(startURL); err != nil {
		return nil, crawlkit.Errorf(crawlkit.EINVALID, "invalid start URL %q: %v", startURL, err)
	}

	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultSiteMaxPages
	}

	runID := uuid.NewString()
	scope := c.scopeFor(startURL, true)
	logger := c.logger().With("run_id", runID)

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(startURL)

	if c.Seeds != nil {
		seeds, err := c.Seeds.Discover(ctx, startURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			logger.Warn("seed discovery failed", "error", err)
		}
		for _, seed := range seeds {
			frontier.Push(seed)
		}
	}

	result := &SiteResult{RunID: runID}
	if c.Concurrency > 1 {
		c.crawlSiteConcurrent(ctx, frontier, scope, maxPages, logger, result)
	} else {
		c.crawlSiteSequential(ctx, frontier, scope, maxPages, logger, result)
	}

	logger.Info("site crawl finished",
		"collected", len(result.Pages),
		"failed", result.Failed,
		"skipped", result.Skipped,
	)
	return result, nil
}

// crawlSiteSequential is the single-threaded reference loop: one fetch
// in flight at a time, politeness realized as a blocking pause.
func (c *Crawler) crawlSiteSequential(ctx context.Context, frontier *Frontier, scope *crawlkit.Scope, maxPages int, logger *slog.Logger, result *SiteResult) {
	for len(result.Pages) < maxPages {
		if ctx.Err() != nil {
			return
		}

		u, ok := frontier.Pop()
		if !ok {
			return
		}
		if !scope.Allows(u) {
			result.Skipped++
			continue
		}

		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx, hostOf(u)); err != nil {
				return
			}
		}

		logger.Info("crawling", "url", u)
		page, err := c.Fetcher.Fetch(ctx, u)
		if err != nil {
			result.Failed++
			logger.Warn("fetch failed", "url", u, "error", err)
			continue
		}

		result.Pages = append(result.Pages, page)
		for _, link := range page.Links {
			frontier.Push(link)
		}
	}
}

// fetchOutcome carries one worker's result back to the coordinator.
type fetchOutcome struct {
	url  string
	page *crawlkit.Page
	err  error
}

// crawlSiteConcurrent runs Concurrency fetch workers against a single
// coordinator that owns the frontier and the collected set. The budget
// is enforced exactly: dispatch stops once collected plus in-flight
// work reaches it, and results finishing past the budget are dropped.
func (c *Crawler) crawlSiteConcurrent(ctx context.Context, frontier *Frontier, scope *crawlkit.Scope, maxPages int, logger *slog.Logger, result *SiteResult) {
	gctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workCh := make(chan string)
	resultCh := make(chan fetchOutcome)

	var g errgroup.Group
	for i := 0; i < c.Concurrency; i++ {
		g.Go(func() error {
			for u := range workCh {
				outcome := fetchOutcome{url: u}
				if c.Limiter != nil {
					if err := c.Limiter.Wait(gctx, hostOf(u)); err != nil {
						outcome.err = err
					}
				}
				if outcome.err == nil {
					outcome.page, outcome.err = c.Fetcher.Fetch(gctx, u)
				}
				select {
				case resultCh <- outcome:
				case <-gctx.Done():
					return nil
				}
			}
			return nil
		})
	}

	handle := func(o fetchOutcome) {
		if o.err != nil {
			result.Failed++
			logger.Warn("fetch failed", "url", o.url, "error", o.err)
			return
		}
		if len(result.Pages) >= maxPages {
			// Budget raced with a completing fetch, drop the page.
			return
		}
		result.Pages = append(result.Pages, o.page)
		for _, link := range o.page.Links {
			frontier.Push(link)
		}
	}

	// popInScope skips scope-rejected URLs so the coordinator only ever
	// holds an admissible candidate.
	popInScope := func() (string, bool) {
		for {
			u, ok := frontier.Pop()
			if !ok {
				return "", false
			}
			if !scope.Allows(u) {
				result.Skipped++
				continue
			}
			return u, true
		}
	}

	inflight := 0
	var next string
	haveNext := false

loop:
	for {
		if ctx.Err() != nil {
			break
		}
		if !haveNext && len(result.Pages)+inflight < maxPages {
			next, haveNext = popInScope()
		}

		switch {
		case haveNext && len(result.Pages)+inflight < maxPages:
			select {
			case workCh <- next:
				inflight++
				haveNext = false
			case o := <-resultCh:
				inflight--
				handle(o)
			case <-ctx.Done():
				break loop
			}
		case inflight > 0:
			select {
			case o := <-resultCh:
				inflight--
				handle(o)
			case <-ctx.Done():
				break loop
			}
		default:
			// Nothing dispatched, nothing dispatchable: done.
			break loop
		}
	}

	close(workCh)
	cancel()
	_ = g.Wait()
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// scopeFor normalizes the configured scope for a run: an empty allow
// list falls back to the start URL's host, and a nil exclusion list on
// a site crawl falls back to the documented defaults.
func (c *Crawler) scopeFor(startURL string, siteDefaults bool) *crawlkit.Scope {
	scope := &crawlkit.Scope{}
	if c.Scope != nil {
		scope.AllowedDomains = c.Scope.AllowedDomains
		scope.ExcludePatterns = c.Scope.ExcludePatterns
	}
	if len(scope.AllowedDomains) == 0 {
		if u, err := url.Parse(startURL); err == nil && u.Host != "" {
			scope.AllowedDomains = []string{u.Host}
		}
	}
	if scope.ExcludePatterns == nil && siteDefaults {
		scope.ExcludePatterns = crawlkit.DefaultExcludePatterns()
	}
	return scope
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
