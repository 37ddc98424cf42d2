package crawl

import (
	"context"

	"github.com/fwojciec/crawlkit"
	"github.com/google/uuid"
)

// PaginatedResult is the outcome of a paginated data crawl.
type PaginatedResult struct {
	// RunID identifies this run in logs and summaries.
	RunID string

	// Batches holds the extracted elements per visited page, in visit order.
	Batches []*crawlkit.PageData

	// Failed counts pages lost to transport or parse failures.
	Failed int
}

// CrawlPaginated walks a paginated listing starting from startURL,
// extracting the elements matching dataSelector on every page and
// following the paginator's next URL until it signals termination, the
// page budget is reached, a fetch fails, or the next URL falls out of
// scope. A configuration error from the paginator aborts the run
// immediately; every other failure ends it with the pages collected so
// far.
func (c *Crawler) CrawlPaginated(ctx context.Context, startURL string, dataSelector string, pager crawlkit.Paginator) (*PaginatedResult, error) {
	if pager == nil {
		return nil, crawlkit.Errorf(crawlkit.ECONFIG, "no pagination strategy configured")
	}
	if dataSelector == "" {
		return nil, crawlkit.Errorf(crawlkit.ECONFIG, "data selector required")
	}
	if c.Selector == nil {
		return nil, crawlkit.Errorf(crawlkit.ECONFIG, "element selector not configured")
	}

	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultPaginatedMaxPages
	}

	runID := uuid.NewString()
	// Unlike the site crawl, a paginated run applies no default
	// exclusion patterns; the caller's scope is used as given.
	scope := c.scopeFor(startURL, false)
	logger := c.logger().With("run_id", runID)

	result := &PaginatedResult{RunID: runID}
	current := startURL

	for {
		if ctx.Err() != nil {
			break
		}

		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx, hostOf(current)); err != nil {
				break
			}
		}

		page, err := c.Fetcher.Fetch(ctx, current)
		if err != nil {
			result.Failed++
			logger.Warn("fetch failed", "url", current, "error", err)
			break
		}

		elements, err := c.Selector.Select(page.HTML, dataSelector)
		if err != nil {
			result.Failed++
			logger.Warn("extraction failed", "url", current, "error", err)
			break
		}
		if len(elements) == 0 {
			logger.Warn("no data found", "url", current, "selector", dataSelector)
			break
		}

		result.Batches = append(result.Batches, &crawlkit.PageData{URL: current, Elements: elements})
		logger.Info("page collected", "url", current, "elements", len(elements), "page", len(result.Batches))

		if len(result.Batches) >= maxPages {
			logger.Info("page budget reached", "max_pages", maxPages)
			break
		}

		next, ok, err := pager.Next(page)
		if err != nil {
			if crawlkit.ErrorCode(err) == crawlkit.ECONFIG {
				return nil, err
			}
			logger.Warn("pagination failed", "url", current, "error", err)
			break
		}
		if !ok {
			logger.Info("no next page", "url", current)
			break
		}
		if !scope.Allows(next) {
			logger.Info("next page out of scope", "url", next)
			break
		}

		current = next
	}

	return result, nil
}
