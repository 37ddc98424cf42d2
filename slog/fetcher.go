// Package slog provides logging decorators for the crawl interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/crawlkit"
)

// Ensure LoggingFetcher implements crawlkit.Fetcher.
var _ crawlkit.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-page logging.
type LoggingFetcher struct {
	next   crawlkit.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next crawlkit.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (*crawlkit.Page, error) {
	begin := time.Now()
	page, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Error("fetch",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	f.logger.Info("fetch",
		"url", url,
		"status", page.StatusCode,
		"links", len(page.Links),
		"duration", time.Since(begin),
	)
	return page, nil
}
