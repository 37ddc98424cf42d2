package main

import (
	"fmt"

	ckhttp "github.com/fwojciec/crawlkit/http"
)

// SiteCmd is the "site" subcommand.
type SiteCmd struct {
	URL         string `arg:"" help:"Start URL"`
	Sitemap     bool   `help:"Seed the frontier from the site's sitemap.xml."`
	Concurrency int    `short:"c" help:"Concurrent fetch workers."`

	runFlags
}

// Run executes the site command.
func (c *SiteCmd) Run(deps *Dependencies) error {
	cfg, err := resolveConfig(deps, &c.runFlags)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	crawler, err := buildCrawler(deps, cfg)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	crawler.Concurrency = c.Concurrency
	if c.Sitemap {
		crawler.Seeds = ckhttp.NewSitemapSeeder(nil)
	}

	writer, err := buildWriter(deps, cfg)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	result, err := crawler.CrawlSite(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	path, err := writer.WritePages(result.Pages)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Crawled %d pages (%d failed, %d skipped)\n",
		len(result.Pages), result.Failed, result.Skipped)
	fmt.Fprintf(deps.Stdout, "Results written to %s\n", path)
	return nil
}
