package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/crawlkit"
	"github.com/fwojciec/crawlkit/crawl"
	"github.com/fwojciec/crawlkit/fs"
	"github.com/fwojciec/crawlkit/goquery"
	ckhttp "github.com/fwojciec/crawlkit/http"
	ckslog "github.com/fwojciec/crawlkit/slog"
	"github.com/fwojciec/crawlkit/yaml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	ConfigPath string

	// Overrides for end-to-end testing. Nil means wire the real thing.
	Fetcher crawlkit.Fetcher
	Writer  crawlkit.ResultWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"C" help:"Path to a YAML config file."`
	Verbose bool   `short:"v" help:"Enable debug logging."`

	Site  SiteCmd  `cmd:"" help:"Crawl a site breadth-first and save the collected pages"`
	Pages PagesCmd `cmd:"" help:"Walk a paginated listing and extract matching elements"`
}

// runFlags are the options shared by both commands. Zero values mean
// "not set": the config file value, or failing that the built-in
// default, applies.
type runFlags struct {
	Delay      time.Duration `help:"Politeness delay between requests to the same host (default 1s)."`
	MaxRetries int           `help:"Attempts per request (default 3)."`
	Timeout    time.Duration `help:"Per-attempt timeout (default 10s)."`
	Proxy      []string      `help:"Proxy URL to rotate through (repeatable)."`
	MaxPages   int           `help:"Page budget for the run."`
	Domain     []string      `help:"Allowed host substring (repeatable, default: start URL host)."`
	Exclude    []string      `help:"URL exclusion regex (repeatable)."`
	Format     string        `help:"Output format: json or csv (default json)."`
	Output     string        `short:"o" help:"Output directory (default output)."`
}

// apply overlays explicitly set flags onto cfg.
func (f *runFlags) apply(cfg *crawlkit.Config) {
	if f.Delay > 0 {
		cfg.Delay = crawlkit.Duration(f.Delay)
	}
	if f.MaxRetries > 0 {
		cfg.MaxRetries = f.MaxRetries
	}
	if f.Timeout > 0 {
		cfg.Timeout = crawlkit.Duration(f.Timeout)
	}
	if len(f.Proxy) > 0 {
		cfg.UseProxy = true
		cfg.ProxyList = f.Proxy
	}
	if f.MaxPages > 0 {
		cfg.MaxPages = f.MaxPages
	}
	if len(f.Domain) > 0 {
		cfg.AllowedDomains = f.Domain
	}
	if len(f.Exclude) > 0 {
		cfg.ExcludePatterns = f.Exclude
	}
	if f.Format != "" {
		cfg.OutputFormat = f.Format
	}
	if f.Output != "" {
		cfg.OutputDir = f.Output
	}
}

// resolveConfig builds the effective configuration: defaults, then the
// config file if one was given, then flags.
func resolveConfig(deps *Dependencies, flags *runFlags) (*crawlkit.Config, error) {
	cfg := crawlkit.DefaultConfig()
	if deps.ConfigPath != "" {
		loaded, err := yaml.LoadConfig(deps.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}
	flags.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// buildFetcher wires the request executor and page parser, or returns
// the test override.
func buildFetcher(deps *Dependencies, cfg *crawlkit.Config) (crawlkit.Fetcher, error) {
	if deps.Fetcher != nil {
		return deps.Fetcher, nil
	}
	opts := []ckhttp.ExecutorOption{
		ckhttp.WithTimeout(cfg.Timeout.Std()),
		ckhttp.WithMaxRetries(cfg.MaxRetries),
		ckhttp.WithBaseDelay(cfg.Delay.Std()),
		ckhttp.WithLogger(deps.Logger),
	}
	if cfg.UseProxy {
		opts = append(opts, ckhttp.WithProxies(cfg.ProxyList))
	}
	exec, err := ckhttp.NewExecutor(opts...)
	if err != nil {
		return nil, err
	}
	fetcher := ckhttp.NewFetcher(exec, goquery.NewParser())
	return ckslog.NewLoggingFetcher(fetcher, deps.Logger), nil
}

// buildWriter wires result persistence, or returns the test override.
func buildWriter(deps *Dependencies, cfg *crawlkit.Config) (crawlkit.ResultWriter, error) {
	if deps.Writer != nil {
		return deps.Writer, nil
	}
	format, err := crawlkit.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return nil, err
	}
	return ckslog.NewLoggingWriter(fs.NewWriter(cfg.OutputDir, format), deps.Logger), nil
}

// buildScope translates config scope settings into a compiled scope.
// Empty settings stay nil so the crawler applies its per-run defaults.
func buildScope(cfg *crawlkit.Config) (*crawlkit.Scope, error) {
	if len(cfg.AllowedDomains) == 0 && len(cfg.ExcludePatterns) == 0 {
		return nil, nil
	}
	patterns, err := crawlkit.CompilePatterns(cfg.ExcludePatterns)
	if err != nil {
		return nil, err
	}
	return &crawlkit.Scope{AllowedDomains: cfg.AllowedDomains, ExcludePatterns: patterns}, nil
}

// buildCrawler assembles the crawl orchestrator shared by both commands.
func buildCrawler(deps *Dependencies, cfg *crawlkit.Config) (*crawl.Crawler, error) {
	fetcher, err := buildFetcher(deps, cfg)
	if err != nil {
		return nil, err
	}
	scope, err := buildScope(cfg)
	if err != nil {
		return nil, err
	}
	return &crawl.Crawler{
		Fetcher:  fetcher,
		Selector: goquery.NewSelector(),
		Limiter:  crawl.NewDomainLimiter(cfg.Delay.Std()),
		Scope:    scope,
		Logger:   deps.Logger,
		MaxPages: cfg.MaxPages,
	}, nil
}
