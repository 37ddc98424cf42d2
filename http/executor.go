// Package http provides the HTTP request execution layer: randomized
// identity headers, optional proxy rotation, and bounded retry with
// linear backoff. It also implements crawlkit.Fetcher on top of that
// executor and sitemap-based seed discovery.
package http

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/crawlkit"
)

// Defaults for request execution.
const (
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 3
	DefaultBaseDelay  = 1 * time.Second
)

// DefaultUserAgents is the identity rotation pool used when the caller
// supplies none. One entry is chosen at random for every attempt.
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36 Edg/119.0.0.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.5 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// SleepFunc pauses for d or until the context is canceled. Injectable so
// retry tests run without real delays.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Executor issues single HTTP requests with retry. It has no knowledge
// of crawling semantics; retries are safe because no attempt mutates
// state outside the returned outcome.
type Executor struct {
	client     *http.Client
	maxRetries int
	baseDelay  time.Duration
	timeout    time.Duration
	proxies    []*url.URL
	userAgents []string
	logger     *slog.Logger
	sleep      SleepFunc

	mu  sync.Mutex
	rng *rand.Rand
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor) error

// WithTimeout bounds each individual request attempt.
func WithTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) error {
		e.timeout = d
		return nil
	}
}

// WithMaxRetries sets the total number of attempts per request.
func WithMaxRetries(n int) ExecutorOption {
	return func(e *Executor) error {
		if n < 1 {
			return crawlkit.Errorf(crawlkit.ECONFIG, "max retries must be at least 1, got %d", n)
		}
		e.maxRetries = n
		return nil
	}
}

// WithBaseDelay sets the base backoff delay. The Nth failed attempt
// sleeps baseDelay * N before the next attempt (linear backoff).
func WithBaseDelay(d time.Duration) ExecutorOption {
	return func(e *Executor) error {
		e.baseDelay = d
		return nil
	}
}

// WithProxies enables proxy rotation: a uniformly random proxy is chosen
// independently for every attempt.
func WithProxies(proxies []string) ExecutorOption {
	return func(e *Executor) error {
		for _, p := range proxies {
			u, err := url.Parse(p)
			if err != nil {
				return crawlkit.Errorf(crawlkit.ECONFIG, "invalid proxy %q: %v", p, err)
			}
			e.proxies = append(e.proxies, u)
		}
		return nil
	}
}

// WithUserAgents replaces the default User-Agent rotation pool.
func WithUserAgents(agents []string) ExecutorOption {
	return func(e *Executor) error {
		if len(agents) == 0 {
			return crawlkit.Errorf(crawlkit.ECONFIG, "user agent pool must not be empty")
		}
		e.userAgents = agents
		return nil
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) ExecutorOption {
	return func(e *Executor) error {
		e.logger = logger
		return nil
	}
}

// WithRand sets the random source used for header and proxy selection.
// Tests inject a seeded source to make selection deterministic.
func WithRand(rng *rand.Rand) ExecutorOption {
	return func(e *Executor) error {
		e.rng = rng
		return nil
	}
}

// WithSleep replaces the backoff sleep implementation.
func WithSleep(sleep SleepFunc) ExecutorOption {
	return func(e *Executor) error {
		e.sleep = sleep
		return nil
	}
}

// NewExecutor creates an Executor with the given options.
func NewExecutor(opts ...ExecutorOption) (*Executor, error) {
	e := &Executor{
		maxRetries: DefaultMaxRetries,
		baseDelay:  DefaultBaseDelay,
		timeout:    DefaultTimeout,
		userAgents: DefaultUserAgents,
		logger:     slog.New(slog.DiscardHandler),
		sleep:      sleepContext,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.client = &http.Client{Timeout: e.timeout}
	return e, nil
}

// Do executes the request, retrying transport failures and non-success
// statuses up to the configured attempt count. Exhausting retries
// returns an EUNAVAILABLE error carrying the attempt count; the caller
// should treat the unit of work as lost and continue.
func (e *Executor) Do(ctx context.Context, req crawlkit.Request) (*crawlkit.Response, error) {
	target, err := buildURL(req)
	if err != nil {
		return nil, err
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body string
	if len(req.Body) > 0 {
		body = encodeParams(req.Body)
	}

	var lastErr error
	for attempt := 1; attempt <= e.maxRetries; attempt++ {
		resp, err := e.attempt(ctx, method, target, body, req.Header)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		e.logger.Warn("request failed",
			"url", target,
			"attempt", attempt,
			"max_retries", e.maxRetries,
			"error", err,
		)

		if attempt == e.maxRetries {
			break
		}
		if err := e.sleep(ctx, e.baseDelay*time.Duration(attempt)); err != nil {
			return nil, err
		}
	}

	e.logger.Error("max retries reached", "url", target)
	return nil, crawlkit.Errorf(crawlkit.EUNAVAILABLE, "request failed after %d attempts: %v", e.maxRetries, lastErr)
}

// attempt performs one request with a fresh randomized identity.
func (e *Executor) attempt(ctx context.Context, method, target, body string, overrides map[string]string) (*crawlkit.Response, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}

	for k, v := range e.randomHeaders() {
		httpReq.Header.Set(k, v)
	}
	if body != "" {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range overrides {
		httpReq.Header.Set(k, v)
	}

	resp, err := e.clientForAttempt().Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	// Redirects are followed by the client, so anything left in the 4xx
	// or 5xx range is a failed attempt.
	if resp.StatusCode >= 400 {
		return nil, crawlkit.Errorf(crawlkit.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, target)
	}

	return &crawlkit.Response{
		StatusCode: resp.StatusCode,
		Header:     flattenHeader(resp.Header),
		Body:       data,
	}, nil
}

// randomHeaders builds the per-attempt identity: a random User-Agent
// over a fixed realistic header template.
func (e *Executor) randomHeaders() map[string]string {
	return map[string]string{
		"User-Agent":                e.userAgents[e.intn(len(e.userAgents))],
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Accept-Language":           "en-US,en;q=0.8",
		"Connection":                "keep-alive",
		"Upgrade-Insecure-Requests": "1",
	}
}

// clientForAttempt returns the shared client, or one routed through a
// randomly chosen proxy when a proxy pool is configured.
func (e *Executor) clientForAttempt() *http.Client {
	if len(e.proxies) == 0 {
		return e.client
	}
	proxy := e.proxies[e.intn(len(e.proxies))]
	return &http.Client{
		Timeout:   e.timeout,
		Transport: &http.Transport{Proxy: http.ProxyURL(proxy)},
	}
}

func (e *Executor) intn(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(n)
}

// buildURL appends the request's ordered parameters to the URL query.
func buildURL(req crawlkit.Request) (string, error) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return "", crawlkit.Errorf(crawlkit.EINVALID, "invalid request URL %q: %v", req.URL, err)
	}
	if len(req.Params) > 0 {
		extra := encodeParams(req.Params)
		if u.RawQuery == "" {
			u.RawQuery = extra
		} else {
			u.RawQuery += "&" + extra
		}
	}
	return u.String(), nil
}

func encodeParams(params []crawlkit.Param) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

func flattenHeader(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k := range h {
		out[k] = h.Get(k)
	}
	return out
}

// sleepContext is the default SleepFunc.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
