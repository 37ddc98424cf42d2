package http

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/crawlkit"
)

// Ensure Fetcher implements crawlkit.Fetcher at compile time.
var _ crawlkit.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves a URL through an Executor and parses the response
// into a structured Page.
type Fetcher struct {
	exec   *Executor
	parser crawlkit.PageParser
}

// NewFetcher creates a Fetcher from an executor and a markup parser.
func NewFetcher(exec *Executor, parser crawlkit.PageParser) *Fetcher {
	return &Fetcher{exec: exec, parser: parser}
}

// Fetch retrieves and parses the page at url. Transport failures carry
// code EUNAVAILABLE after retries exhaust; unparseable markup carries
// EPARSE so the caller can abandon the URL instead of retrying transport.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*crawlkit.Page, error) {
	resp, err := f.exec.Do(ctx, crawlkit.Request{URL: url})
	if err != nil {
		return nil, err
	}

	page, err := f.parser.ParsePage(string(resp.Body), url)
	if err != nil {
		return nil, err
	}

	page.StatusCode = resp.StatusCode
	page.Header = resp.Header
	page.HTML = string(resp.Body)
	page.ContentHash = fmt.Sprintf("%x", xxhash.Sum64String(page.Text))

	return page, nil
}
