package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/crawlkit"
)

// Ensure BySelector implements crawlkit.Paginator at compile time.
var _ crawlkit.Paginator = (*BySelector)(nil)

// BySelector paginates by locating an explicit "next" control in the
// page markup. It is stateless: the next URL is recomputed from page
// content on each step.
type BySelector struct {
	// Selector is the CSS selector locating the next-page control.
	Selector string
}

// Next finds the first element matching the selector and resolves its
// href against the page URL. Pagination terminates when no element
// matches or the match carries no link.
func (p *BySelector) Next(page *crawlkit.Page) (string, bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return "", false, crawlkit.Errorf(crawlkit.EPARSE, "failed to parse HTML: %v", err)
	}

	sel := doc.Find(p.Selector).First()
	if sel.Length() == 0 {
		return "", false, nil
	}

	href, ok := sel.Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", false, nil
	}

	base, err := url.Parse(page.URL)
	if err != nil {
		return "", false, crawlkit.Errorf(crawlkit.EINVALID, "invalid page URL %q: %v", page.URL, err)
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false, nil
	}

	return base.ResolveReference(ref).String(), true, nil
}
