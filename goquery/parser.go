// Package goquery implements markup parsing for crawlkit using CSS
// selectors: whole-page parsing, element extraction, and selector-driven
// pagination.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/crawlkit"
)

// Ensure Parser implements crawlkit.PageParser at compile time.
var _ crawlkit.PageParser = (*Parser)(nil)

// Parser turns raw HTML into a structured Page.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParsePage extracts title, visible text, outbound links, image sources
// and meta tags from the markup. Relative links and image sources are
// resolved against baseURL using standard URL-join semantics; fragments
// and queries are preserved. Links keep document order and duplicates.
func (p *Parser) ParsePage(html string, baseURL string) (*crawlkit.Page, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, crawlkit.Errorf(crawlkit.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, crawlkit.Errorf(crawlkit.EPARSE, "failed to parse HTML: %v", err)
	}

	page := &crawlkit.Page{
		URL:   baseURL,
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
		Text:  doc.Text(),
		Meta:  make(map[string]string),
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if resolved := resolveURL(base, href); resolved != "" {
			page.Links = append(page.Links, resolved)
		}
	})

	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		if resolved := resolveURL(base, src); resolved != "" {
			page.Images = append(page.Images, resolved)
		}
	})

	// Last write wins on duplicate meta names. Metas without a name
	// attribute collapse onto the empty key.
	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		page.Meta[sel.AttrOr("name", "")] = sel.AttrOr("content", "")
	})

	return page, nil
}

// resolveURL resolves a possibly-relative reference against base.
// Returns empty string when the reference cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
