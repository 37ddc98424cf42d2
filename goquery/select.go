package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/crawlkit"
)

// Ensure Selector implements crawlkit.ElementSelector at compile time.
var _ crawlkit.ElementSelector = (*Selector)(nil)

// Selector extracts elements matching a CSS selector from raw markup.
type Selector struct{}

// NewSelector creates a new Selector.
func NewSelector() *Selector {
	return &Selector{}
}

// Select returns the elements matching selector, in document order.
// Each element carries its serialized markup, whitespace-collapsed text,
// and an attribute name to value mapping.
func (s *Selector) Select(html string, selector string) ([]crawlkit.Element, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, crawlkit.Errorf(crawlkit.EPARSE, "failed to parse HTML: %v", err)
	}

	var elements []crawlkit.Element
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		raw, err := goquery.OuterHtml(sel)
		if err != nil {
			return
		}

		attrs := make(map[string]string)
		if len(sel.Nodes) > 0 {
			for _, a := range sel.Nodes[0].Attr {
				attrs[a.Key] = a.Val
			}
		}

		elements = append(elements, crawlkit.Element{
			HTML: raw,
			Text: collapseWhitespace(sel.Text()),
			Attr: attrs,
		})
	})

	return elements, nil
}

// collapseWhitespace trims and folds runs of whitespace into single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
