package crawlkit

// Page represents a fetched and parsed web page. A Page is immutable once
// constructed; ownership passes to the result writer when a crawl run
// appends it to its collected set.
type Page struct {
	// URL is the address the page was fetched from.
	URL string `json:"url"`

	// Title is the document title, empty when the page has none.
	Title string `json:"title"`

	// Text is the visible text of the document.
	Text string `json:"text"`

	// Links holds outbound links resolved to absolute form, in document
	// order. Duplicates are permitted.
	Links []string `json:"links"`

	// Images holds image sources resolved to absolute form, in document order.
	Images []string `json:"images"`

	// Meta maps meta-tag names to their content. On duplicate names the
	// last occurrence wins.
	Meta map[string]string `json:"meta"`

	// StatusCode is the HTTP status of the response the page was built from.
	StatusCode int `json:"status_code"`

	// Header holds the response headers.
	Header map[string]string `json:"headers"`

	// HTML is the raw response body. Kept so selector-driven pagination
	// and element extraction can re-inspect the markup.
	HTML string `json:"-"`

	// ContentHash is an xxhash of Text, useful for spotting duplicate
	// content served under different URLs.
	ContentHash string `json:"content_hash"`
}

// Element is a single markup element matched by a CSS selector during a
// paginated data crawl.
type Element struct {
	// HTML is the serialized markup of the element.
	HTML string `json:"html"`

	// Text is the element's visible text with whitespace collapsed.
	Text string `json:"text"`

	// Attr maps attribute names to values.
	Attr map[string]string `json:"attributes"`
}

// PageData holds the elements extracted from one page of a paginated crawl.
type PageData struct {
	// URL is the page the elements were extracted from.
	URL string `json:"current_url"`

	// Elements are the selector matches in document order.
	Elements []Element `json:"data"`
}
