package crawlkit

import "context"

// Param is a single query or form parameter. Parameters are ordered and
// keys are unique within a Request.
type Param struct {
	Key   string
	Value string
}

// Request describes one HTTP request to execute. A Request is immutable
// per attempt; the executor may retry it freely.
type Request struct {
	// URL is the address to request.
	URL string

	// Method is the HTTP method. Defaults to GET when empty.
	Method string

	// Params are appended to the URL query string, in order.
	Params []Param

	// Body holds form fields sent as the request body.
	Body []Param

	// Header holds header overrides. Overrides replace the executor's
	// randomized defaults for the same header name.
	Header map[string]string
}

// Response is the raw outcome of a successful request.
type Response struct {
	StatusCode int
	Header     map[string]string
	Body       []byte
}

// Fetcher retrieves a URL and parses the response into a Page.
type Fetcher interface {
	// Fetch retrieves and parses the page at url.
	// Transport failures surface as EUNAVAILABLE after retries exhaust;
	// unparseable markup surfaces as EPARSE. The context controls
	// timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Page, error)
}

// PageParser turns raw markup into a structured Page. Relative links and
// image sources are resolved against baseURL.
type PageParser interface {
	ParsePage(html string, baseURL string) (*Page, error)
}

// ElementSelector extracts elements matching a CSS selector from raw markup.
type ElementSelector interface {
	// Select returns the matches in document order.
	Select(html string, selector string) ([]Element, error)
}
