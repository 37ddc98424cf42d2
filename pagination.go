package crawlkit

import (
	"net/url"
	"strconv"
	"strings"
)

// Paginator computes the URL of the next page in a paginated crawl.
// The variant is selected once per run: selector-driven pagination lives
// in the goquery package, parameter-driven pagination is ByParameter.
type Paginator interface {
	// Next returns the next URL to visit after page.
	// ok is false when pagination terminates; a returned error with code
	// ECONFIG aborts the run.
	Next(page *Page) (next string, ok bool, err error)
}

// ByParameter paginates by incrementing a numeric query parameter.
// It never terminates on its own; the run ends when the page budget is
// reached or a fetch fails.
type ByParameter struct {
	// Param is the name of the page-number query parameter (e.g. "page").
	Param string
}

// Ensure ByParameter implements Paginator at compile time.
var _ Paginator = (*ByParameter)(nil)

// Next parses the current URL's query string, increments the page
// parameter and re-encodes the query with stable key order. An absent
// parameter defaults to page 1; an existing non-integer value is a
// configuration error, not a crawl error.
func (p *ByParameter) Next(page *Page) (string, bool, error) {
	u, err := url.Parse(page.URL)
	if err != nil {
		return "", false, Errorf(EINVALID, "invalid page URL %q: %v", page.URL, err)
	}

	params := parseQueryOrdered(u.RawQuery)

	current := 1
	found := false
	for i := range params {
		if params[i].Key != p.Param {
			continue
		}
		n, err := strconv.Atoi(params[i].Value)
		if err != nil {
			return "", false, Errorf(ECONFIG, "page parameter %q has non-integer value %q", p.Param, params[i].Value)
		}
		current = n
		params[i].Value = strconv.Itoa(current + 1)
		found = true
		break
	}
	if !found {
		params = append(params, Param{Key: p.Param, Value: strconv.Itoa(current + 1)})
	}

	u.RawQuery = encodeQuery(params)
	return u.String(), true, nil
}

// parseQueryOrdered parses a raw query string into ordered key/value
// pairs. Keys are unique: on a duplicate key the value of the last
// occurrence wins, but the key keeps the position of its first occurrence.
func parseQueryOrdered(rawQuery string) []Param {
	var params []Param
	index := make(map[string]int)

	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			key = rawKey
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			value = rawValue
		}
		if i, ok := index[key]; ok {
			params[i].Value = value
		} else {
			index[key] = len(params)
			params = append(params, Param{Key: key, Value: value})
		}
	}
	return params
}

// encodeQuery re-encodes ordered pairs into a query string, preserving
// their relative order.
func encodeQuery(params []Param) string {
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
