package crawlkit

import (
	"net/url"
	"regexp"
	"strings"
)

// Scope bounds which discovered URLs a crawl run is allowed to follow.
type Scope struct {
	// AllowedDomains are substrings matched against a candidate URL's
	// host. A URL is admissible only if its host contains at least one
	// entry.
	AllowedDomains []string

	// ExcludePatterns reject URLs matching any pattern anywhere in the
	// full URL string (a regex search, not a full match).
	ExcludePatterns []*regexp.Regexp
}

// Allows reports whether rawURL is in scope: its host must contain at
// least one allowed domain substring and the full URL must match none of
// the exclusion patterns. Allows is a pure function of its inputs.
func (s *Scope) Allows(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	var allowed bool
	for _, domain := range s.AllowedDomains {
		if domain != "" && strings.Contains(u.Host, domain) {
			allowed = true
			break
		}
	}
	if !allowed {
		return false
	}

	for _, re := range s.ExcludePatterns {
		if re.MatchString(rawURL) {
			return false
		}
	}
	return true
}

// DefaultExcludePatterns returns the exclusion set used when a caller
// supplies none for a site-wide crawl: common binary, document, style and
// script extensions, plus bare URL fragments.
func DefaultExcludePatterns() []*regexp.Regexp {
	return []*regexp.Regexp{
		regexp.MustCompile(`\.(jpg|jpeg|png|gif|pdf|doc|docx|xls|xlsx)$`),
		regexp.MustCompile(`\.(css|js)$`),
		regexp.MustCompile(`#.*$`),
	}
}

// CompilePatterns compiles raw exclusion patterns, returning ECONFIG on
// the first pattern that does not compile.
func CompilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, Errorf(ECONFIG, "invalid exclude pattern %q: %v", p, err)
		}
		res = append(res, re)
	}
	return res, nil
}
