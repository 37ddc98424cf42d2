package crawlkit

// Format identifies a serialization format for crawl results.
type Format string

// Supported output formats.
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat converts a user-supplied format name into a Format.
// An unsupported name is a configuration error, raised before any I/O
// is attempted.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV:
		return Format(s), nil
	default:
		return "", Errorf(ECONFIG, "unsupported output format %q (supported: json, csv)", s)
	}
}

// ResultWriter serializes crawl results to an external representation.
type ResultWriter interface {
	// WritePages serializes whole-page records from a site-wide crawl.
	// It returns the path of the file written.
	WritePages(pages []*Page) (string, error)

	// WriteElements serializes extracted-element batches from a
	// paginated crawl. It returns the path of the file written.
	WriteElements(batches []*PageData) (string, error)
}
