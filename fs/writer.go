// Package fs implements result persistence on the local filesystem.
package fs

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fwojciec/crawlkit"
	"github.com/gocarina/gocsv"
)

// Ensure Writer implements crawlkit.ResultWriter at compile time.
var _ crawlkit.ResultWriter = (*Writer)(nil)

const filenameTimeLayout = "20060102_150405"

// Writer implements crawlkit.ResultWriter. Each call produces a single
// timestamped file under Dir, which is created on demand.
type Writer struct {
	Dir    string
	Format crawlkit.Format

	// Now is used for filename timestamps. Defaults to time.Now.
	Now func() time.Time
}

// NewWriter creates a Writer for the given directory and format.
func NewWriter(dir string, format crawlkit.Format) *Writer {
	return &Writer{Dir: dir, Format: format}
}

func (w *Writer) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return time.Now()
}

// filename returns the output path for a new result file, e.g.
// output/crawl_results_20240101_120000.json.
func (w *Writer) filename() string {
	name := "crawl_results_" + w.now().Format(filenameTimeLayout) + "." + string(w.Format)
	return filepath.Join(w.Dir, name)
}

func (w *Writer) create() (*os.File, string, error) {
	if w.Format != crawlkit.FormatJSON && w.Format != crawlkit.FormatCSV {
		return nil, "", crawlkit.Errorf(crawlkit.ECONFIG, "unsupported output format %q", w.Format)
	}
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return nil, "", crawlkit.Errorf(crawlkit.EINTERNAL, "create output directory: %v", err)
	}
	path := w.filename()
	f, err := os.Create(path)
	if err != nil {
		return nil, "", crawlkit.Errorf(crawlkit.EINTERNAL, "create output file: %v", err)
	}
	return f, path, nil
}

// WritePages persists pages collected by a site crawl and returns the path
// of the written file.
func (w *Writer) WritePages(pages []*crawlkit.Page) (string, error) {
	f, path, err := w.create()
	if err != nil {
		return "", err
	}
	defer f.Close()

	switch w.Format {
	case crawlkit.FormatJSON:
		err = writeJSON(f, pages)
	case crawlkit.FormatCSV:
		err = writePagesCSV(f, pages)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

// WriteElements persists element batches collected by a paginated crawl and
// returns the path of the written file.
func (w *Writer) WriteElements(batches []*crawlkit.PageData) (string, error) {
	f, path, err := w.create()
	if err != nil {
		return "", err
	}
	defer f.Close()

	switch w.Format {
	case crawlkit.FormatJSON:
		err = writeJSON(f, batches)
	case crawlkit.FormatCSV:
		err = writeElementsCSV(f, batches)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

func writeJSON(f *os.File, v any) error {
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return crawlkit.Errorf(crawlkit.EINTERNAL, "encode json: %v", err)
	}
	return nil
}

// pageRow is the flat CSV projection of a crawled page.
type pageRow struct {
	URL        string `csv:"url"`
	Title      string `csv:"title"`
	StatusCode int    `csv:"status_code"`
	NumLinks   int    `csv:"num_links"`
	NumImages  int    `csv:"num_images"`
}

func writePagesCSV(f *os.File, pages []*crawlkit.Page) error {
	rows := make([]pageRow, 0, len(pages))
	for _, p := range pages {
		rows = append(rows, pageRow{
			URL:        p.URL,
			Title:      p.Title,
			StatusCode: p.StatusCode,
			NumLinks:   len(p.Links),
			NumImages:  len(p.Images),
		})
	}
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return crawlkit.Errorf(crawlkit.EINTERNAL, "write csv: %v", err)
	}
	return nil
}

// writeElementsCSV flattens element batches into one row per element. The
// column set depends on which attributes appear in the run, so the header is
// computed from the data rather than from struct tags.
func writeElementsCSV(f *os.File, batches []*crawlkit.PageData) error {
	attrKeys := map[string]bool{}
	for _, b := range batches {
		for _, el := range b.Elements {
			for k := range el.Attr {
				attrKeys[k] = true
			}
		}
	}
	sorted := make([]string, 0, len(attrKeys))
	for k := range attrKeys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	cw := csv.NewWriter(f)
	header := append([]string{"url", "text", "html"}, sorted...)
	if err := cw.Write(header); err != nil {
		return crawlkit.Errorf(crawlkit.EINTERNAL, "write csv: %v", err)
	}
	for _, b := range batches {
		for _, el := range b.Elements {
			row := []string{b.URL, el.Text, el.HTML}
			for _, k := range sorted {
				row = append(row, el.Attr[k])
			}
			if err := cw.Write(row); err != nil {
				return crawlkit.Errorf(crawlkit.EINTERNAL, "write csv: %v", err)
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return crawlkit.Errorf(crawlkit.EINTERNAL, "write csv: %v", err)
	}
	return nil
}
