package mock

import "github.com/fwojciec/crawlkit"

var _ crawlkit.ResultWriter = (*ResultWriter)(nil)

// ResultWriter is a mock implementation of crawlkit.ResultWriter.
type ResultWriter struct {
	WritePagesFn    func(pages []*crawlkit.Page) (string, error)
	WriteElementsFn func(batches []*crawlkit.PageData) (string, error)
}

func (w *ResultWriter) WritePages(pages []*crawlkit.Page) (string, error) {
	return w.WritePagesFn(pages)
}

func (w *ResultWriter) WriteElements(batches []*crawlkit.PageData) (string, error) {
	return w.WriteElementsFn(batches)
}
