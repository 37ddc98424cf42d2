package slog

import (
	"log/slog"

	"github.com/fwojciec/crawlkit"
)

// Ensure LoggingWriter implements crawlkit.ResultWriter.
var _ crawlkit.ResultWriter = (*LoggingWriter)(nil)

// LoggingWriter wraps a ResultWriter and logs where results were written.
type LoggingWriter struct {
	next   crawlkit.ResultWriter
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter.
func NewLoggingWriter(next crawlkit.ResultWriter, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger}
}

// WritePages delegates to the wrapped writer and logs the output path.
func (w *LoggingWriter) WritePages(pages []*crawlkit.Page) (string, error) {
	path, err := w.next.WritePages(pages)
	if err != nil {
		w.logger.Error("write results", "err", err)
		return "", err
	}
	w.logger.Info("write results", "path", path, "pages", len(pages))
	return path, nil
}

// WriteElements delegates to the wrapped writer and logs the output path.
func (w *LoggingWriter) WriteElements(batches []*crawlkit.PageData) (string, error) {
	path, err := w.next.WriteElements(batches)
	if err != nil {
		w.logger.Error("write results", "err", err)
		return "", err
	}
	w.logger.Info("write results", "path", path, "batches", len(batches))
	return path, nil
}
