// Package report writes the results artifact produced by a run.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jgilmore97/FantasyFootballWrapped/pkg/logger"
)

// Writer persists run results as indented JSON. The write is staged
// through a temp file and renamed so a crash never leaves a truncated
// artifact behind.
type Writer struct {
	path   string
	logger logger.Logger
}

// Option applies a configuration option to the Writer.
type Option func(*Writer)

// WithLogger sets a custom logger for the writer.
func WithLogger(log logger.Logger) Option {
	return func(w *Writer) {
		if log != nil {
			w.logger = log
		}
	}
}

// NewWriter creates a writer targeting path.
func NewWriter(path string, opts ...Option) *Writer {
	w := &Writer{
		path:   path,
		logger: logger.Get().Named("report"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write marshals v and replaces the artifact at the configured path.
func (w *Writer) Write(ctx context.Context, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	dir := filepath.Dir(w.path)
	tmp, err := os.CreateTemp(dir, ".wrapped-*.json")
	if err != nil {
		return fmt.Errorf("stage results: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("stage results: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("stage results: %w", err)
	}
	if err := os.Rename(tmpName, w.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write results: %w", err)
	}

	w.logger.Info(ctx, "results written",
		logger.String("path", w.path),
		logger.Int("bytes", len(data)),
	)
	return nil
}
