// Package report is the downstream sink for tagged messages: JSON report
// files on disk plus optional per-verdict Kafka events. The processing core
// has no opinion on file layout; this package owns it.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Envelope is the wrapper every report file shares.
type Envelope struct {
	GeneratedAt  time.Time `json:"generated_at"`
	Filter       string    `json:"filter"`
	MessageCount int       `json:"message_count"`
	Results      any       `json:"results"`
}

// Writer persists report envelopes as pretty-printed JSON files.
type Writer struct {
	dir    string
	logger zerolog.Logger
	now    func() time.Time
}

// WriterOption configures the Writer.
type WriterOption func(*Writer)

// WithLogger sets the writer logger.
func WithLogger(logger zerolog.Logger) WriterOption {
	return func(w *Writer) {
		w.logger = logger
	}
}

// WithClock overrides the timestamp source (tests).
func WithClock(now func() time.Time) WriterOption {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

// NewWriter constructs a report writer rooted at dir ("." when empty).
func NewWriter(dir string, opts ...WriterOption) *Writer {
	if dir == "" {
		dir = "."
	}
	w := &Writer{
		dir:    dir,
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write serializes one report to <dir>/<filename>.
func (w *Writer) Write(filename, filter string, messageCount int, results any) error {
	envelope := Envelope{
		GeneratedAt:  w.now().UTC(),
		Filter:       filter,
		MessageCount: messageCount,
		Results:      results,
	}

	payload, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshal %s: %w", filename, err)
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("report: create directory %s: %w", w.dir, err)
	}

	path := filepath.Join(w.dir, filename)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}

	w.logger.Info().Str("path", path).Str("filter", filter).
		Int("messages", messageCount).Msg("report written")
	return nil
}
