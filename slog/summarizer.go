package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/casescout"
)

var _ casescout.Summarizer = (*LoggingSummarizer)(nil)

// LoggingSummarizer wraps a Summarizer with logging.
type LoggingSummarizer struct {
	next   casescout.Summarizer
	logger *slog.Logger
}

// NewLoggingSummarizer creates a new LoggingSummarizer.
func NewLoggingSummarizer(next casescout.Summarizer, logger *slog.Logger) *LoggingSummarizer {
	return &LoggingSummarizer{next: next, logger: logger}
}

// Summarize delegates to the wrapped summarizer and logs the prompt size.
func (s *LoggingSummarizer) Summarize(ctx context.Context, records []*casescout.Record, prompt string) (summary string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("summarize",
			"records", len(casescout.SucceededRecords(records)),
			"prompt_bytes", len(casescout.FormatPrompt(records, prompt)),
			"summary_bytes", len(summary),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Summarize(ctx, records, prompt)
}
