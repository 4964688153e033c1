package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/casescout"
)

var _ casescout.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   casescout.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next casescout.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs what it found.
func (e *LoggingExtractor) Extract(html string, pageURL string) (ex *casescout.Extraction, err error) {
	defer func(begin time.Time) {
		var titleLen, bodyLen int
		if ex != nil {
			titleLen = casescout.RuneLen(ex.Title)
			bodyLen = casescout.RuneLen(ex.Body)
		}
		e.logger.Log(context.Background(), outcomeLevel(err), "extract",
			"url", pageURL,
			"title_len", titleLen,
			"body_len", bodyLen,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, pageURL)
}
