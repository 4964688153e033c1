package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/casescout"
)

var _ casescout.LanguageDetector = (*LoggingLanguageDetector)(nil)

// LoggingLanguageDetector wraps a LanguageDetector with debug logging.
type LoggingLanguageDetector struct {
	next   casescout.LanguageDetector
	logger *slog.Logger
}

// NewLoggingLanguageDetector creates a new LoggingLanguageDetector.
func NewLoggingLanguageDetector(next casescout.LanguageDetector, logger *slog.Logger) *LoggingLanguageDetector {
	return &LoggingLanguageDetector{next: next, logger: logger}
}

// DetectLanguage delegates to the wrapped detector and logs the result.
func (d *LoggingLanguageDetector) DetectLanguage(ctx context.Context, url string) (lang casescout.Language) {
	defer func(begin time.Time) {
		d.logger.Debug("language detection",
			"url", url,
			"code", lang.Code,
			"confidence", lang.Confidence,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return d.next.DetectLanguage(ctx, url)
}
