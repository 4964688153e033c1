package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/casescout"
)

var _ casescout.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   casescout.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next casescout.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// outcomeLevel logs successful calls at debug and failures at warn so a
// scrape only reports pages that went wrong unless verbose.
func outcomeLevel(err error) slog.Level {
	if err != nil {
		return slog.LevelWarn
	}
	return slog.LevelDebug
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (resp *casescout.Response, err error) {
	defer func(begin time.Time) {
		var status, size int
		if resp != nil {
			status = resp.StatusCode
			size = len(resp.Body)
		}
		f.logger.Log(ctx, outcomeLevel(err), "fetch",
			"url", url,
			"status", status,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
