// Package slog decorates casescout services with structured logging.
package slog

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/fwojciec/casescout"
)

var _ casescout.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService with logging.
type LoggingSitemapService struct {
	next   casescout.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next casescout.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// Candidates logs each candidate at debug level and a summary once the
// consumer stops or the sitemaps run out.
func (s *LoggingSitemapService) Candidates(ctx context.Context, baseURL string, keywords casescout.KeywordSet) iter.Seq[casescout.Candidate] {
	return func(yield func(casescout.Candidate) bool) {
		count := 0
		defer func(begin time.Time) {
			s.logger.Info("sitemap discovery",
				"url", baseURL,
				"count", count,
				"duration", time.Since(begin),
			)
		}(time.Now())

		for c := range s.next.Candidates(ctx, baseURL, keywords) {
			count++
			s.logger.Debug("sitemap candidate", "url", c.URL, "sitemap", c.Sitemap)
			if !yield(c) {
				return
			}
		}
	}
}
