package crawl

import (
	"context"
	"iter"
	"log/slog"

	"github.com/fwojciec/casescout"
	"github.com/fwojciec/casescout/bloom"
)

// Candidate filter sizing. A false positive drops a candidate; it never
// lets a duplicate through.
const (
	candidateFilterSize        = 100000
	candidateFalsePositiveRate = 0.0001
)

// Discoverer turns sitemap candidates into validated case-study URLs.
type Discoverer struct {
	Sitemaps casescout.SitemapService

	// Validator decides whether a candidate counts toward the quota.
	// Nil accepts every candidate.
	Validator casescout.Validator

	Logger *slog.Logger
}

// Discover returns up to max validated URLs for the site at baseURL.
// Candidates are validated one at a time, in sitemap order, and the
// sitemaps stop being read as soon as max URLs have been yielded.
// Duplicate candidates are skipped before validation.
func (d *Discoverer) Discover(ctx context.Context, baseURL string, keywords casescout.KeywordSet, max int) iter.Seq[string] {
	return func(yield func(string) bool) {
		if max <= 0 {
			return
		}

		logger := d.Logger
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}

		seen := bloom.NewURLSet(candidateFilterSize, candidateFalsePositiveRate)
		found := 0

		for c := range d.Sitemaps.Candidates(ctx, baseURL, keywords) {
			if seen.Seen(c.URL) {
				continue
			}

			if d.Validator != nil && !d.Validator.Validate(ctx, c.URL) {
				logger.Debug("candidate rejected", "url", c.URL, "sitemap", c.Sitemap)
				continue
			}

			found++
			if !yield(c.URL) || found >= max {
				return
			}
		}
	}
}
