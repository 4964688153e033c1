// Package crawl orchestrates case-study discovery and extraction. It
// coordinates sitemap discovery, candidate validation, fetching and
// extraction into records.
package crawl

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fwojciec/casescout"
	"golang.org/x/sync/errgroup"
)

// Scraper fetches and extracts a batch of URLs into records.
type Scraper struct {
	Fetcher     casescout.Fetcher
	Extractor   casescout.Extractor
	RateLimiter casescout.DomainLimiter
	Logger      *slog.Logger

	// Concurrency bounds the number of pages in flight. Defaults to 1.
	Concurrency int

	// RetryDelays are the waits between fetch attempts. Nil means one
	// attempt only.
	RetryDelays []time.Duration
}

// ProgressEvent reports progress during a scrape.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// scrapeResult holds the outcome of processing a single URL.
type scrapeResult struct {
	position int
	record   *casescout.Record
}

// Scrape processes every URL and returns one record per URL, in input
// order. A URL that fails becomes an error record; it never aborts the
// batch. The progress callback, if provided, is called from the calling
// goroutine only.
func (s *Scraper) Scrape(ctx context.Context, urls []string, progress ProgressFunc) []*casescout.Record {
	records := make([]*casescout.Record, len(urls))
	if len(urls) == 0 {
		return records
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	resultCh := make(chan scrapeResult, len(urls))

	var completed atomic.Int64
	total := len(urls)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, url := range urls {
			g.Go(func() error {
				resultCh <- scrapeResult{position: i, record: s.ScrapeURL(gctx, url)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	for result := range resultCh {
		completed.Add(1)
		rec := result.record
		rec.Position = result.position
		records[result.position] = rec

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			URL:       rec.URL,
		}
		if rec.Failed() {
			event.Type = ProgressFailed
			event.Error = errors.New(rec.Error)
		}
		progress(event)
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return records
}

// ScrapeURL fetches and extracts a single URL. Every failure is reported
// through the returned record.
func (s *Scraper) ScrapeURL(ctx context.Context, url string) *casescout.Record {
	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, casescout.Domain(url)); err != nil {
			return casescout.FailedRecord(url, err)
		}
	}

	fetch := func(ctx context.Context, url string) (*casescout.Response, error) {
		return s.Fetcher.Fetch(ctx, url)
	}
	resp, err := FetchWithRetryDelays(ctx, url, fetch, s.Logger, s.RetryDelays)
	if err != nil {
		return casescout.FailedRecord(url, err)
	}

	ex, err := s.Extractor.Extract(resp.Body, url)
	if err != nil {
		return casescout.FailedRecord(url, err)
	}

	return casescout.NewRecord(url, ex)
}
