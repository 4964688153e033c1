package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/casescout"
)

var _ casescout.Fetcher = (*MetricsFetcher)(nil)

// MetricsFetcher wraps a Fetcher and records request counts, bytes and
// latency.
type MetricsFetcher struct {
	next    casescout.Fetcher
	metrics *Metrics
}

// NewMetricsFetcher creates a new MetricsFetcher.
func NewMetricsFetcher(next casescout.Fetcher, metrics *Metrics) *MetricsFetcher {
	return &MetricsFetcher{next: next, metrics: metrics}
}

// Fetch delegates to the wrapped fetcher.
func (f *MetricsFetcher) Fetch(ctx context.Context, url string) (*casescout.Response, error) {
	begin := time.Now()
	resp, err := f.next.Fetch(ctx, url)
	f.metrics.fetchDuration.Observe(time.Since(begin).Seconds())

	if err != nil {
		f.metrics.fetchesTotal.WithLabelValues(OutcomeError).Inc()
		return nil, err
	}
	f.metrics.fetchesTotal.WithLabelValues(OutcomeOK).Inc()
	f.metrics.fetchBytes.Add(float64(len(resp.Body)))
	return resp, nil
}

// Close delegates to the wrapped fetcher.
func (f *MetricsFetcher) Close() error {
	return f.next.Close()
}
