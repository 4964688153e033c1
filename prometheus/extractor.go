package prometheus

import (
	"time"

	"github.com/fwojciec/casescout"
)

var _ casescout.Extractor = (*MetricsExtractor)(nil)

// MetricsExtractor wraps an Extractor and records outcomes and latency.
type MetricsExtractor struct {
	next    casescout.Extractor
	metrics *Metrics
}

// NewMetricsExtractor creates a new MetricsExtractor.
func NewMetricsExtractor(next casescout.Extractor, metrics *Metrics) *MetricsExtractor {
	return &MetricsExtractor{next: next, metrics: metrics}
}

// Extract delegates to the wrapped extractor.
func (e *MetricsExtractor) Extract(html string, pageURL string) (*casescout.Extraction, error) {
	begin := time.Now()
	ex, err := e.next.Extract(html, pageURL)
	e.metrics.extractionDuration.Observe(time.Since(begin).Seconds())

	switch {
	case err != nil:
		e.metrics.extractionsTotal.WithLabelValues(OutcomeError).Inc()
	case ex.Empty():
		e.metrics.extractionsTotal.WithLabelValues(OutcomeEmpty).Inc()
	default:
		e.metrics.extractionsTotal.WithLabelValues(OutcomeContent).Inc()
	}
	return ex, err
}
