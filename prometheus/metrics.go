// Package prometheus records fetch and extraction metrics and writes them
// in the Prometheus text format.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	Namespace = "casescout"

	SubsystemFetch   = "fetch"
	SubsystemExtract = "extract"
)

// Outcome label values.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeEmpty   = "empty"
	OutcomeContent = "content"
)

// Metrics holds the collectors for one process.
type Metrics struct {
	registry *prometheus.Registry

	fetchesTotal  *prometheus.CounterVec
	fetchBytes    prometheus.Counter
	fetchDuration prometheus.Histogram

	extractionsTotal   *prometheus.CounterVec
	extractionDuration prometheus.Histogram
}

// NewMetrics creates the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.fetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: SubsystemFetch,
			Name:      "requests_total",
			Help:      "The total number of page fetches by outcome.",
		},
		[]string{"outcome"},
	)
	m.registry.MustRegister(m.fetchesTotal)

	m.fetchBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: SubsystemFetch,
		Name:      "bytes_total",
		Help:      "The total number of body bytes fetched.",
	})
	m.registry.MustRegister(m.fetchBytes)

	m.fetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: SubsystemFetch,
		Name:      "duration_seconds",
		Help:      "Time to fetch a page.",
		Buckets:   prometheus.DefBuckets,
	})
	m.registry.MustRegister(m.fetchDuration)

	m.extractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: SubsystemExtract,
			Name:      "pages_total",
			Help:      "The total number of extractions by outcome.",
		},
		[]string{"outcome"},
	)
	m.registry.MustRegister(m.extractionsTotal)

	m.extractionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: SubsystemExtract,
		Name:      "duration_seconds",
		Help:      "Time to extract a page.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	})
	m.registry.MustRegister(m.extractionDuration)

	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current values to path in the text exposition
// format, replacing the file atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
