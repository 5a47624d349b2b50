package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Catalog Prometheus metrics.
var (
	CatalogLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "catalog",
			Name:      "loads_total",
			Help:      "Total number of catalog load attempts",
		},
		[]string{"source", "status"},
	)

	CatalogLoadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "catalog",
			Name:      "load_duration_seconds",
			Help:      "Catalog fetch and index duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"source"},
	)

	CatalogItems = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "catalog",
			Name:      "items",
			Help:      "Number of items in the loaded catalog",
		},
	)

	CatalogFacetValues = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "catalog",
			Name:      "facet_values",
			Help:      "Number of distinct facet values in the loaded catalog",
		},
		[]string{"facet"}, // "type" / "platform"
	)

	SearchRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "catalog",
			Name:      "search_requests_total",
			Help:      "Total number of executed searches",
		},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "catalog",
			Name:      "search_duration_seconds",
			Help:      "Search and paginate duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	SearchMatches = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "catalog",
			Name:      "search_matches",
			Help:      "Number of items matched per search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
)

var registerCatalogOnce sync.Once

// RegisterCatalogMetrics registers the catalog metrics on the default registry. Safe to call repeatedly.
func RegisterCatalogMetrics() {
	registerCatalogOnce.Do(func() {
		prometheus.MustRegister(
			CatalogLoadsTotal,
			CatalogLoadDuration,
			CatalogItems,
			CatalogFacetValues,
			SearchRequestsTotal,
			SearchDuration,
			SearchMatches,
		)
	})
}

// Recorder feeds catalog service events into the package metrics.
type Recorder struct{}

// LoadCompleted records a successful load.
func (Recorder) LoadCompleted(source string, dur time.Duration, items, types, platforms int) {
	CatalogLoadsTotal.WithLabelValues(source, "ok").Inc()
	CatalogLoadDuration.WithLabelValues(source).Observe(dur.Seconds())
	CatalogItems.Set(float64(items))
	CatalogFacetValues.WithLabelValues("type").Set(float64(types))
	CatalogFacetValues.WithLabelValues("platform").Set(float64(platforms))
}

// LoadFailed records a failed load.
func (Recorder) LoadFailed(source string, dur time.Duration) {
	CatalogLoadsTotal.WithLabelValues(source, "error").Inc()
	CatalogLoadDuration.WithLabelValues(source).Observe(dur.Seconds())
}

// Searched records one executed search.
func (Recorder) Searched(dur time.Duration, matches int) {
	SearchRequestsTotal.Inc()
	SearchDuration.Observe(dur.Seconds())
	SearchMatches.Observe(float64(matches))
}
