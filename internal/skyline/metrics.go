package skyline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// searchDuration tracks the wall time of a full SolveSkyline call.
	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "skyline_search_duration_seconds",
		Help:    "Time taken by a full skyline search",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})

	// preSearchDuration tracks the time spent computing R0 and C* before
	// the parallel expansion begins.
	preSearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "skyline_pre_search_duration_seconds",
		Help:    "Time taken computing the initial route and cost lower bound",
		Buckets: []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	})

	// routesEmitted tracks how many candidate routes each worker mode
	// emits to the aggregator per query.
	routesEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skyline_routes_emitted_total",
		Help: "Total number of fulfilling routes emitted to the aggregator by mode",
	}, []string{"mode"})

	// skylineSize tracks the final skyline size per query.
	skylineSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "skyline_result_size",
		Help:    "Number of routes in the returned skyline",
		Buckets: []float64{1, 2, 3, 5, 10, 20, 50},
	})

	// stagnationHits counts finished searches by termination cause, the
	// stagnation counter being one cause among several.
	stagnationHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skyline_termination_total",
		Help: "Total number of searches terminated, by cause",
	}, []string{"cause"}) // cause: stagnation, lower_bound, exhausted, infeasible, empty_list

	// listSize tracks the distribution of shopping list sizes.
	listSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "skyline_shopping_list_items_count",
		Help:    "Number of distinct products in a shopping list",
		Buckets: []float64{1, 2, 3, 5, 10, 20},
	})

	// catalogueStoreCount tracks the catalogue size a query ran against.
	catalogueStoreCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "skyline_catalogue_store_count",
		Help:    "Number of stores in the catalogue at query time",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 500},
	})
)

// MetricsRecorder provides methods to record skyline search metrics,
// mirroring the teacher's own per-package MetricsRecorder wrapper
// (internal/optimizer/metrics.go).
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordSearch records a full search's duration and pre-search duration.
func (m *MetricsRecorder) RecordSearch(total, preSearch time.Duration) {
	searchDuration.Observe(total.Seconds())
	preSearchDuration.Observe(preSearch.Seconds())
}

// RecordRouteEmitted records one fulfilling-route emission from a worker.
func (m *MetricsRecorder) RecordRouteEmitted(mode string) {
	routesEmitted.WithLabelValues(mode).Inc()
}

// RecordSkylineSize records the final skyline size.
func (m *MetricsRecorder) RecordSkylineSize(size int) {
	skylineSize.Observe(float64(size))
}

// RecordTermination records why a search stopped.
func (m *MetricsRecorder) RecordTermination(cause string) {
	stagnationHits.WithLabelValues(cause).Inc()
}

// RecordListSize records the number of distinct products requested.
func (m *MetricsRecorder) RecordListSize(size int) {
	listSize.Observe(float64(size))
}

// RecordCatalogueSize records the catalogue's store count.
func (m *MetricsRecorder) RecordCatalogueSize(count int) {
	catalogueStoreCount.Observe(float64(count))
}
