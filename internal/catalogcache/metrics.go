package catalogcache

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalogcache_load_duration_seconds",
		Help:    "Time taken to load a region's catalogue snapshot",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30},
	}, []string{"region"})

	loadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalogcache_load_failures_total",
		Help: "Total number of failed region loads",
	}, []string{"region"})

	snapshotStoreCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "catalogcache_snapshot_store_count",
		Help: "Number of stores in the most recently loaded snapshot for a region",
	}, []string{"region"})
)

// Metrics records catalogue cache activity, mirroring the teacher's
// MetricsRecorder wrapper-struct idiom (internal/optimizer/metrics.go).
type Metrics struct{}

// NewMetrics returns a new cache metrics recorder.
func NewMetrics() *Metrics { return &Metrics{} }

// RecordLoad records a region load's duration.
func (m *Metrics) RecordLoad(region string, d time.Duration) {
	loadDuration.WithLabelValues(region).Observe(d.Seconds())
}

// RecordFailure records a failed region load.
func (m *Metrics) RecordFailure(region string) {
	loadFailures.WithLabelValues(region).Inc()
}

// RecordSnapshotSize records a region's store count after a successful load.
func (m *Metrics) RecordSnapshotSize(region string, stores int) {
	snapshotStoreCount.WithLabelValues(region).Set(float64(stores))
}
