package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// ReportBatches counts processed report batches by outcome.
	ReportBatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "report_batches_total", Help: "Report batches by outcome."},
		[]string{"status"},
	)
	// RowsDropped counts input rows discarded during normalization.
	RowsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "report_rows_dropped_total", Help: "Input rows dropped during normalization."},
	)
	// EventsScored counts violation events scored by the gravity engine.
	EventsScored = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "report_events_scored_total", Help: "Violation events scored."},
	)
	// ReportDuration tracks end-to-end batch processing time in seconds.
	ReportDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "report_duration_seconds", Help: "Batch processing duration in seconds.", Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10}},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(ReportBatches)
		Registry.MustRegister(RowsDropped)
		Registry.MustRegister(EventsScored)
		Registry.MustRegister(ReportDuration)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
