// Package observability provides Prometheus metrics for completion round
// trips made by the llmls transport client.
package observability

import "github.com/prometheus/client_golang/prometheus"

// CompletionBuckets defines histogram buckets suited for code completion
// latencies, ranging from 50ms to 30s.
var CompletionBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30}

// Outcome labels for BackendRequestsTotal.
const (
	OutcomeOK = "ok"
)

var (
	// BackendRequestsTotal counts completion round trips by backend and
	// outcome. The outcome is "ok" or the api.ErrorKind of the failure.
	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llmls_backend_requests_total",
			Help: "Backend completion requests",
		},
		[]string{"backend", "outcome"},
	)

	// BackendLatency records backend round-trip latency in seconds.
	BackendLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llmls_backend_latency_seconds",
			Help:    "Backend latency",
			Buckets: CompletionBuckets,
		},
		[]string{"backend"},
	)

	// GenerationsTotal counts generations returned by each backend.
	GenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llmls_generations_total",
			Help: "Generations returned",
		},
		[]string{"backend"},
	)
)

func init() {
	prometheus.MustRegister(
		BackendRequestsTotal,
		BackendLatency,
		GenerationsTotal,
	)
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text format, for pickup by the node exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
