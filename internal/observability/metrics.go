package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	httpRequestsTotal    *prometheus.CounterVec
	httpLatencySeconds   *prometheus.HistogramVec
	submissionsRecorded  *prometheus.CounterVec
	evaluationsGenerated prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		submissionsRecorded = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scenario_submissions_total",
			Help: "Total number of scenario submissions recorded.",
		}, []string{"scenario"})

		evaluationsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "evaluations_generated_total",
			Help: "Total number of aggregate evaluations generated or refreshed.",
		})

		prometheus.MustRegister(httpRequestsTotal, httpLatencySeconds, submissionsRecorded, evaluationsGenerated)
	})
}

// HTTPRequests exposes the counter for served requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for served requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// SubmissionsRecorded exposes the counter for recorded scenario submissions.
func SubmissionsRecorded() *prometheus.CounterVec {
	RegisterMetrics()
	return submissionsRecorded
}

// EvaluationsGenerated exposes the counter for generated evaluations.
func EvaluationsGenerated() prometheus.Counter {
	RegisterMetrics()
	return evaluationsGenerated
}
