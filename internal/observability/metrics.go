package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce       sync.Once
	pageRequestsTotal  *prometheus.CounterVec
	pageLatencySeconds *prometheus.HistogramVec
	pageErrorsTotal    *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors for page serving.
func RegisterMetrics() {
	registerOnce.Do(func() {
		pageRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ttms_page_requests_total",
			Help: "Total number of page requests served.",
		}, []string{"method", "route", "status"})

		pageLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ttms_page_latency_seconds",
			Help:    "Latency distribution for page requests, backend calls included.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		pageErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ttms_page_errors_total",
			Help: "Total number of error responses returned to the browser.",
		}, []string{"method", "route", "status"})

		prometheus.MustRegister(pageRequestsTotal, pageLatencySeconds, pageErrorsTotal)
	})
}

// PageRequests exposes the counter for served pages.
func PageRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return pageRequestsTotal
}

// PageLatency exposes the latency histogram for served pages.
func PageLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return pageLatencySeconds
}

// PageErrors exposes the counter for error responses.
func PageErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return pageErrorsTotal
}
