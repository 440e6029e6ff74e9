// Package telemetry exposes Prometheus collectors for the backend.
package telemetry

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec
	upstreamFetchesTotal       *prometheus.CounterVec
	documentSavesTotal         *prometheus.CounterVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aniview_http_requests_total",
				Help: "Total number of HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aniview_http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		)

		upstreamFetchesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aniview_upstream_fetches_total",
				Help: "Total number of upstream page fetches, labeled by target and outcome.",
			},
			[]string{"target", "outcome"},
		)

		documentSavesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aniview_document_saves_total",
				Help: "Total number of document save attempts, labeled by document and outcome.",
			},
			[]string{"document", "outcome"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveHTTPRequest increments the HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	Init()
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveUpstreamFetch increments the upstream fetch counter.
func ObserveUpstreamFetch(target string, err error) {
	Init()
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	upstreamFetchesTotal.WithLabelValues(target, outcome).Inc()
}

// ObserveDocumentSave increments the document save counter.
func ObserveDocumentSave(document string, err error) {
	Init()
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	documentSavesTotal.WithLabelValues(document, outcome).Inc()
}
