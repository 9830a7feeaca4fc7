// Package metrics owns the Prometheus registry for the api and worker
// binaries.
package metrics

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService collects HTTP, workflow and outbox instrumentation. A nil
// *MetricsService is valid and records nothing.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	submitted *prometheus.CounterVec
	reviewed  *prometheus.CounterVec
	deleted   *prometheus.CounterVec

	outboxPublished *prometheus.CounterVec
	outboxFailed    *prometheus.CounterVec
}

func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	submitted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "workflow_requests_submitted_total",
		Help: "Requests created in pending state",
	}, []string{"kind"})

	reviewed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "workflow_requests_reviewed_total",
		Help: "Requests moved out of pending by a reviewer",
	}, []string{"kind", "status"})

	deleted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "workflow_requests_deleted_total",
		Help: "Pending requests withdrawn by their owner",
	}, []string{"kind"})

	outboxPublished := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "outbox_events_published_total",
		Help: "Outbox events delivered to the broker",
	}, []string{"topic"})

	outboxFailed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "outbox_events_failed_total",
		Help: "Outbox publish attempts that failed",
	}, []string{"topic"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(
		requestDuration, requestTotal,
		submitted, reviewed, deleted,
		outboxPublished, outboxFailed,
		goroutines,
	)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		submitted:       submitted,
		reviewed:        reviewed,
		deleted:         deleted,
		outboxPublished: outboxPublished,
		outboxFailed:    outboxFailed,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry is exposed for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *MetricsService) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, status).Observe(elapsed.Seconds())
	m.requestTotal.WithLabelValues(method, route, status).Inc()
}

func (m *MetricsService) RequestSubmitted(kind string) {
	if m == nil {
		return
	}
	m.submitted.WithLabelValues(kind).Inc()
}

func (m *MetricsService) RequestReviewed(kind, status string) {
	if m == nil {
		return
	}
	m.reviewed.WithLabelValues(kind, status).Inc()
}

func (m *MetricsService) RequestDeleted(kind string) {
	if m == nil {
		return
	}
	m.deleted.WithLabelValues(kind).Inc()
}

func (m *MetricsService) OutboxPublished(topic string) {
	if m == nil {
		return
	}
	m.outboxPublished.WithLabelValues(topic).Inc()
}

func (m *MetricsService) OutboxFailed(topic string) {
	if m == nil {
		return
	}
	m.outboxFailed.WithLabelValues(topic).Inc()
}
