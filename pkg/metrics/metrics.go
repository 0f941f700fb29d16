// Package metrics defines the Prometheus instruments exposed by the server.
// All types tolerate a nil receiver or nil registerer so tests and tools can
// run without a metrics backend.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics records request counts and latencies per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP metrics on the provided registerer.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests served, by method, route and status.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(requests, duration)
	return &HTTPMetrics{
		requests: requests,
		duration: duration,
	}
}

// ObserveRequest records one completed request.
func (m *HTTPMetrics) ObserveRequest(method, route, status string, duration time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	m.requests.WithLabelValues(method, normalizeLabel(route), status).Inc()
	m.duration.WithLabelValues(method, normalizeLabel(route)).Observe(duration.Seconds())
}

// GameMetrics counts game lifecycle events.
type GameMetrics struct {
	created     prometheus.Counter
	completed   prometheus.Counter
	settlements prometheus.Counter
}

// NewGameMetrics registers the game metrics on the provided registerer.
func NewGameMetrics(reg prometheus.Registerer) *GameMetrics {
	if reg == nil {
		return &GameMetrics{}
	}
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "games_created_total",
		Help: "Games created.",
	})
	completed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "games_completed_total",
		Help: "Games completed.",
	})
	settlements := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "settlements_generated_total",
		Help: "Settlements generated at game completion.",
	})
	reg.MustRegister(created, completed, settlements)
	return &GameMetrics{
		created:     created,
		completed:   completed,
		settlements: settlements,
	}
}

// IncGamesCreated increments the created games counter.
func (m *GameMetrics) IncGamesCreated() {
	if m == nil || m.created == nil {
		return
	}
	m.created.Inc()
}

// IncGamesCompleted increments the completed games counter.
func (m *GameMetrics) IncGamesCompleted() {
	if m == nil || m.completed == nil {
		return
	}
	m.completed.Inc()
}

// AddSettlementsGenerated adds to the generated settlements counter.
func (m *GameMetrics) AddSettlementsGenerated(n int) {
	if m == nil || m.settlements == nil {
		return
	}
	m.settlements.Add(float64(n))
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
