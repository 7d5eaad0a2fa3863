// Package metrics exposes the emulator's Prometheus instrumentation.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the emulator's counters with their registry so tests can
// create isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	Requests *prometheus.CounterVec
	Rejected prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.Requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "enquete_requests_total",
		Help: "HTTP requests handled, by method and status code.",
	}, []string{"method", "code"})

	m.Rejected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "enquete_rate_limited_total",
		Help: "Requests rejected by the rate limiter.",
	})

	m.registry.MustRegister(m.Requests, m.Rejected)
	return m
}

// Handler serves the /metrics endpoint for this instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
