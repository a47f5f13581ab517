// Package metrics exposes storefront Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	cartMutations   *prometheus.CounterVec
	viewTransitions *prometheus.CounterVec
}

// New registers the storefront collectors, plus Go and process collectors,
// on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "code"}),
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_cart_mutations_total",
			Help: "Cart mutations by operation.",
		}, []string{"op"}),
		viewTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_view_transitions_total",
			Help: "View transitions by target view.",
		}, []string{"view"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.duration,
		m.cartMutations,
		m.viewTransitions,
	)
	return m
}

func (m *Metrics) CartMutated(op string) {
	m.cartMutations.WithLabelValues(op).Inc()
}

func (m *Metrics) ViewChanged(view string) {
	m.viewTransitions.WithLabelValues(view).Inc()
}

// Instrument counts and times requests served by h under the route label.
func (m *Metrics) Instrument(route string, h http.Handler) http.Handler {
	labels := prometheus.Labels{"route": route}
	return promhttp.InstrumentHandlerDuration(
		m.duration.MustCurryWith(labels),
		promhttp.InstrumentHandlerCounter(m.requests.MustCurryWith(labels), h),
	)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
