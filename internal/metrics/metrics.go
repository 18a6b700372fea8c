// Package metrics exposes prometheus collectors for the serving shell.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	PolicyDenials   prometheus.Counter
	ParseFailures   prometheus.Counter
	LLMResolutions  *prometheus.CounterVec
	RequestDuration prometheus.Histogram
}

// New builds a self-contained registry so tests can create metrics without
// default-registry collisions.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "voiceking_requests_total",
			Help: "Requests processed, labeled by detected intent.",
		}, []string{"intent"}),
		PolicyDenials: factory.NewCounter(prometheus.CounterOpts{
			Name: "voiceking_policy_denials_total",
			Help: "Actions denied by a policy gate.",
		}),
		ParseFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "voiceking_parse_failures_total",
			Help: "Inbound documents rejected before reaching the core.",
		}),
		LLMResolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "voiceking_llm_resolutions_total",
			Help: "Delegated LLM resolutions, labeled by outcome.",
		}, []string{"outcome"}),
		RequestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "voiceking_request_duration_seconds",
			Help:    "End-to-end request handling latency.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Handler serves the registry for a /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
