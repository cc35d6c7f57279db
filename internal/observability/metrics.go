package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the scorer's Prometheus collectors. All methods are safe on a nil
// receiver so metrics stay optional.
type Metrics struct {
	registry        *prometheus.Registry
	scores          *prometheus.CounterVec
	scoreValues     *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
	grammarFailures prometheus.Counter
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// NewMetrics registers every collector on a fresh registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		scores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resume_scorer",
			Name:      "scores_total",
			Help:      "Resumes scored, by mode and outcome.",
		}, []string{"mode", "outcome"}),
		scoreValues: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "resume_scorer",
			Name:      "score_value",
			Help:      "Distribution of overall scores.",
			Buckets:   []float64{20, 40, 60, 75, 90, 100},
		}, []string{"mode"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resume_scorer",
			Name:      "cache_lookups_total",
			Help:      "Cache lookups, by namespace and result.",
		}, []string{"namespace", "result"}),
		grammarFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "resume_scorer",
			Name:      "grammar_check_failures_total",
			Help:      "Grammar checks that failed and fell back to a neutral score.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resume_scorer",
			Name:      "http_requests_total",
			Help:      "HTTP requests, by route and status code.",
		}, []string{"route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "resume_scorer",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		m.scores,
		m.scoreValues,
		m.cacheLookups,
		m.grammarFailures,
		m.httpRequests,
		m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry for tests and custom collectors
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveScore records a successful score
func (m *Metrics) ObserveScore(mode string, score float64) {
	if m == nil {
		return
	}
	m.scores.WithLabelValues(mode, "ok").Inc()
	m.scoreValues.WithLabelValues(mode).Observe(score)
}

// ScoreFailed records a request that produced no score
func (m *Metrics) ScoreFailed(mode string) {
	if m == nil {
		return
	}
	m.scores.WithLabelValues(mode, "error").Inc()
}

// CacheLookup records a cache hit or miss
func (m *Metrics) CacheLookup(namespace string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(namespace, result).Inc()
}

// GrammarFailure records a failed grammar check
func (m *Metrics) GrammarFailure() {
	if m == nil {
		return
	}
	m.grammarFailures.Inc()
}

// ObserveHTTP records one served request
func (m *Metrics) ObserveHTTP(route, code string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, code).Inc()
	m.httpDuration.WithLabelValues(route).Observe(seconds)
}
