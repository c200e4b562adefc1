// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Analysis outcomes.
const (
	OutcomeScored          = "scored"
	OutcomeRejected        = "rejected"
	OutcomeExtractionError = "extraction_error"
)

// Metrics holds the server collectors. A nil *Metrics is a valid no-op.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	analyses         *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	scores           prometheus.Histogram

	cacheLookups *prometheus.CounterVec
}

// New registers all collectors on a fresh registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jobportal_http_requests_total",
				Help: "Total HTTP requests by route pattern, method and status code",
			},
			[]string{"route", "method", "status"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "jobportal_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		analyses: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jobportal_resume_analyses_total",
				Help: "Resume analyses by outcome",
			},
			[]string{"outcome"},
		),
		analysisDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "jobportal_resume_analysis_duration_seconds",
			Help:    "Time to extract and score an uploaded resume",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		scores: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "jobportal_resume_score",
			Help:    "Distribution of resume match scores",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		}),
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jobportal_job_cache_lookups_total",
				Help: "Job list cache lookups by result",
			},
			[]string{"result"},
		),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveAnalysis records one analysis attempt. score is only recorded for
// OutcomeScored.
func (m *Metrics) ObserveAnalysis(outcome string, score int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(outcome).Inc()
	m.analysisDuration.Observe(elapsed.Seconds())
	if outcome == OutcomeScored {
		m.scores.Observe(float64(score))
	}
}

// ObserveCacheLookup records a job cache hit or miss.
func (m *Metrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}
