package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riskibarqy/fantasy-nft/internal/platform/resilience"
)

const metricsNamespace = "fantasy_nft"

// Metrics holds the Prometheus collectors exposed on /metrics. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	BreakerTransitions *prometheus.CounterVec
	BreakerOpen        *prometheus.GaugeVec

	JobRuns        *prometheus.CounterVec
	ScoringRecords *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "route"},
		),
		BreakerTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "circuit_breaker_transitions_total",
				Help:      "Circuit breaker state transitions by breaker and target state",
			},
			[]string{"breaker", "to"},
		),
		BreakerOpen: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "circuit_breaker_open",
				Help:      "1 while the breaker rejects calls",
			},
			[]string{"breaker"},
		),
		JobRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "job_runs_total",
				Help:      "Batch job runs by job and result",
			},
			[]string{"job", "result"},
		),
		ScoringRecords: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "scoring_records_total",
				Help:      "Stat rows seen by the daily scoring pass, by outcome",
			},
			[]string{"outcome"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.BreakerTransitions,
		m.BreakerOpen,
		m.JobRuns,
		m.ScoringRecords,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// BreakerListener feeds breaker transitions into the transition counter and
// the open gauge.
func (m *Metrics) BreakerListener() resilience.StateListener {
	if m == nil {
		return nil
	}
	return func(name string, _, to resilience.CircuitState) {
		m.BreakerTransitions.WithLabelValues(name, string(to)).Inc()
		open := 0.0
		if to == resilience.CircuitStateOpen {
			open = 1
		}
		m.BreakerOpen.WithLabelValues(name).Set(open)
	}
}

func (m *Metrics) ObserveJob(job string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.JobRuns.WithLabelValues(job, result).Inc()
}

func (m *Metrics) ObserveScoring(received, upserted, unmatched int) {
	if m == nil {
		return
	}
	m.ScoringRecords.WithLabelValues("received").Add(float64(received))
	m.ScoringRecords.WithLabelValues("upserted").Add(float64(upserted))
	m.ScoringRecords.WithLabelValues("unmatched").Add(float64(unmatched))
}
