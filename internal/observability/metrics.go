// Package observability exposes Prometheus collectors for leaderboard queries
// and roster generation installs.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the runboard collectors. A nil *Metrics is a valid no-op.
type Metrics struct {
	registry      *prometheus.Registry
	queries       *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	rosterRecords prometheus.Gauge
	installs      *prometheus.CounterVec
}

// New creates collectors on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "runboard_queries_total",
			Help: "Leaderboard and statistics queries by kind, metric and result",
		}, []string{"kind", "metric", "result"}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "runboard_query_duration_seconds",
			Help:    "Query recomputation time in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12), // 50us to ~100ms
		}, []string{"kind"}),
		rosterRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "runboard_roster_records",
			Help: "Number of records in the installed roster generation",
		}),
		installs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "runboard_generation_installs_total",
			Help: "Roster generations installed by source",
		}, []string{"source"}),
	}

	m.registry.MustRegister(m.queries, m.queryDuration, m.rosterRecords, m.installs)
	return m
}

// ObserveQuery records one query outcome
func (m *Metrics) ObserveQuery(kind, metric string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.queries.WithLabelValues(kind, metric, result).Inc()
	m.queryDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// GenerationInstalled records a successful install
func (m *Metrics) GenerationInstalled(source string, records int) {
	if m == nil {
		return
	}
	m.installs.WithLabelValues(source).Inc()
	m.rosterRecords.Set(float64(records))
}

// Handler serves the /metrics scrape endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry (tests, extra collectors)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
