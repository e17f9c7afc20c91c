package metrics

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the HTTP API. Each instance
// owns its registry so several apps can live in one process.
type Metrics struct {
	Registry         *prometheus.Registry
	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	DBConnPoolStats  *prometheus.GaugeVec
}

func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Number of HTTP requests currently being processed",
			},
		),
		DBConnPoolStats: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "db",
				Name:      "connection_pool",
				Help:      "Database connection pool statistics",
			},
			[]string{"stat"}, // open, in_use, idle, wait_count, wait_duration_ms
		),
	}
}

// RecordDBPoolStats records database connection pool statistics
func (m *Metrics) RecordDBPoolStats(stats sql.DBStats) {
	m.DBConnPoolStats.WithLabelValues("open").Set(float64(stats.OpenConnections))
	m.DBConnPoolStats.WithLabelValues("in_use").Set(float64(stats.InUse))
	m.DBConnPoolStats.WithLabelValues("idle").Set(float64(stats.Idle))
	m.DBConnPoolStats.WithLabelValues("wait_count").Set(float64(stats.WaitCount))
	m.DBConnPoolStats.WithLabelValues("wait_duration_ms").Set(float64(stats.WaitDuration.Milliseconds()))
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
