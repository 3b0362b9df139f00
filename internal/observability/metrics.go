package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains the Prometheus metrics exposed by the article service.
// All collectors are registered with the default registry via promauto.
type Metrics struct {
	// RequestsTotal counts HTTP requests, labeled by method, route, and status.
	RequestsTotal *prometheus.CounterVec

	// RequestDuration observes HTTP request duration in seconds, labeled by
	// method and route.
	RequestDuration *prometheus.HistogramVec

	// RequestsInFlight gauges the number of requests currently being served.
	RequestsInFlight prometheus.Gauge

	// TxCommits counts committed request transactions.
	TxCommits prometheus.Counter

	// TxRollbacks counts rolled back request transactions.
	TxRollbacks prometheus.Counter
}

// NewMetrics creates and registers all metrics under the given namespace.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests processed.",
		}, []string{"method", "route", "status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		RequestsInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		}),

		TxCommits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "tx_commits_total",
			Help:      "Total number of committed request transactions.",
		}),

		TxRollbacks: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "tx_rollbacks_total",
			Help:      "Total number of rolled back request transactions.",
		}),
	}
}
