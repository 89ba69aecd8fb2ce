package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the private registry served on /metrics
var Registry = prometheus.NewRegistry()

var (
	// Actions counts submitted actions by action and outcome (success or error kind)
	Actions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ezkey",
			Name:      "actions_total",
			Help:      "Contract actions by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	// BalanceStrategy counts internal balance strategy attempts
	BalanceStrategy = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ezkey",
			Name:      "balance_strategy_total",
			Help:      "Internal balance strategy attempts by strategy and result",
		},
		[]string{"strategy", "result"},
	)

	// BalanceDefaulted counts snapshots where every strategy failed and balances fell back to zero
	BalanceDefaulted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ezkey",
			Name:      "balance_defaulted_total",
			Help:      "Snapshots whose internal balances defaulted to zero",
		},
	)

	// SnapshotDuration observes snapshot refresh latency
	SnapshotDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ezkey",
			Name:      "snapshot_refresh_seconds",
			Help:      "Snapshot refresh duration",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"result"},
	)

	// Sessions is the number of open sessions
	Sessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ezkey",
			Name:      "sessions_open",
			Help:      "Open wallet sessions",
		},
	)

	// HTTPRequests counts API requests by route pattern and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ezkey",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPDuration observes API latency by route pattern
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ezkey",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		Actions,
		BalanceStrategy,
		BalanceDefaulted,
		SnapshotDuration,
		Sessions,
		HTTPRequests,
		HTTPDuration,
	)
}

// Handler serves the private registry
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records one finished request
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
