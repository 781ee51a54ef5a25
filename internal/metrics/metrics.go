package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// relayTotal counts outbound relay calls by method and outcome
	relayTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postman_relay_requests_total",
		Help: "Total relayed requests by method and outcome",
	}, []string{"method", "outcome"})

	// relayDuration tracks the time spent waiting on target servers
	relayDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "postman_relay_duration_seconds",
		Help:    "Relayed request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 14), // 5ms to ~40s
	}, []string{"method"})

	// logUpsertTotal counts log saves by resulting action
	logUpsertTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postman_log_upserts_total",
		Help: "Total log saves by action (created, updated)",
	}, []string{"action"})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "postman_http_requests_total",
		Help: "Total inbound HTTP requests by route and status",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "postman_http_request_duration_seconds",
		Help:    "Inbound HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	rateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "postman_rate_limited_total",
		Help: "Total relay requests rejected by the rate limiter",
	})
)

func ObserveRelay(method string, failed bool, elapsed time.Duration) {
	outcome := "success"
	if failed {
		outcome = "failure"
	}
	relayTotal.WithLabelValues(method, outcome).Inc()
	relayDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func ObserveUpsert(created bool) {
	if created {
		logUpsertTotal.WithLabelValues("created").Inc()
		return
	}
	logUpsertTotal.WithLabelValues("updated").Inc()
}

func ObserveHTTP(method, route, status string, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func ObserveRateLimited() {
	rateLimitedTotal.Inc()
}
