package apiclient

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "worktrack",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Backend API calls broken down by method, route and status.",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "worktrack",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "Latency of backend API calls.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method", "route"})
)

func observe(method, route string, status int, d time.Duration) {
	statusLabel := "error"
	if status > 0 {
		statusLabel = strconv.Itoa(status)
	}
	requestsTotal.WithLabelValues(method, route, statusLabel).Inc()
	requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
