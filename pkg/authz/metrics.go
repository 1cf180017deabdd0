package authz

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var checks = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "worktrack",
	Subsystem: "authz",
	Name:      "checks_total",
	Help:      "Permission checks performed by the UI broken down by permission and result.",
}, []string{"permission", "result"})

func recordCheck(permission string, allowed bool) {
	result := "denied"
	if allowed {
		result = "allowed"
	}
	checks.WithLabelValues(permission, result).Inc()
}
