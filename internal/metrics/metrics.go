// Package metrics exposes Prometheus collectors for location store traffic.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	OutcomeOK        = "ok"
	OutcomeNotFound  = "not_found"
	OutcomeDuplicate = "duplicate"
	OutcomeInvalid   = "invalid"
	OutcomeError     = "error"
)

// LocationOperations counts store operations by name and outcome.
var LocationOperations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "spotfinder",
	Name:      "location_operations_total",
	Help:      "Location store operations by operation and outcome.",
}, []string{"operation", "outcome"})

// Observe increments the counter for one finished operation.
func Observe(operation, outcome string) {
	LocationOperations.WithLabelValues(operation, outcome).Inc()
}
