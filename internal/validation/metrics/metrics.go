// Package metrics provides observability for the validation module.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the validation loop's Prometheus collectors.
type Metrics struct {
	// Terminal validation outcomes by status.
	Outcomes *prometheus.CounterVec

	// Evaluation iterations consumed per message before reaching a
	// terminal state.
	Iterations prometheus.Histogram

	// Oracle call failures by oracle kind.
	OracleFailures *prometheus.CounterVec
}

// New creates and registers all validation metrics.
func New() *Metrics {
	return &Metrics{
		Outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "swiftflow_validation_outcomes_total",
			Help: "Terminal validation outcomes by status",
		}, []string{"status"}),

		Iterations: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "swiftflow_validation_iterations",
			Help:    "Evaluation iterations consumed per message",
			Buckets: []float64{1, 2, 3},
		}),

		OracleFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "swiftflow_validation_oracle_failures_total",
			Help: "Evaluation and correction oracle call failures",
		}, []string{"oracle"}), // oracle: "evaluate", "correct"
	}
}

// IncOutcome records a terminal validation status.
func (m *Metrics) IncOutcome(status string) {
	if m != nil {
		m.Outcomes.WithLabelValues(status).Inc()
	}
}

// ObserveIterations records how many evaluation calls a message consumed.
func (m *Metrics) ObserveIterations(n int) {
	if m != nil {
		m.Iterations.Observe(float64(n))
	}
}

// IncOracleFailure records a degraded oracle call.
func (m *Metrics) IncOracleFailure(oracle string) {
	if m != nil {
		m.OracleFailures.WithLabelValues(oracle).Inc()
	}
}
