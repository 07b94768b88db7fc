// Package metrics provides observability for the fraud scoring module.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the fan-out scheduler's Prometheus collectors.
type Metrics struct {
	// Scoring task durations by agent.
	TaskDuration *prometheus.HistogramVec

	// Tasks dropped from a message's result set by agent and cause.
	TasksDropped *prometheus.CounterVec

	// Aggregated verdicts by status.
	Verdicts *prometheus.CounterVec
}

// New creates and registers all fraud metrics.
func New() *Metrics {
	return &Metrics{
		TaskDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "swiftflow_fraud_task_duration_seconds",
			Help:    "Duration of per-agent scoring tasks",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"agent"}),

		TasksDropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "swiftflow_fraud_tasks_dropped_total",
			Help: "Scoring tasks dropped from a message's result set",
		}, []string{"agent", "cause"}), // cause: "timeout", "canceled"

		Verdicts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "swiftflow_fraud_verdicts_total",
			Help: "Aggregated fraud verdicts by status",
		}, []string{"status"}),
	}
}

// ObserveTaskDuration records one scoring task's wall time.
func (m *Metrics) ObserveTaskDuration(agent string, d time.Duration) {
	if m != nil {
		m.TaskDuration.WithLabelValues(agent).Observe(d.Seconds())
	}
}

// IncTaskDropped records a task omitted from aggregation.
func (m *Metrics) IncTaskDropped(agent, cause string) {
	if m != nil {
		m.TasksDropped.WithLabelValues(agent, cause).Inc()
	}
}

// IncVerdict records an aggregated verdict.
func (m *Metrics) IncVerdict(status string) {
	if m != nil {
		m.Verdicts.WithLabelValues(status).Inc()
	}
}
