package navigation

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reconciliation outcomes.
const (
	ReconcileRemoved  = "removed"
	ReconcileEcho     = "echo"
	ReconcileStale    = "stale"
	ReconcileDeferred = "deferred"
)

// Metrics holds Prometheus collectors for stack operations.
// A nil *Metrics records nothing.
type Metrics struct {
	Operations      *prometheus.CounterVec
	Reconciliations *prometheus.CounterVec
	Depth           *prometheus.GaugeVec
	Duration        *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "viewstack",
				Subsystem: "navigation",
				Name:      "operations_total",
				Help:      "Total number of stack operations",
			},
			[]string{"stack", "op", "result"},
		),
		Reconciliations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "viewstack",
				Subsystem: "navigation",
				Name:      "reconciliations_total",
				Help:      "Total number of native pop notifications handled",
			},
			[]string{"stack", "outcome"},
		),
		Depth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "viewstack",
				Subsystem: "navigation",
				Name:      "depth",
				Help:      "Current number of entries per stack",
			},
			[]string{"stack"},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "viewstack",
				Subsystem: "navigation",
				Name:      "operation_duration_seconds",
				Help:      "Stack operation latency in seconds, native call included",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~2s
			},
			[]string{"stack", "op"},
		),
	}
}

func (m *Metrics) observe(stack, op string, start time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Operations.WithLabelValues(stack, op, result).Inc()
	m.Duration.WithLabelValues(stack, op).Observe(time.Since(start).Seconds())
}

func (m *Metrics) reconciled(stack, outcome string) {
	if m == nil {
		return
	}
	m.Reconciliations.WithLabelValues(stack, outcome).Inc()
}

func (m *Metrics) setDepth(stack string, depth int) {
	if m == nil {
		return
	}
	m.Depth.WithLabelValues(stack).Set(float64(depth))
}
