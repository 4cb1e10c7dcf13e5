// Package metrics exposes Prometheus instrumentation for the orchestrator,
// grounded on chidi150c-coinbase/metrics.go's CounterVec/GaugeVec
// registration style.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DaysSimulated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hydro_days_simulated_total",
		Help: "Total number of days stepped through the rolling orchestrator.",
	})

	Rolls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hydro_rolls_total",
		Help: "Roll decisions by bucket and outcome.",
	}, []string{"bucket", "outcome"})

	IntrinsicValue = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hydro_intrinsic_value_eur",
		Help: "Cumulative realized value across all three ledger buckets for the current run.",
	})

	EnergyLevel = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hydro_energy_level_mwh",
		Help: "Current plant energy level.",
	})
)

// RecordRoll increments the roll counter for one bucket's outcome.
// bucket is "id1_over_da" or "id2_over_id1"; outcome is "accepted" or
// "rejected".
func RecordRoll(bucket, outcome string) {
	Rolls.WithLabelValues(bucket, outcome).Inc()
}
