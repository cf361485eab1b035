package store

import "github.com/prometheus/client_golang/prometheus"

var (
	mutationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taskkeeper",
			Subsystem: "store",
			Name:      "mutations_total",
			Help:      "Counter of applied store mutations.",
		}, []string{"collection", "op"})

	snapshotSaveCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taskkeeper",
			Subsystem: "snapshot",
			Name:      "saves_total",
			Help:      "Counter of snapshot writes by result.",
		}, []string{"result"})

	snapshotSaveDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "taskkeeper",
			Subsystem: "snapshot",
			Name:      "save_duration_seconds",
			Help:      "Bucketed histogram of snapshot write time.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 16),
		})

	recordsGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "taskkeeper",
			Subsystem: "store",
			Name:      "records",
			Help:      "Number of live records per collection.",
		}, []string{"collection"})

	poisonedGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "taskkeeper",
			Subsystem: "store",
			Name:      "poisoned",
			Help:      "1 once a critical section has panicked.",
		})
)

func init() {
	prometheus.MustRegister(mutationCounter)
	prometheus.MustRegister(snapshotSaveCounter)
	prometheus.MustRegister(snapshotSaveDuration)
	prometheus.MustRegister(recordsGauge)
	prometheus.MustRegister(poisonedGauge)
}
