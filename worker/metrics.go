package worker

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ticksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "engine",
			Subsystem: "worker",
			Name:      "ticks_total",
			Help:      "Ticks applied to sessions.",
		},
	)
	tickDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "engine",
			Subsystem: "worker",
			Name:      "tick_seconds",
			Help:      "Time spent applying a single tick.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
	)
	gamesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "engine",
			Subsystem: "worker",
			Name:      "games_total",
			Help:      "Rounds finished, by final state.",
		},
		[]string{"state"},
	)
)

func init() {
	prometheus.MustRegister(ticksTotal, tickDuration, gamesTotal)
}
