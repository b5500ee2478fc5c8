package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the service-level Prometheus instruments.
type metrics struct {
	constructed      *prometheus.CounterVec
	constructSeconds prometheus.Histogram
	evaluations      prometheus.Counter
	releases         prometheus.Counter
	active           prometheus.Gauge
	optimaCount      prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		constructed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tdmk",
			Subsystem: "landscapes",
			Name:      "constructed_total",
			Help:      "Landscapes constructed, by codomain function.",
		}, []string{"function"}),
		constructSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tdmk",
			Subsystem: "landscapes",
			Name:      "construction_seconds",
			Help:      "Time spent constructing a landscape, including optimum propagation.",
			Buckets:   prometheus.DefBuckets,
		}),
		evaluations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tdmk",
			Subsystem: "landscapes",
			Name:      "evaluations_total",
			Help:      "Solution evaluations served.",
		}),
		releases: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tdmk",
			Subsystem: "landscapes",
			Name:      "released_total",
			Help:      "Landscapes released by clients.",
		}),
		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "tdmk",
			Subsystem: "landscapes",
			Name:      "active",
			Help:      "Landscapes currently held in the registry.",
		}),
		optimaCount: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tdmk",
			Subsystem: "landscapes",
			Name:      "global_optima",
			Help:      "Number of global optima per constructed landscape.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}
}
