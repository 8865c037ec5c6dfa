package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var buckets = []float64{
	0.0005,
	0.001, // 1ms
	0.002,
	0.005,
	0.01, // 10ms
	0.02,
	0.05,
	0.1, // 100 ms
	0.2,
	0.5,
	1.0, // 1s
	2.0,
	5.0,
	10.0, // 10s
}

var (
	// ResolveCounter counts the outcomes of the resolver per method.
	ResolveCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fetchmock",
		Subsystem: "resolver",
		Name:      "outcome_total",
		Help:      "Intercepted requests by resolution outcome",
	}, []string{"outcome", "method"})

	// DelayDuration observes the artificial delay applied before responding.
	DelayDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fetchmock",
		Subsystem: "resolver",
		Name:      "delay_seconds",
		Help:      "Artificial delay applied to mocked responses",
		Buckets:   buckets,
	}, []string{"method"})
)
