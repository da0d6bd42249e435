package http

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors exported by the HTTP adapter.
type Metrics struct {
	built    *prometheus.CounterVec
	failures *prometheus.CounterVec
	nodes    prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// Servers sharing a registry share the collectors already registered there.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		built: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_trees_built_total",
				Help: "Total number of trees built, by source.",
			},
			[]string{"source"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "arbor_tree_failures_total",
				Help: "Total number of failed tree builds, by source.",
			},
			[]string{"source"},
		),
		nodes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "arbor_tree_nodes",
				Help:    "Number of nodes per built tree.",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
	}
	m.built = register(reg, m.built)
	m.failures = register(reg, m.failures)
	m.nodes = register(reg, m.nodes)
	return m
}

// register adds c to reg, or returns the equivalent collector reg already holds.
// Any other registration error is a programming error and panics.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing
		}
	}
	panic(err)
}

func (m *Metrics) observe(source string, size int) {
	m.built.WithLabelValues(source).Inc()
	m.nodes.Observe(float64(size))
}

func (m *Metrics) fail(source string) {
	m.failures.WithLabelValues(source).Inc()
}
