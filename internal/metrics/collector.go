// Package metrics exposes layout activity to Prometheus and serves a small
// status API for the running board.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"paneboard/internal/layout"
)

// Collector counts parses and mutations. It implements layout.Observer.
type Collector struct {
	registry  *prometheus.Registry
	mutations *prometheus.CounterVec
	parses    *prometheus.CounterVec
	leaves    prometheus.Gauge
	hidden    prometheus.Gauge
}

var _ layout.Observer = (*Collector)(nil)

// NewCollector registers the layout metrics on a fresh registry, alongside the
// Go runtime and process collectors.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paneboard_layout_mutations_total",
				Help: "Layout mutations by operation and result.",
			},
			[]string{"op", "result"},
		),
		parses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paneboard_layout_parse_total",
				Help: "Descriptor parses by result.",
			},
			[]string{"result"},
		),
		leaves: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "paneboard_layout_leaves",
			Help: "Content panes in the published board.",
		}),
		hidden: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "paneboard_layout_hidden_bins",
			Help: "Hidden bins in the published board.",
		}),
	}
	c.registry.MustRegister(
		c.mutations, c.parses, c.leaves, c.hidden,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry returns the registry served at /metrics.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Parsed implements layout.Observer.
func (c *Collector) Parsed(err error) {
	c.parses.WithLabelValues(result(err)).Inc()
}

// Mutated implements layout.Observer.
func (c *Collector) Mutated(op string, err error) {
	c.mutations.WithLabelValues(op, result(err)).Inc()
}

// observeSnapshot updates the board gauges.
func (c *Collector) observeSnapshot(s layout.Snapshot) {
	var leaves, hidden int
	var walk func(layout.Snapshot)
	walk = func(s layout.Snapshot) {
		if s.Hidden {
			hidden++
		}
		if s.Kind == layout.KindLeaf.String() {
			leaves++
		}
		for _, ch := range s.Children {
			walk(ch)
		}
	}
	walk(s)
	c.leaves.Set(float64(leaves))
	c.hidden.Set(float64(hidden))
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
