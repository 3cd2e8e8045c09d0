package ga

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "vrpga"

// metrics mirrors Counters as Prometheus collectors. A nil *metrics is a
// valid no-op.
//
// Every collector carries a constant run_id label, so several engines can
// publish on one registry side by side.
type metrics struct {
	crossovers    prometheus.Counter
	mutations     prometheus.Counter
	constructions prometheus.Counter
	destructions  prometheus.Counter
	repairs       prometheus.Counter
	restarts      prometheus.Counter

	generation  prometheus.Gauge
	avgFitness  prometheus.Gauge
	bestFitness prometheus.Gauge
}

// newMetrics registers the run's collectors on reg. A nil reg disables
// metrics. On a registration failure the collectors registered so far are
// removed again and the error is returned.
func newMetrics(reg prometheus.Registerer, runID string) (*metrics, error) {
	if reg == nil {
		return nil, nil
	}
	labels := prometheus.Labels{"run_id": runID}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace, Name: name, Help: help, ConstLabels: labels,
		})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace, Name: name, Help: help, ConstLabels: labels,
		})
	}
	m := &metrics{
		crossovers:    counter("crossovers_total", "Crossover events that produced a new child"),
		mutations:     counter("mutations_total", "Accepted mutations"),
		constructions: counter("constructions_total", "Crossovers turning infeasible parents into a feasible child"),
		destructions:  counter("destructions_total", "Crossovers losing feasibility of every child"),
		repairs:       counter("repairs_total", "Accepted capacity repairs"),
		restarts:      counter("restarts_total", "Population restarts"),
		generation:    gauge("generation", "Current generation"),
		avgFitness:    gauge("avg_fitness", "Average population fitness of the last evaluation"),
		bestFitness:   gauge("best_fitness", "Best fitness found so far"),
	}

	collectors := []prometheus.Collector{
		m.crossovers, m.mutations, m.constructions, m.destructions, m.repairs, m.restarts,
		m.generation, m.avgFitness, m.bestFitness,
	}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			for _, done := range collectors[:i] {
				reg.Unregister(done)
			}
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return m, nil
}

// observeGeneration publishes the latest entry of every history.
func (m *metrics) observeGeneration(gen int, c *Counters) {
	if m == nil {
		return
	}
	m.crossovers.Add(float64(last(c.Cross)))
	m.mutations.Add(float64(last(c.Mutations)))
	m.constructions.Add(float64(last(c.Constructions)))
	m.destructions.Add(float64(last(c.Destructions)))
	m.repairs.Add(float64(last(c.Repairs)))
	m.generation.Set(float64(gen))
	m.avgFitness.Set(last(c.AvgFitness))
	m.bestFitness.Set(last(c.BestFitness))
}

func (m *metrics) restart() {
	if m == nil {
		return
	}
	m.restarts.Inc()
}
