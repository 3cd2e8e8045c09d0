package ga

import (
	"time"

	"github.com/katalvlaran/vrpga/vrp"
)

// Select replaces the population with Config.PopulationSize tournament
// winners. Each tournament samples K distinct individuals and keeps the
// fittest, the first sampled one on ties.
func (e *Engine) Select() error {
	if err := e.requireSize("select"); err != nil {
		return err
	}
	start := time.Now()
	e.evaluated = false

	n := len(e.pop)
	selected := make([]*vrp.Chromosome, n)
	for i := range selected {
		selected[i] = e.pop[e.tournament(n, e.cfg.K)]
	}
	e.pop = selected

	e.timers.Selection = append(e.timers.Selection, time.Since(start))
	return e.requireSize("select")
}

// tournament samples k of n indices without replacement (partial
// Fisher–Yates) and returns the winner.
//
// Complexity: O(n) time and space.
func (e *Engine) tournament(n, k int) int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	var (
		winner = -1
		j, r   int
	)
	for j = 0; j < k; j++ {
		r = j + e.rng.Intn(n-j)
		idx[j], idx[r] = idx[r], idx[j]
		if winner < 0 || e.pop[idx[j]].Fitness > e.pop[winner].Fitness {
			winner = idx[j]
		}
	}
	return winner
}
