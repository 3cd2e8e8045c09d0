package ga

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/katalvlaran/vrpga/heuristic"
	"github.com/katalvlaran/vrpga/vrp"
)

// Mutate replaces each individual, with probability Config.PMut, by the
// mutation heuristic's candidate when that candidate differs from it.
// Rebuilding heuristics must also produce a candidate that is new to the
// population; an individual whose rebuild exhausts Config.MaxAttempts is
// left unchanged.
func (e *Engine) Mutate() error {
	if err := e.requireSize("mutate"); err != nil {
		return err
	}
	start := time.Now()
	e.evaluated = false

	next := slices.Clone(e.pop)
	var seen map[string]int
	if e.mutation.Reconstructs() {
		seen = make(map[string]int, len(next))
		for _, c := range next {
			seen[c.Key()]++
		}
	}

	mutated := 0
	for i, c := range next {
		if e.rng.Float64() >= e.cfg.PMut {
			continue
		}
		cand, err := e.mutate(c, seen)
		if errors.Is(err, ErrConstructionFailed) {
			continue
		}
		if err != nil {
			return err
		}
		if cand.Equal(c) {
			continue
		}
		e.inst.StampLoad(cand)
		if seen != nil {
			seen[c.Key()]--
			seen[cand.Key()]++
		}
		next[i] = cand
		mutated++
	}
	e.pop = next

	e.counters.Mutations = append(e.counters.Mutations, mutated)
	e.timers.Mutation = append(e.timers.Mutation, time.Since(start))
	return e.requireSize("mutate")
}

// mutate asks the heuristic for one candidate. With seen non-nil the
// candidate must not already be in the population.
func (e *Engine) mutate(c *vrp.Chromosome, seen map[string]int) (*vrp.Chromosome, error) {
	if seen == nil {
		cand, err := e.mutation.Mutate(c, e.inst, e.rng)
		if err != nil {
			return nil, fmt.Errorf("%v mutation: %w", e.mutation.Method(), err)
		}
		return cand, nil
	}
	for attempt := 0; attempt < e.cfg.MaxAttempts; attempt++ {
		cand, err := e.mutation.Mutate(c, e.inst, e.rng)
		if errors.Is(err, heuristic.ErrBuildFailed) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%v mutation: %w", e.mutation.Method(), err)
		}
		if seen[cand.Key()] > 0 {
			continue
		}
		return cand, nil
	}
	return nil, ErrConstructionFailed
}
