package ga

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/vrpga/heuristic"
	"github.com/katalvlaran/vrpga/vrp"
)

// Initialize builds the first population.
//
// With the random construction method every individual is random. Otherwise
// round(size·InitRatio) individuals come from the construction heuristic and
// the rest are random. Every individual is unique in the population.
func (e *Engine) Initialize() error {
	start := time.Now()
	e.start = start
	e.evaluated = false

	size := e.cfg.PopulationSize
	if size <= 0 || size%2 != 0 {
		return fmt.Errorf("population size %d must be even and > 0: %w", size, ErrConfig)
	}
	e.pop = make([]*vrp.Chromosome, 0, size)

	built := 0
	if e.cfg.Construction != heuristic.Random {
		built = share(size, e.cfg.InitRatio)
	}
	if err := e.insert(e.random, size-built, false); err != nil {
		return fmt.Errorf("initial population: %w", err)
	}
	if err := e.insert(e.construction, built, false); err != nil {
		return fmt.Errorf("initial population: %w", err)
	}

	e.initialized = true
	e.timers.Population = append(e.timers.Population, time.Since(start))
	return e.requireSize("initialize")
}

// Repopulate tops the population up to Config.PopulationSize with unique
// individuals from the construction heuristic.
func (e *Engine) Repopulate() error {
	if !e.initialized {
		return fmt.Errorf("repopulate before initialize: %w", ErrInvariantViolation)
	}
	if missing := e.cfg.PopulationSize - len(e.pop); missing > 0 {
		e.evaluated = false
		if err := e.insert(e.construction, missing, false); err != nil {
			return fmt.Errorf("repopulate: %w", err)
		}
	}
	return e.requireSize("repopulate")
}

// insert appends n new individuals built by h, each unique in the population.
// With eval set each one is scored on insertion.
func (e *Engine) insert(h heuristic.Heuristic, n int, eval bool) error {
	if n <= 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(e.pop)+n)
	for _, c := range e.pop {
		seen[c.Key()] = struct{}{}
	}

	for i := 0; i < n; i++ {
		c, err := e.construct(h, seen)
		if err != nil {
			return err
		}
		if !c.HasDistance() {
			return fmt.Errorf("%v produced an unstamped chromosome: %w", h.Method(), ErrInvariantViolation)
		}
		e.inst.StampLoad(c)
		if eval {
			c.Fitness = e.fitness(c)
		}
		seen[c.Key()] = struct{}{}
		e.pop = append(e.pop, c)
	}
	return nil
}

// construct builds one individual whose key is not in seen.
// heuristic.ErrBuildFailed and duplicates consume an attempt.
func (e *Engine) construct(h heuristic.Heuristic, seen map[string]struct{}) (*vrp.Chromosome, error) {
	for attempt := 0; attempt < e.cfg.MaxAttempts; attempt++ {
		c, err := h.Build(e.inst, e.rng)
		if errors.Is(err, heuristic.ErrBuildFailed) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%v build: %w", h.Method(), err)
		}
		if _, dup := seen[c.Key()]; dup {
			continue
		}
		return c, nil
	}
	return nil, fmt.Errorf("%v: no unique individual after %d attempts: %w",
		h.Method(), e.cfg.MaxAttempts, ErrConstructionFailed)
}

// share returns round(size·ratio) clamped to [0,size].
func share(size int, ratio float64) int {
	n := int(math.Round(float64(size) * ratio))
	if n < 0 {
		return 0
	}
	if n > size {
		return size
	}
	return n
}
