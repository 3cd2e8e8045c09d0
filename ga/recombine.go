package ga

import (
	"fmt"
	"time"

	"github.com/katalvlaran/vrpga/vrp"
)

// Recombine produces the next generation's children.
//
// Sequential mode pairs pop[0] with pop[1], pop[2] with pop[3] and so on;
// the deduplicated children become the population and Repopulate restores
// its size. Pairwise mode pairs every two distinct individuals; the children
// are scored, sorted by descending fitness and cut to Config.PopulationSize.
//
// A pair is recombined with probability Config.PCross. It counts as a
// crossover only when some child differs from both parents; such a
// crossover is a construction when no parent but some child is feasible and
// a destruction when some parent but no child is feasible.
func (e *Engine) Recombine() error {
	if err := e.requireSize("recombine"); err != nil {
		return err
	}
	start := time.Now()
	e.evaluated = false

	parents := e.pop
	if e.cfg.Pairwise {
		parents = pairwise(e.pop)
	}

	var (
		children      = make([]*vrp.Chromosome, 0, len(parents))
		seen          = make(map[string]struct{}, len(parents))
		cross         int
		constructions int
		destructions  int
	)
	keep := func(c *vrp.Chromosome) {
		k := c.Key()
		if _, dup := seen[k]; dup {
			return
		}
		seen[k] = struct{}{}
		children = append(children, c)
	}

	for i := 0; i+1 < len(parents); i += 2 {
		if e.rng.Float64() >= e.cfg.PCross {
			continue
		}
		p1, p2 := parents[i], parents[i+1]
		c1, c2, err := e.cross(p1, p2)
		if err != nil {
			return err
		}
		keep(c1)
		keep(c2)

		if (c1.Equal(p1) || c1.Equal(p2)) && (c2.Equal(p1) || c2.Equal(p2)) {
			continue
		}
		cross++
		parentFeasible := e.inst.Feasible(p1) || e.inst.Feasible(p2)
		childFeasible := e.inst.Feasible(c1) || e.inst.Feasible(c2)
		if !parentFeasible && childFeasible {
			constructions++
		}
		if parentFeasible && !childFeasible {
			destructions++
		}
	}

	if e.cfg.Pairwise {
		for _, c := range children {
			c.Fitness = e.fitness(c)
		}
		sortByFitness(children)
		if len(children) > e.cfg.PopulationSize {
			children = children[:e.cfg.PopulationSize]
		}
	}
	e.pop = children

	e.counters.Cross = append(e.counters.Cross, cross)
	e.counters.Constructions = append(e.counters.Constructions, constructions)
	e.counters.Destructions = append(e.counters.Destructions, destructions)

	if e.generation > 0 && e.stagnating(cross) {
		e.restart = true
	}

	e.timers.Recombination = append(e.timers.Recombination, time.Since(start))
	return nil
}

// cross runs the operator on the parents' single tours and rebuilds stamped
// children.
func (e *Engine) cross(p1, p2 *vrp.Chromosome) (*vrp.Chromosome, *vrp.Chromosome, error) {
	t1, t2, err := e.xop.Recombine(p1.SingleTour(), p2.SingleTour())
	if err != nil {
		return nil, nil, fmt.Errorf("crossover: %w", err)
	}
	c1, err := vrp.FromSingleTour(t1, e.inst.Dimension())
	if err != nil {
		return nil, nil, fmt.Errorf("crossover child: %w", err)
	}
	c2, err := vrp.FromSingleTour(t2, e.inst.Dimension())
	if err != nil {
		return nil, nil, fmt.Errorf("crossover child: %w", err)
	}
	e.inst.Stamp(c1)
	e.inst.Stamp(c2)
	return c1, c2, nil
}

// stagnating reports whether this generation saw no crossover or repeated
// the previous average or best fitness.
func (e *Engine) stagnating(cross int) bool {
	if cross == 0 {
		return true
	}
	avg, best := e.counters.AvgFitness, e.counters.BestFitness
	if len(avg) >= 2 && avg[len(avg)-1] == avg[len(avg)-2] {
		return true
	}
	return len(best) >= 2 && best[len(best)-1] == best[len(best)-2]
}

// pairwise flattens every unordered pair of distinct individuals (first
// occurrence order) into a sequential parent list.
func pairwise(pop []*vrp.Chromosome) []*vrp.Chromosome {
	distinct := make([]*vrp.Chromosome, 0, len(pop))
	seen := make(map[string]struct{}, len(pop))
	for _, c := range pop {
		k := c.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		distinct = append(distinct, c)
	}

	m := len(distinct)
	out := make([]*vrp.Chromosome, 0, m*(m-1))
	for i := 0; i < m; i++ {
		for j := i + 1; j < m; j++ {
			out = append(out, distinct[i], distinct[j])
		}
	}
	return out
}
