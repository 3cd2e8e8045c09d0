package ga

import (
	"cmp"
	"math"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/vrpga/vrp"
)

// Evaluate scores the population, refreshes the elite set and the best
// solution, appends avg/best fitness and advances the generation.
//
// With Elitism > 0 the previous elite joins the population, everything is
// sorted by descending fitness (stable), the top Elitism become the new
// elite and the population is cut back to Config.PopulationSize.
func (e *Engine) Evaluate() error {
	if err := e.requireSize("evaluate"); err != nil {
		return err
	}
	start := time.Now()

	var total float64
	for _, c := range e.pop {
		c.Fitness = e.fitness(c)
		total += c.Fitness
	}
	e.counters.AvgFitness = append(e.counters.AvgFitness, total/float64(e.cfg.PopulationSize))

	if e.cfg.Elitism > 0 {
		merged := make([]*vrp.Chromosome, 0, len(e.pop)+len(e.elite))
		merged = append(merged, e.pop...)
		merged = append(merged, e.elite...)
		sortByFitness(merged)
		e.elite = slices.Clone(merged[:e.cfg.Elitism])
		e.pop = merged[:e.cfg.PopulationSize]
	}

	cur := fittest(e.pop)
	if e.best == nil || cur.Fitness > e.best.Fitness {
		e.best = cur.Clone()
	}
	e.counters.BestFitness = append(e.counters.BestFitness, e.best.Fitness)

	e.generation++
	e.evaluated = true
	e.timers.Evaluation = append(e.timers.Evaluation, time.Since(start))
	return nil
}

// fitness scores one individual under the configured policy.
func (e *Engine) fitness(c *vrp.Chromosome) float64 {
	if c.Load == nil {
		e.inst.StampLoad(c)
	}
	return Score(e.cfg.Policy, c.Distance, c.Load, e.inst.FeasibleLoad(c.Load))
}

// Score applies policy p to a chromosome's distance and route loads.
// stdev is the population standard deviation of the loads.
func Score(p FitnessPolicy, distance float64, load []float64, feasible bool) float64 {
	switch p {
	case PolicyA:
		if !feasible {
			return math.Inf(-1)
		}
		return -distance
	case PolicyB:
		return -distance * stat.PopStdDev(load, nil)
	case PolicyC:
		sd := stat.PopStdDev(load, nil)
		return -distance * sd * sd
	case PolicyD:
		if !feasible {
			return -distance * stat.PopStdDev(load, nil)
		}
		return -distance
	case PolicyE:
		if !feasible {
			sd := stat.PopStdDev(load, nil)
			return -distance * sd * sd
		}
		return -distance
	default:
		return math.NaN()
	}
}

// sortByFitness orders cs by descending fitness, keeping ties in place.
func sortByFitness(cs []*vrp.Chromosome) {
	slices.SortStableFunc(cs, func(a, b *vrp.Chromosome) int {
		return cmp.Compare(b.Fitness, a.Fitness)
	})
}

// fittest returns the first individual with maximal fitness.
func fittest(cs []*vrp.Chromosome) *vrp.Chromosome {
	best := cs[0]
	for _, c := range cs[1:] {
		if c.Fitness > best.Fitness {
			best = c
		}
	}
	return best
}
