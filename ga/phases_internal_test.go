package ga

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/vrpga/crossover"
	"github.com/katalvlaran/vrpga/heuristic"
	"github.com/katalvlaran/vrpga/vrp"
)

// scriptedOp returns fixed children, or the parents swapped when no script
// is set.
type scriptedOp struct {
	c1, c2 []int
	err    error
	calls  int
}

func (s *scriptedOp) Recombine(p1, p2 []int) ([]int, []int, error) {
	s.calls++
	if s.err != nil {
		return nil, nil, s.err
	}
	if s.c1 == nil {
		return slices.Clone(p2), slices.Clone(p1), nil
	}
	return slices.Clone(s.c1), slices.Clone(s.c2), nil
}

func (s *scriptedOp) Counters() crossover.Counters { return crossover.Counters{} }
func (s *scriptedOp) Timers() crossover.Timers     { return crossover.Timers{} }

// tinyInstance: three unit customers on a line, two trucks of capacity 2.
// A tour is infeasible exactly when one route holds all three customers.
func tinyInstance(t *testing.T) *vrp.Instance {
	t.Helper()
	inst, err := vrp.NewEuclidean(
		[][2]float64{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
		[]float64{0, 1, 1, 1}, 2, 2)
	require.NoError(t, err)
	return inst
}

func tour(t *testing.T, inst *vrp.Instance, tr ...int) *vrp.Chromosome {
	t.Helper()
	c, err := vrp.NewChromosome(inst.Dimension(), inst.Trucks(), tr)
	require.NoError(t, err)
	inst.Stamp(c)
	return c
}

func testEngine(t *testing.T, inst *vrp.Instance, op crossover.Operator, size int) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.PopulationSize = size
	cfg.Elitism = 0
	cfg.K = 2
	cfg.PCross = 1
	cfg.PMut = 0
	cfg.Construction = heuristic.Random
	cfg.Mutation = heuristic.Random
	cfg.Policy = PolicyA
	cfg.MaxAttempts = 100
	e, err := New(inst, op, cfg, WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	return e
}

// seed installs pop as the current population.
func (e *Engine) seed(pop ...*vrp.Chromosome) {
	e.pop = pop
	e.initialized = true
	e.evaluated = false
}

func TestRecombine_CountsConstruction(t *testing.T) {
	inst := tinyInstance(t)
	// Both children split the customers over the two trucks.
	op := &scriptedOp{c1: []int{0, 1, 2, 4, 3}, c2: []int{0, 1, 4, 2, 3}}
	e := testEngine(t, inst, op, 2)

	p1 := tour(t, inst, 1, 2, 3, 4)
	p2 := tour(t, inst, 4, 1, 2, 3)
	require.False(t, inst.Feasible(p1))
	require.False(t, inst.Feasible(p2))
	e.seed(p1, p2)

	require.NoError(t, e.Recombine())
	assert.Equal(t, 1, op.calls)
	assert.Equal(t, []int{0, 1}, e.counters.Cross)
	assert.Equal(t, []int{0, 1}, e.counters.Constructions)
	assert.Equal(t, []int{0, 0}, e.counters.Destructions)

	require.Len(t, e.pop, 2)
	for _, c := range e.pop {
		assert.True(t, c.HasDistance())
		assert.True(t, inst.Feasible(c))
	}
}

func TestRecombine_CountsDestruction(t *testing.T) {
	inst := tinyInstance(t)
	op := &scriptedOp{c1: []int{0, 1, 2, 3, 4}, c2: []int{0, 4, 1, 2, 3}}
	e := testEngine(t, inst, op, 2)
	e.seed(tour(t, inst, 1, 2, 4, 3), tour(t, inst, 1, 4, 2, 3))

	require.NoError(t, e.Recombine())
	assert.Equal(t, 1, last(e.counters.Cross))
	assert.Equal(t, 0, last(e.counters.Constructions))
	assert.Equal(t, 1, last(e.counters.Destructions))
}

// TestRecombine_IdenticalChildrenNotCounted: an operator that hands the
// parents back is called but produces no crossover event.
func TestRecombine_IdenticalChildrenNotCounted(t *testing.T) {
	inst := tinyInstance(t)
	op := &scriptedOp{}
	e := testEngine(t, inst, op, 2)
	e.seed(tour(t, inst, 1, 2, 4, 3), tour(t, inst, 3, 4, 2, 1))

	require.NoError(t, e.Recombine())
	assert.Equal(t, 1, op.calls)
	assert.Equal(t, 0, last(e.counters.Cross))
	assert.Len(t, e.pop, 2)
}

// TestRecombine_DeduplicatesChildren: equal children collapse to one entry
// and Repopulate restores the size with new individuals.
func TestRecombine_DeduplicatesChildren(t *testing.T) {
	inst := tinyInstance(t)
	op := &scriptedOp{c1: []int{0, 1, 2, 4, 3}, c2: []int{2, 4, 3, 0, 1}} // same cycle
	e := testEngine(t, inst, op, 2)
	e.seed(tour(t, inst, 1, 2, 3, 4), tour(t, inst, 4, 1, 2, 3))

	require.NoError(t, e.Recombine())
	require.Len(t, e.pop, 1)

	require.NoError(t, e.Repopulate())
	require.Len(t, e.pop, 2)
	assert.False(t, e.pop[0].Equal(e.pop[1]))
}

func TestRecombine_OperatorErrorWrapped(t *testing.T) {
	inst := tinyInstance(t)
	boom := errors.New("boom")
	e := testEngine(t, inst, &scriptedOp{err: boom}, 2)
	e.seed(tour(t, inst, 1, 2, 4, 3), tour(t, inst, 3, 4, 2, 1))

	err := e.Recombine()
	assert.ErrorIs(t, err, boom)
}

// TestRecombine_PairwiseCollapse: duplicates collapse before pairing, so
// three distinct individuals give three pairs; children are scored and
// sorted.
func TestRecombine_PairwiseCollapse(t *testing.T) {
	inst := tinyInstance(t)
	op := &scriptedOp{}
	e := testEngine(t, inst, op, 4)
	e.cfg.Pairwise = true

	a := tour(t, inst, 1, 2, 4, 3)
	b := tour(t, inst, 3, 4, 2, 1)
	c := tour(t, inst, 1, 4, 3, 2)
	e.seed(a, b, a.Clone(), c)

	require.NoError(t, e.Recombine())
	assert.Equal(t, 3, op.calls)
	require.Len(t, e.pop, 3)
	for i := 1; i < len(e.pop); i++ {
		assert.GreaterOrEqual(t, e.pop[i-1].Fitness, e.pop[i].Fitness)
	}
}

// TestRecombine_PairwiseTruncates keeps at most PopulationSize children.
func TestRecombine_PairwiseTruncates(t *testing.T) {
	coords := make([][2]float64, 11)
	demand := make([]float64, 11)
	for i := 1; i < 11; i++ {
		coords[i] = [2]float64{float64(i % 4), float64(i / 4)}
		demand[i] = 1
	}
	inst, err := vrp.NewEuclidean(coords, demand, 100, 2)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(9))
	op, err := crossover.NewOX(inst, rng)
	require.NoError(t, err)
	e := testEngine(t, inst, op, 4)
	e.cfg.Pairwise = true
	e.rng = rng

	pop := make([]*vrp.Chromosome, 4)
	for i := range pop {
		pop[i] = inst.RandomChromosome(rng)
		inst.Stamp(pop[i])
	}
	e.seed(pop...)

	require.NoError(t, e.Recombine())
	assert.Len(t, e.pop, 4)
	for i := 1; i < len(e.pop); i++ {
		assert.GreaterOrEqual(t, e.pop[i-1].Fitness, e.pop[i].Fitness)
	}
}

func TestRecombine_RestartFlag(t *testing.T) {
	inst := tinyInstance(t)
	cases := []struct {
		name       string
		generation int
		avg, best  []float64
		script     bool
		want       bool
	}{
		{"first generation never flags", 0, []float64{-1}, []float64{-1}, false, false},
		{"no crossover", 1, []float64{-2, -1}, []float64{-2, -1}, false, true},
		{"equal average", 1, []float64{-2, -2}, []float64{-3, -1}, true, true},
		{"equal best", 1, []float64{-3, -2}, []float64{-1, -1}, true, true},
		{"progress", 1, []float64{-3, -2}, []float64{-2, -1}, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			op := &scriptedOp{}
			if tc.script {
				op.c1, op.c2 = []int{0, 1, 2, 4, 3}, []int{0, 1, 4, 2, 3}
			}
			e := testEngine(t, inst, op, 2)
			e.seed(tour(t, inst, 1, 2, 3, 4), tour(t, inst, 4, 1, 2, 3))
			e.generation = tc.generation
			e.counters.AvgFitness = tc.avg
			e.counters.BestFitness = tc.best

			require.NoError(t, e.Recombine())
			assert.Equal(t, tc.want, e.RestartPending())
		})
	}
}

// TestMaybeRestart_ConsumesFlag: a flagged restart keeps the best share,
// refills with scored unique individuals and clears the flag.
func TestMaybeRestart_ConsumesFlag(t *testing.T) {
	inst := tinyInstance(t)
	e := testEngine(t, inst, &scriptedOp{}, 4)
	e.cfg.RestartRatio = 0.5

	bestTour := tour(t, inst, 1, 2, 4, 3)
	e.seed(
		tour(t, inst, 1, 2, 3, 4),
		bestTour,
		tour(t, inst, 4, 1, 2, 3),
		tour(t, inst, 3, 2, 1, 4),
	)
	// Unevaluated individuals are scored before sorting.
	for _, c := range e.pop[:2] {
		c.Fitness = e.fitness(c)
	}

	require.NoError(t, e.MaybeRestart())
	assert.Len(t, e.timers.Restart, 1)
	assert.Equal(t, 4, len(e.pop), "no flag, no change")

	e.restart = true
	require.NoError(t, e.MaybeRestart())
	assert.False(t, e.RestartPending())
	assert.Len(t, e.timers.Restart, 2)
	require.Len(t, e.pop, 4)
	assert.True(t, e.pop[0].Equal(bestTour), "the fittest individual survives")

	keys := make(map[string]bool)
	for _, c := range e.pop {
		assert.True(t, c.Evaluated())
		assert.False(t, keys[c.Key()], "refill must not duplicate survivors")
		keys[c.Key()] = true
	}
}

func TestEvaluate_ElitismMerge(t *testing.T) {
	inst := tinyInstance(t)
	e := testEngine(t, inst, &scriptedOp{}, 2)
	e.cfg.Elitism = 1

	good := tour(t, inst, 1, 4, 2, 3) // routes [1] [2 3]
	e.seed(good, tour(t, inst, 1, 2, 3, 4))
	require.NoError(t, e.Evaluate())
	require.Len(t, e.elite, 1)
	assert.True(t, e.elite[0].Equal(good))
	assert.Equal(t, 0, e.Generation())

	// The elite survives a population that lost it.
	e.seed(tour(t, inst, 1, 2, 3, 4), tour(t, inst, 4, 3, 2, 1))
	require.NoError(t, e.Evaluate())
	require.Len(t, e.pop, 2)
	assert.True(t, e.pop[0].Equal(good))
	assert.Equal(t, e.counters.BestFitness[0], e.counters.BestFitness[1])
}

func TestMutate_ReconstructionSkipsWhenExhausted(t *testing.T) {
	inst := tinyInstance(t)
	e := testEngine(t, inst, &scriptedOp{}, 4)
	e.cfg.PMut = 1
	e.cfg.MaxAttempts = 5
	e.mutation = heuristic.NearestNeighborHeuristic{}

	// Nearest-neighbour builds of this instance depend only on the opening
	// customer: [1 2 | 3], [2 1 | 3] or [3 2 | 1]. With all three in the
	// population no unique candidate exists.
	e.seed(
		tour(t, inst, 1, 2, 4, 3),
		tour(t, inst, 2, 1, 4, 3),
		tour(t, inst, 3, 2, 4, 1),
		tour(t, inst, 1, 4, 2, 3),
	)
	before := slices.Clone(e.pop)

	require.NoError(t, e.Mutate())
	assert.Equal(t, before, e.pop)
	assert.Equal(t, []int{0, 0}, e.counters.Mutations)
}

func TestRepair_AcceptsOnlyFeasible(t *testing.T) {
	inst := tinyInstance(t)
	e := testEngine(t, inst, &scriptedOp{}, 2)

	feasible := tour(t, inst, 1, 4, 2, 3)
	e.seed(tour(t, inst, 1, 2, 3, 4), feasible)

	require.NoError(t, e.Repair())
	assert.Equal(t, []int{0, 1}, e.counters.Repairs)
	assert.True(t, inst.Feasible(e.pop[0]))
	assert.Same(t, feasible, e.pop[1])
}

// overloadedRepairer hands back a fresh chromosome that is still infeasible.
type overloadedRepairer struct{ calls int }

func (r *overloadedRepairer) Repair(c *vrp.Chromosome, inst *vrp.Instance) *vrp.Chromosome {
	r.calls++
	out, err := vrp.NewChromosome(inst.Dimension(), inst.Trucks(), []int{4, 3, 2, 1})
	if err != nil {
		return nil
	}
	inst.Stamp(out)
	return out
}

func TestRepair_KeepsUnrepairedIndividual(t *testing.T) {
	inst := tinyInstance(t)
	e := testEngine(t, inst, &scriptedOp{}, 2)
	r := &overloadedRepairer{}
	e.repairer = r

	overloaded := tour(t, inst, 1, 2, 3, 4)
	feasible := tour(t, inst, 1, 4, 2, 3)
	require.False(t, inst.Feasible(overloaded))
	e.seed(overloaded, feasible)

	require.NoError(t, e.Repair())
	assert.Equal(t, 1, r.calls, "only the infeasible individual is offered for repair")
	assert.Same(t, overloaded, e.pop[0])
	assert.Same(t, feasible, e.pop[1])
	assert.Equal(t, []int{0, 0}, e.counters.Repairs)
}
