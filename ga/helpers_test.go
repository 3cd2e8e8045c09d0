package ga_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/vrpga/crossover"
	"github.com/katalvlaran/vrpga/ga"
	"github.com/katalvlaran/vrpga/heuristic"
	"github.com/katalvlaran/vrpga/vrp"
)

const seedDet = int64(7)

// ringInstance spreads n-1 unit-demand customers on a circle around the
// depot.
func ringInstance(t testing.TB, n int, capacity float64, trucks int) *vrp.Instance {
	t.Helper()
	coords := make([][2]float64, n)
	demand := make([]float64, n)
	for i := 1; i < n; i++ {
		th := 2 * math.Pi * float64(i) / float64(n-1)
		coords[i] = [2]float64{10 * math.Cos(th), 10 * math.Sin(th)}
		demand[i] = 1
	}
	inst, err := vrp.NewEuclidean(coords, demand, capacity, trucks)
	require.NoError(t, err)
	return inst
}

// scenarioConfig: population 20, elitism 2, tournament 3, policy a.
func scenarioConfig() ga.Config {
	cfg := ga.DefaultConfig()
	cfg.PopulationSize = 20
	cfg.Elitism = 2
	cfg.K = 3
	cfg.Policy = ga.PolicyA
	cfg.Construction = heuristic.NearestNeighbor
	cfg.Mutation = heuristic.TwoOpt
	cfg.PCross = 0.9
	cfg.PMut = 0.2
	cfg.Seed = seedDet
	return cfg
}

// newEngine wires an OX operator and the engine on one RNG stream.
func newEngine(t testing.TB, inst *vrp.Instance, cfg ga.Config, opts ...ga.Option) *ga.Engine {
	t.Helper()
	rng := rand.New(rand.NewSource(cfg.Seed))
	op, err := crossover.NewOX(inst, rng)
	require.NoError(t, err)
	e, err := ga.New(inst, op, cfg, append([]ga.Option{ga.WithRand(rng)}, opts...)...)
	require.NoError(t, err)
	return e
}

func requireUnique(t *testing.T, pop []*vrp.Chromosome) {
	t.Helper()
	seen := make(map[string]bool, len(pop))
	for _, c := range pop {
		require.False(t, seen[c.Key()], "duplicate %s", c)
		seen[c.Key()] = true
	}
}
