// Package vrp holds the Capacitated Vehicle Routing Problem model shared by
// the heuristics, the crossover operators and the evolutionary engine.
//
// What lives here:
//
//   - Instance   - dimension (depot + customers), truck count, vehicle
//     capacity, per-node demand and a symmetric distance matrix
//     (gonum mat.SymDense). Node 0 is always the depot.
//   - Chromosome - one candidate solution: a tour over customers and
//     depot-return markers, its partition into routes, the stamped distance,
//     per-route load and the cached fitness.
//
// Tour encoding:
//
//	customers:  1 .. dimension-1
//	markers:    dimension .. dimension+trucks-2   (one per depot return)
//
//	dimension=5, trucks=3  ⇒  customers 1..4, markers 5 and 6
//	tour   = [3 1 5 6 2 4]
//	routes = [[3 1] [] [2 4]]
//
// Markers are always renumbered in order of appearance, so two chromosomes
// with the same route sequence have identical tours; Equal and Key rely on it.
//
// Single-tour form ([0] ++ tour) is a permutation of 0..dimension+trucks-2:
// a Hamiltonian cycle in which every marker is a copy of the depot. It is the
// representation crossover operators work on; FromSingleTour rotates such a
// cycle back to the depot and rebuilds the routes.
//
// Determinism:
//   - Random construction takes an explicit *rand.Rand; nothing in this
//     package reads a global source.
//   - Costs are rounded to 1e-9 to keep comparisons stable across platforms.
package vrp
