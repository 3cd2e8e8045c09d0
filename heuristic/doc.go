// Package heuristic provides the construction, mutation and repair
// heuristics consumed by the evolutionary engine.
//
// Construction/mutation variants (selected once through Method):
//
//	random  - uniform random chromosome; mutation swaps two tour positions.
//	2opt    - random chromosome improved by per-route 2-opt; mutation runs
//	          the same 2-opt on the individual.
//	nn      - randomized nearest-neighbour construction that respects the
//	          vehicle capacity; mutation rebuilds from scratch.
//	nn2opt  - nn followed by per-route 2-opt; mutation rebuilds.
//
// Repair (CapacityRepair) moves customers out of overloaded routes into the
// cheapest insertion slot of a route with spare capacity.
//
// Every chromosome returned by this package is distance- and load-stamped.
//
// 2-opt policy mirrors a classic first-improvement search on a closed tour:
// segment [i..k] of [0 r... 0] is reversed when
// Δ = d(a,c) + d(b,d) − d(a,b) − d(c,d) < −Eps, and the scan restarts after
// every accepted move.
package heuristic
