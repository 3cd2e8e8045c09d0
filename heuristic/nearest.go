// Package heuristic - capacity-aware nearest-neighbour construction.
//
// Contracts:
//   - a built chromosome never overloads a route;
//   - ErrBuildFailed when the fleet is used up with customers left.
//
// Complexity: O(n²) per build.
package heuristic

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/vrpga/vrp"
)

// NearestNeighborHeuristic opens a route at a random customer and keeps
// driving to the nearest unvisited customer that still fits the remaining
// capacity. When nothing fits the vehicle returns to the depot and the next
// route starts. If customers remain after the last truck, the build fails
// with ErrBuildFailed; the random first customer makes a retry worthwhile.
type NearestNeighborHeuristic struct {
	// Improve runs per-route 2-opt on the result (the "nn2opt" method).
	Improve bool
	Opts    TwoOptOptions
}

// Method implements Heuristic.
func (h NearestNeighborHeuristic) Method() Method {
	if h.Improve {
		return NearestNeighborTwoOpt
	}
	return NearestNeighbor
}

// Reconstructs implements Heuristic: mutation discards the individual.
func (NearestNeighborHeuristic) Reconstructs() bool { return true }

// Mutate rebuilds from scratch; c is ignored.
func (h NearestNeighborHeuristic) Mutate(_ *vrp.Chromosome, inst *vrp.Instance, rng *rand.Rand) (*vrp.Chromosome, error) {
	return h.Build(inst, rng)
}

// Build implements Heuristic. Unused trucks get empty routes; with Improve
// set every route is then polished by TwoOptRoute.
func (h NearestNeighborHeuristic) Build(inst *vrp.Instance, rng *rand.Rand) (*vrp.Chromosome, error) {
	var (
		n        = inst.Dimension()
		capacity = inst.Capacity()
		left     = make([]int, 0, n-1) // unvisited customers
		routes   = make([][]int, 0, inst.Trucks())
	)
	for v := 1; v < n; v++ {
		left = append(left, v)
	}

	for len(left) > 0 {
		if len(routes) == inst.Trucks() {
			return nil, ErrBuildFailed
		}

		var (
			route []int
			load  float64
			cur   int
		)

		// Random opening customer among those that fit an empty vehicle.
		fits := make([]int, 0, len(left))
		for p, v := range left {
			if inst.Demand(v) <= capacity {
				fits = append(fits, p)
			}
		}
		if len(fits) == 0 {
			return nil, ErrBuildFailed
		}
		p := fits[rng.Intn(len(fits))]
		cur = left[p]
		load = inst.Demand(cur)
		route = append(route, cur)
		left = removeAt(left, p)

		for {
			best, bestDist := -1, math.Inf(1)
			for q, v := range left {
				if load+inst.Demand(v) > capacity {
					continue
				}
				if d := inst.Distance(cur, v); d < bestDist {
					best, bestDist = q, d
				}
			}
			if best < 0 {
				break
			}
			cur = left[best]
			load += inst.Demand(cur)
			route = append(route, cur)
			left = removeAt(left, best)
		}
		routes = append(routes, route)
	}

	for len(routes) < inst.Trucks() {
		routes = append(routes, []int{})
	}

	if h.Improve {
		for r := range routes {
			routes[r] = TwoOptRoute(inst, routes[r], h.Opts)
		}
	}

	c, err := vrp.FromRoutes(n, routes)
	if err != nil {
		return nil, err
	}
	inst.Stamp(c)
	return c, nil
}

// removeAt deletes s[i] preserving order. It reuses s's backing array.
func removeAt(s []int, i int) []int {
	return append(s[:i], s[i+1:]...)
}
