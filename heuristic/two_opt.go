// Package heuristic - per-route 2-opt local search.
//
// Every route is treated as the closed sequence [0 route... 0] and improved
// independently; vehicles keep their customers.
//
// Contracts:
//   - results are new, stamped chromosomes; inputs are never modified;
//   - Δ must be strictly below −Eps for a move to be applied.
//
// Complexity:
//   - One pass: O(m²) candidate checks per route of m customers.
//   - Overall: O(iter·m²) time; O(m) extra space.
package heuristic

import (
	"math/rand"

	"github.com/katalvlaran/vrpga/vrp"
)

// DefaultEps is the strict acceptance tolerance for an improving 2-opt move.
const DefaultEps = 1e-12

// TwoOptOptions tunes the per-route 2-opt search.
type TwoOptOptions struct {
	// Eps: a move is applied only when Δ < −Eps. Negative values are clamped to 0.
	Eps float64
	// MaxIters bounds accepted moves per route; 0 means run to a local optimum.
	MaxIters int
}

// DefaultTwoOptOptions returns Eps=DefaultEps and no iteration bound.
func DefaultTwoOptOptions() TwoOptOptions {
	return TwoOptOptions{Eps: DefaultEps}
}

// TwoOptHeuristic builds random chromosomes and polishes them with 2-opt.
type TwoOptHeuristic struct {
	Opts TwoOptOptions
}

// Method implements Heuristic.
func (TwoOptHeuristic) Method() Method { return TwoOpt }

// Reconstructs implements Heuristic.
func (TwoOptHeuristic) Reconstructs() bool { return false }

// Build implements Heuristic.
func (h TwoOptHeuristic) Build(inst *vrp.Instance, rng *rand.Rand) (*vrp.Chromosome, error) {
	return Improve(inst.RandomChromosome(rng), inst, h.Opts)
}

// Mutate runs 2-opt on every route of c.
func (h TwoOptHeuristic) Mutate(c *vrp.Chromosome, inst *vrp.Instance, _ *rand.Rand) (*vrp.Chromosome, error) {
	return Improve(c, inst, h.Opts)
}

// Improve returns a new stamped chromosome whose routes are 2-opt local
// optima. The route-to-vehicle assignment is unchanged.
func Improve(c *vrp.Chromosome, inst *vrp.Instance, opts TwoOptOptions) (*vrp.Chromosome, error) {
	routes := make([][]int, len(c.Routes))
	for r, route := range c.Routes {
		routes[r] = TwoOptRoute(inst, route, opts)
	}
	out, err := vrp.FromRoutes(inst.Dimension(), routes)
	if err != nil {
		return nil, err
	}
	inst.Stamp(out)
	return out, nil
}

// TwoOptRoute runs first-improvement 2-opt on the closed route [0 route... 0]
// and returns the improved customer order. The input is not modified.
//
// Notation on the closed sequence s (len m+2 for m customers):
//
//	1 ≤ i < k ≤ m, a=s[i−1], b=s[i], c=s[k], d=s[k+1]
//	Δ = d(a,c) + d(b,d) − d(a,b) − d(c,d)
//
// Complexity: O(iter·m²) time, O(m) space.
func TwoOptRoute(inst *vrp.Instance, route []int, opts TwoOptOptions) []int {
	m := len(route)
	if m < 2 {
		return append([]int(nil), route...)
	}

	s := make([]int, m+2)
	copy(s[1:], route)

	eps := opts.Eps
	if eps < 0 {
		eps = 0
	}

	var (
		accepted   int
		improved   bool
		i, k       int
		a, b, c, d int
		delta      float64
	)
	for {
		improved = false
		for i = 1; i < m; i++ {
			for k = i + 1; k <= m; k++ {
				a, b, c, d = s[i-1], s[i], s[k], s[k+1]
				delta = inst.Distance(a, c) + inst.Distance(b, d) -
					inst.Distance(a, b) - inst.Distance(c, d)
				if delta >= -eps {
					continue
				}
				reverse(s, i, k)
				accepted++
				improved = true
				break
			}
			if improved {
				break
			}
		}
		if !improved {
			break
		}
		if opts.MaxIters > 0 && accepted >= opts.MaxIters {
			break
		}
	}

	return append([]int(nil), s[1:m+1]...)
}

// reverse reverses s[i..k] in place.
func reverse(s []int, i, k int) {
	for i < k {
		s[i], s[k] = s[k], s[i]
		i++
		k--
	}
}
