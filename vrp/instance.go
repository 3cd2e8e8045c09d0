// Package vrp - CVRP instance: demand, capacity, fleet and distance storage.
//
// Instance owns a gonum SymDense distance matrix and answers every cost and
// load question the solver asks about a chromosome.
//
// Design:
//   - Immutable after construction; safe to share between engines and
//     operators, including concurrently.
//   - Depot-return markers (ids >= Dimension()) are resolved to the depot on
//     every distance lookup, so callers never translate them.
//   - Accumulated costs are rounded to 1e-9 so equal route sets compare equal.
package vrp

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// diagTol is the structural tolerance for the zero-diagonal check.
const diagTol = 1e-12

// roundScale stabilizes accumulated distances to 1e-9.
const roundScale = 1e9

// Instance is an immutable CVRP instance. Node 0 is the depot; nodes
// 1..Dimension()-1 are customers.
type Instance struct {
	dimension int
	trucks    int
	capacity  float64
	demand    []float64
	dist      *mat.SymDense

	// BestKnown is an optional reference solution (e.g. from the literature)
	// printed next to the best individual found. It may be nil.
	BestKnown *Chromosome
}

// NewInstance validates its inputs and builds an Instance.
//
// Contract:
//   - dist is symmetric, dimension n >= 2, zero diagonal, finite and non-negative;
//   - len(demand) == n, every demand finite and >= 0 (demand[0] is ignored);
//   - capacity finite and > 0; trucks >= 1.
//
// The distance matrix is copied, so later writes to dist are not observed.
//
// Complexity: O(n²).
func NewInstance(dist mat.Symmetric, demand []float64, capacity float64, trucks int) (*Instance, error) {
	if dist == nil {
		return nil, ErrDimension
	}
	n := dist.SymmetricDim()
	if n < 2 {
		return nil, fmt.Errorf("dimension %d: %w", n, ErrDimension)
	}
	if len(demand) != n {
		return nil, fmt.Errorf("demand length %d for dimension %d: %w", len(demand), n, ErrDimension)
	}
	if trucks < 1 {
		return nil, ErrTrucks
	}
	if capacity <= 0 || math.IsNaN(capacity) || math.IsInf(capacity, 0) {
		return nil, ErrCapacity
	}

	var (
		i, j int
		v    float64
	)
	for i = 0; i < n; i++ {
		v = demand[i]
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("demand[%d]=%v: %w", i, v, ErrDemand)
		}
	}

	cp := mat.NewSymDense(n, nil)
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			v = dist.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return nil, fmt.Errorf("d(%d,%d)=%v: %w", i, j, v, ErrDistance)
			}
			if i == j && math.Abs(v) > diagTol {
				return nil, fmt.Errorf("d(%d,%d)=%v: %w", i, j, v, ErrDistance)
			}
			cp.SetSym(i, j, v)
		}
	}

	d := make([]float64, n)
	copy(d, demand)
	d[0] = 0 // the depot carries no demand

	return &Instance{
		dimension: n,
		trucks:    trucks,
		capacity:  capacity,
		demand:    d,
		dist:      cp,
	}, nil
}

// NewEuclidean builds an Instance from planar coordinates using Euclidean
// distances. coords[0] is the depot.
//
// Contract: as NewInstance; len(coords) == len(demand).
//
// Complexity: O(n²) time and space.
func NewEuclidean(coords [][2]float64, demand []float64, capacity float64, trucks int) (*Instance, error) {
	n := len(coords)
	if n < 2 {
		return nil, fmt.Errorf("dimension %d: %w", n, ErrDimension)
	}
	d := mat.NewSymDense(n, nil)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d.SetSym(i, j, math.Hypot(coords[i][0]-coords[j][0], coords[i][1]-coords[j][1]))
		}
	}
	return NewInstance(d, demand, capacity, trucks)
}

// Dimension is the node count including the depot.
func (in *Instance) Dimension() int { return in.dimension }

// Trucks is the number of vehicles (routes per chromosome).
func (in *Instance) Trucks() int { return in.trucks }

// Capacity is the per-vehicle capacity.
func (in *Instance) Capacity() float64 { return in.capacity }

// Customers is the number of customer nodes (Dimension()-1).
func (in *Instance) Customers() int { return in.dimension - 1 }

// Demand returns the demand of node v; markers and the depot demand nothing.
func (in *Instance) Demand(v int) float64 {
	if v <= 0 || v >= in.dimension {
		return 0
	}
	return in.demand[v]
}

// node maps a depot-return marker to the depot; other ids pass through.
func (in *Instance) node(v int) int {
	if v >= in.dimension {
		return 0
	}
	return v
}

// Distance returns the edge cost between u and v. Markers count as the depot.
func (in *Instance) Distance(u, v int) float64 {
	return in.dist.At(in.node(u), in.node(v))
}

// TourDistance is the total cost of a tour: every route is closed through the
// depot, so a tour [a b | c] costs d(0,a)+d(a,b)+d(b,0)+d(0,c)+d(c,0).
//
// Complexity: O(len(tour)).
func (in *Instance) TourDistance(tour []int) float64 {
	var (
		sum  float64
		prev int
		u    int
		i    int
	)
	for i = 0; i < len(tour); i++ {
		u = in.node(tour[i])
		sum += in.dist.At(prev, u)
		prev = u
	}
	sum += in.dist.At(prev, 0)
	return round1e9(sum)
}

// SingleTourDistance is the cost of a single-tour cycle (see package doc).
// It equals TourDistance of the chromosome the cycle encodes.
func (in *Instance) SingleTourDistance(single []int) float64 {
	if len(single) == 0 {
		return 0
	}
	var (
		sum float64
		i   int
		n   = len(single)
	)
	for i = 0; i < n; i++ {
		sum += in.Distance(single[i], single[(i+1)%n])
	}
	return round1e9(sum)
}

// TourDemand is the summed demand of an arbitrary node list. The depot and
// markers contribute nothing, so it accepts routes and whole tours alike.
//
// Complexity: O(len(nodes)).
func (in *Instance) TourDemand(nodes []int) float64 {
	var sum float64
	for _, v := range nodes {
		sum += in.Demand(v)
	}
	return sum
}

// RoutesLoad returns the total demand of each route, indexed by route id.
//
// Contract:
//   - len(result) == len(routes); an empty route has load 0;
//   - routes is read only.
//
// Complexity: O(total route length).
func (in *Instance) RoutesLoad(routes [][]int) []float64 {
	load := make([]float64, len(routes))
	for r, route := range routes {
		load[r] = in.TourDemand(route)
	}
	return load
}

// FeasibleLoad reports whether every route load fits the vehicle capacity.
func (in *Instance) FeasibleLoad(load []float64) bool {
	for _, l := range load {
		if l > in.capacity {
			return false
		}
	}
	return true
}

// Feasible reports whether c respects the capacity on every route. The
// stamped Load is used when present; otherwise it is computed from Routes.
func (in *Instance) Feasible(c *Chromosome) bool {
	if c.Load != nil {
		return in.FeasibleLoad(c.Load)
	}
	return in.FeasibleLoad(in.RoutesLoad(c.Routes))
}

// Stamp sets c.Distance and c.Load from its tour and routes. Every
// chromosome must be stamped before it enters a population; stamping is
// idempotent.
//
// Complexity: O(len(c.Tour)).
func (in *Instance) Stamp(c *Chromosome) {
	c.Distance = in.TourDistance(c.Tour)
	c.Load = in.RoutesLoad(c.Routes)
}

// StampLoad recomputes c.Load only, for callers that trust an existing
// Distance.
func (in *Instance) StampLoad(c *Chromosome) {
	c.Load = in.RoutesLoad(c.Routes)
}

// RandomChromosome draws a uniformly random chromosome shaped for this instance.
func (in *Instance) RandomChromosome(rng *rand.Rand) *Chromosome {
	// Shape is valid by construction of the Instance; the error is unreachable.
	c, _ := RandomChromosome(in.dimension, in.trucks, rng)
	return c
}

// round1e9 rounds x to nine decimals.
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}
