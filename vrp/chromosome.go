// Package vrp - Chromosome: tour encoding, route partition and the
// single-tour form.
//
// Encoding:
//
//	Tour      [3 1 5 2 4]   customers 1..4, marker 5 (dimension 5, 2 trucks)
//	Routes    [[3 1] [2 4]]
//	Single    [0 3 1 5 2 4] a cycle in which 0 and 5 are both depot visits
//
// Markers are renumbered in order of appearance, so two chromosomes with the
// same route sequence always share Tour and Key.
package vrp

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"strconv"
	"strings"
)

// Chromosome is one candidate CVRP solution.
//
// Invariants (enforced by every constructor in this package):
//   - Tour holds each customer 1..dim-1 once and trucks-1 markers numbered
//     dim.. in order of appearance;
//   - Routes is Tour split at the markers (len(Routes) == trucks);
//   - Distance is NaN and Load nil until stamped by an Instance;
//   - Fitness is NaN until scored.
//
// A Chromosome is treated as a value: heuristics and operators return new
// chromosomes instead of editing Tour or Routes in place.
type Chromosome struct {
	Tour     []int
	Routes   [][]int
	Distance float64
	Load     []float64
	Fitness  float64

	dimension int
}

// NewChromosome validates tour against the (dimension, trucks) shape,
// renumbers its markers and derives the routes. The input slice is copied.
//
// Complexity: O(n) time and space, n = dimension+trucks-2.
func NewChromosome(dimension, trucks int, tour []int) (*Chromosome, error) {
	if err := validateShape(dimension, trucks); err != nil {
		return nil, err
	}
	n := dimension + trucks - 2
	if len(tour) != n {
		return nil, fmt.Errorf("tour length %d, want %d: %w", len(tour), n, ErrTour)
	}

	seen := make([]bool, n+1)
	var (
		i int
		v int
	)
	for i = 0; i < n; i++ {
		v = tour[i]
		if v < 1 || v > n {
			return nil, fmt.Errorf("node %d out of range [1,%d]: %w", v, n, ErrTour)
		}
		if seen[v] {
			return nil, fmt.Errorf("node %d repeated: %w", v, ErrTour)
		}
		seen[v] = true
	}

	return build(dimension, slices.Clone(tour)), nil
}

// RandomChromosome returns a uniformly shuffled chromosome. Customers and
// markers are shuffled together, so empty routes are possible.
//
// Complexity: O(n) time and space.
func RandomChromosome(dimension, trucks int, rng *rand.Rand) (*Chromosome, error) {
	if err := validateShape(dimension, trucks); err != nil {
		return nil, err
	}
	n := dimension + trucks - 2
	tour := make([]int, n)
	var i, j int
	for i = 0; i < n; i++ {
		tour[i] = i + 1
	}
	// Fisher–Yates.
	for i = n - 1; i > 0; i-- {
		j = rng.Intn(i + 1)
		tour[i], tour[j] = tour[j], tour[i]
	}
	return build(dimension, tour), nil
}

// FromRoutes joins routes with markers. Every customer of the instance must
// appear exactly once across routes; empty routes are allowed.
//
// Contract:
//   - len(routes) >= 1 becomes the truck count;
//   - routes is copied, never retained.
//
// Complexity: O(n).
func FromRoutes(dimension int, routes [][]int) (*Chromosome, error) {
	trucks := len(routes)
	if err := validateShape(dimension, trucks); err != nil {
		return nil, err
	}
	tour := make([]int, 0, dimension+trucks-2)
	marker := dimension
	for r, route := range routes {
		if r > 0 {
			tour = append(tour, marker)
			marker++
		}
		for _, v := range route {
			if v < 1 || v >= dimension {
				return nil, fmt.Errorf("route %d node %d: %w", r, v, ErrTour)
			}
			tour = append(tour, v)
		}
	}
	return NewChromosome(dimension, trucks, tour)
}

// FromSingleTour rebuilds a chromosome from its single-tour form: a
// permutation of 0..dimension+trucks-2 read as a cycle. The truck count is
// inferred from the length. The cycle is rotated so the depot 0 comes first,
// then the depot is dropped.
//
// Contract: FromSingleTour(c.SingleTour(), c.Dimension()) equals c.
//
// Complexity: O(n).
func FromSingleTour(single []int, dimension int) (*Chromosome, error) {
	trucks := len(single) - dimension + 1
	if err := validateShape(dimension, trucks); err != nil {
		return nil, err
	}
	pivot := slices.Index(single, 0)
	if pivot < 0 {
		return nil, fmt.Errorf("depot missing from single tour: %w", ErrTour)
	}
	n := len(single)
	tour := make([]int, 0, n-1)
	var i int
	for i = 1; i < n; i++ {
		tour = append(tour, single[(pivot+i)%n])
	}
	return NewChromosome(dimension, trucks, tour)
}

// SingleTour returns [0] ++ Tour, the representation crossover works on.
func (c *Chromosome) SingleTour() []int {
	out := make([]int, 0, len(c.Tour)+1)
	out = append(out, 0)
	return append(out, c.Tour...)
}

// Dimension is the node count (depot included) of the instance c belongs to.
func (c *Chromosome) Dimension() int { return c.dimension }

// Trucks is the number of routes.
func (c *Chromosome) Trucks() int { return len(c.Routes) }

// Equal reports value equality: same tour sequence.
func (c *Chromosome) Equal(o *Chromosome) bool {
	if c == o {
		return true
	}
	if c == nil || o == nil {
		return false
	}
	return slices.Equal(c.Tour, o.Tour)
}

// Key is a hashable fingerprint of the tour; equal chromosomes share a key.
func (c *Chromosome) Key() string {
	var b strings.Builder
	b.Grow(len(c.Tour) * 4)
	buf := make([]byte, 0, 8)
	for i, v := range c.Tour {
		if i > 0 {
			b.WriteByte(',')
		}
		buf = strconv.AppendInt(buf[:0], int64(v), 10)
		b.Write(buf)
	}
	return b.String()
}

// HasDistance reports whether the distance has been stamped.
func (c *Chromosome) HasDistance() bool { return !math.IsNaN(c.Distance) }

// Evaluated reports whether a fitness has been assigned.
func (c *Chromosome) Evaluated() bool { return !math.IsNaN(c.Fitness) }

// Clone returns a deep copy.
func (c *Chromosome) Clone() *Chromosome {
	out := &Chromosome{
		Tour:      slices.Clone(c.Tour),
		Routes:    make([][]int, len(c.Routes)),
		Distance:  c.Distance,
		Load:      slices.Clone(c.Load),
		Fitness:   c.Fitness,
		dimension: c.dimension,
	}
	for r := range c.Routes {
		out.Routes[r] = slices.Clone(c.Routes[r])
	}
	return out
}

// String renders routes, e.g. "[3 1 | - | 2 4]".
func (c *Chromosome) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for r, route := range c.Routes {
		if r > 0 {
			b.WriteString(" | ")
		}
		if len(route) == 0 {
			b.WriteByte('-')
			continue
		}
		for i, v := range route {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.Itoa(v))
		}
	}
	b.WriteByte(']')
	return b.String()
}

func validateShape(dimension, trucks int) error {
	if dimension < 2 {
		return fmt.Errorf("dimension %d: %w", dimension, ErrDimension)
	}
	if trucks < 1 {
		return ErrTrucks
	}
	return nil
}

// build renumbers markers in place and derives routes. tour is owned.
func build(dimension int, tour []int) *Chromosome {
	routes := make([][]int, 1, 4)
	routes[0] = []int{}
	next := dimension
	for i, v := range tour {
		if v >= dimension {
			tour[i] = next
			next++
			routes = append(routes, []int{})
			continue
		}
		routes[len(routes)-1] = append(routes[len(routes)-1], v)
	}
	return &Chromosome{
		Tour:      tour,
		Routes:    routes,
		Distance:  math.NaN(),
		Fitness:   math.NaN(),
		dimension: dimension,
	}
}
