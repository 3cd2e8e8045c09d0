package crossover

import (
	"errors"
	"slices"
	"time"
)

// ErrParentShape is returned when parents are not permutations of the same
// node set 0..n-1.
var ErrParentShape = errors.New("crossover: parents are not comparable single tours")

// ErrNilArgument is returned by constructors given a nil instance or rng.
var ErrNilArgument = errors.New("crossover: nil argument")

// Operator recombines two parent single tours into two children.
type Operator interface {
	Recombine(p1, p2 []int) (c1, c2 []int, err error)
	Counters() Counters
	Timers() Timers
}

// Counters accumulates over the lifetime of an operator.
type Counters struct {
	// Failed counts calls whose children both equal a parent.
	Failed int
	// ParentsSum and ChildrenSum add up the cost of every parent and child
	// tour seen; their ratio gives the overall improvement of recombination.
	ParentsSum  float64
	ChildrenSum float64

	// Partition classification, fusions and unsolved partitions. Only
	// partition-based operators fill them; OX leaves them at zero.
	Feasible1  int
	Feasible2  int
	Feasible3  int
	Infeasible int
	Fusions    int
	Unsolved   int

	// InfeasibleTours counts children that overload at least one route.
	InfeasibleTours int
}

// Partitioned reports whether any partition field is set.
func (c Counters) Partitioned() bool {
	return c.Feasible1 != 0 || c.Feasible2 != 0 || c.Feasible3 != 0 ||
		c.Infeasible != 0 || c.Fusions != 0 || c.Unsolved != 0
}

// Timers holds one duration per call and stage. Partitioning, SimpleGraph
// and Fusion stay empty for operators that do not partition.
type Timers struct {
	Partitioning   []time.Duration
	SimpleGraph    []time.Duration
	Classification []time.Duration
	Fusion         []time.Duration
	Build          []time.Duration
}

// Sum returns the total of a timer history.
func Sum(xs []time.Duration) time.Duration {
	var s time.Duration
	for _, x := range xs {
		s += x
	}
	return s
}

// Clone deep-copies the timer histories.
func (t Timers) Clone() Timers {
	return Timers{
		Partitioning:   slices.Clone(t.Partitioning),
		SimpleGraph:    slices.Clone(t.SimpleGraph),
		Classification: slices.Clone(t.Classification),
		Fusion:         slices.Clone(t.Fusion),
		Build:          slices.Clone(t.Build),
	}
}

// validateParents checks both parents are permutations of 0..n-1 with n >= 2.
func validateParents(p1, p2 []int) error {
	n := len(p1)
	if n < 2 || len(p2) != n {
		return ErrParentShape
	}
	seen := make([]uint8, n)
	var i int
	for i = 0; i < n; i++ {
		if p1[i] < 0 || p1[i] >= n || p2[i] < 0 || p2[i] >= n {
			return ErrParentShape
		}
		if seen[p1[i]]&1 != 0 || seen[p2[i]]&2 != 0 {
			return ErrParentShape
		}
		seen[p1[i]] |= 1
		seen[p2[i]] |= 2
	}
	return nil
}
