package crossover

import (
	"math/rand"
	"time"

	"github.com/katalvlaran/vrpga/vrp"
)

// OX is the classic order crossover: child 1 copies a random segment [a,b)
// of parent 1 in place and fills the remaining positions, starting at b and
// wrapping, with the genes of parent 2 in their cyclic order from b. Child 2
// swaps the parents' roles.
//
// OX is stateful (counters, timers, scratch buffers) and not safe for
// concurrent use.
type OX struct {
	inst *vrp.Instance
	rng  *rand.Rand

	mark  []int
	stamp int

	counters Counters
	timers   Timers
}

var _ Operator = (*OX)(nil)

// NewOX returns an OX bound to inst for cost bookkeeping. rng must be non-nil.
func NewOX(inst *vrp.Instance, rng *rand.Rand) (*OX, error) {
	if inst == nil || rng == nil {
		return nil, ErrNilArgument
	}
	return &OX{inst: inst, rng: rng}, nil
}

// Counters returns a snapshot of the running counters.
func (x *OX) Counters() Counters { return x.counters }

// Timers returns a copy of the stage timers.
func (x *OX) Timers() Timers { return x.timers.Clone() }

// Recombine implements Operator.
//
// Complexity: O(n) time, O(n) space.
func (x *OX) Recombine(p1, p2 []int) ([]int, []int, error) {
	if err := validateParents(p1, p2); err != nil {
		return nil, nil, err
	}
	n := len(p1)
	if len(x.mark) < n {
		x.mark = make([]int, n)
		x.stamp = 0
	}

	start := time.Now()
	a, b := x.segment(n)
	c1 := x.fill(p1, p2, a, b)
	c2 := x.fill(p2, p1, a, b)
	x.timers.Build = append(x.timers.Build, time.Since(start))

	start = time.Now()
	x.classify(p1, p2, c1, c2)
	x.timers.Classification = append(x.timers.Classification, time.Since(start))

	return c1, c2, nil
}

// segment draws a non-empty [a,b).
func (x *OX) segment(n int) (int, int) {
	a := x.rng.Intn(n)
	b := x.rng.Intn(n)
	if a > b {
		a, b = b, a
	}
	if a == b {
		b = (a + 1) % n
		if a > b {
			a, b = b, a
		}
	}
	return a, b
}

// fill builds one child: donor's segment in place, the rest from other.
func (x *OX) fill(donor, other []int, a, b int) []int {
	n := len(donor)
	child := make([]int, n)
	for i := range child {
		child[i] = -1
	}

	x.stamp++
	cur := x.stamp
	for i := a; i < b; i++ {
		child[i] = donor[i]
		x.mark[donor[i]] = cur
	}

	pos := b % n
	var gene int
	for i := 0; i < n; i++ {
		gene = other[(b+i)%n]
		if x.mark[gene] == cur {
			continue
		}
		for child[pos] != -1 {
			pos = (pos + 1) % n
		}
		child[pos] = gene
		x.mark[gene] = cur
	}
	return child
}

// classify updates cost sums, failures and infeasible-tour counts.
func (x *OX) classify(p1, p2, c1, c2 []int) {
	dim := x.inst.Dimension()
	x.counters.ParentsSum += x.inst.SingleTourDistance(p1) + x.inst.SingleTourDistance(p2)
	x.counters.ChildrenSum += x.inst.SingleTourDistance(c1) + x.inst.SingleTourDistance(c2)

	keys := make([]string, 0, 4)
	for _, s := range [][]int{p1, p2, c1, c2} {
		c, err := vrp.FromSingleTour(s, dim)
		if err != nil {
			// Tours that do not match the instance are not classified.
			return
		}
		keys = append(keys, c.Key())
		if len(keys) > 2 && !x.inst.FeasibleLoad(x.inst.RoutesLoad(c.Routes)) {
			x.counters.InfeasibleTours++
		}
	}
	same := func(k string) bool { return k == keys[0] || k == keys[1] }
	if same(keys[2]) && same(keys[3]) {
		x.counters.Failed++
	}
}
