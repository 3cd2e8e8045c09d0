// Package heuristic - capacity repair by cheapest relocation.
//
// Contracts:
//   - the customer set is preserved; only route membership and order change;
//   - the input chromosome is never modified;
//   - the result may still be infeasible when the fleet lacks capacity.
//
// Complexity: O(moves · n²) in the worst case.
package heuristic

import (
	"math"

	"github.com/katalvlaran/vrpga/vrp"
)

// CapacityRepair relocates customers out of overloaded routes.
//
// While a route exceeds the capacity, the single relocation with the lowest
// cost change is applied: remove customer v from the overloaded route and
// insert it at the cheapest position of another route that can absorb its
// demand. When no route can take any of its customers, the overloaded route
// is left as is and the next one is tried. The result may therefore still be
// infeasible; callers decide whether to accept it.
type CapacityRepair struct{}

var _ Repairer = CapacityRepair{}

// Repair implements Repairer. c is not modified.
func (CapacityRepair) Repair(c *vrp.Chromosome, inst *vrp.Instance) *vrp.Chromosome {
	routes := make([][]int, len(c.Routes))
	for r := range c.Routes {
		routes[r] = append([]int(nil), c.Routes[r]...)
	}
	load := inst.RoutesLoad(routes)
	capacity := inst.Capacity()

	for r := range routes {
		for load[r] > capacity {
			from, to, ins, ok := bestRelocation(inst, routes, load, r)
			if !ok {
				break
			}
			v := routes[r][from]
			routes[r] = removeAt(routes[r], from)
			routes[to] = insertAt(routes[to], ins, v)
			load[r] -= inst.Demand(v)
			load[to] += inst.Demand(v)
		}
	}

	out, err := vrp.FromRoutes(inst.Dimension(), routes)
	if err != nil {
		// Relocations preserve the customer set; keep the input on the
		// unreachable path.
		return c
	}
	inst.Stamp(out)
	return out
}

// bestRelocation scans every (customer of r) × (other route with room) ×
// (insertion slot) and returns the cheapest move.
//
// Complexity: O(|r| · n).
func bestRelocation(inst *vrp.Instance, routes [][]int, load []float64, r int) (from, to, ins int, ok bool) {
	capacity := inst.Capacity()
	best := math.Inf(1)
	src := routes[r]

	for p, v := range src {
		dv := inst.Demand(v)
		if dv <= 0 {
			continue // moving it would not relieve the route
		}
		prev, next := neighbours(src, p)
		saving := inst.Distance(prev, v) + inst.Distance(v, next) - inst.Distance(prev, next)

		for s, dst := range routes {
			if s == r || load[s]+dv > capacity {
				continue
			}
			for q := 0; q <= len(dst); q++ {
				a, b := slot(dst, q)
				added := inst.Distance(a, v) + inst.Distance(v, b) - inst.Distance(a, b)
				if delta := added - saving; delta < best {
					best = delta
					from, to, ins, ok = p, s, q, true
				}
			}
		}
	}
	return from, to, ins, ok
}

// neighbours returns the nodes before and after route[p], the depot at the ends.
func neighbours(route []int, p int) (int, int) {
	prev, next := 0, 0
	if p > 0 {
		prev = route[p-1]
	}
	if p+1 < len(route) {
		next = route[p+1]
	}
	return prev, next
}

// slot returns the nodes around insertion index q (0..len(route)).
func slot(route []int, q int) (int, int) {
	a, b := 0, 0
	if q > 0 {
		a = route[q-1]
	}
	if q < len(route) {
		b = route[q]
	}
	return a, b
}

// insertAt places v at index i (0..len(s)), shifting the tail right.
func insertAt(s []int, i, v int) []int {
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}
