package ga

import (
	"slices"
	"time"
)

// Repair runs the repairer on every infeasible individual and keeps the
// result only when it is feasible.
func (e *Engine) Repair() error {
	if err := e.requireSize("repair"); err != nil {
		return err
	}
	start := time.Now()
	e.evaluated = false

	next := slices.Clone(e.pop)
	fixed := 0
	for i, c := range next {
		if e.inst.Feasible(c) {
			continue
		}
		r := e.repairer.Repair(c, e.inst)
		if r == nil {
			continue
		}
		if !r.HasDistance() {
			e.inst.Stamp(r)
		} else {
			e.inst.StampLoad(r)
		}
		if !e.inst.Feasible(r) {
			continue
		}
		next[i] = r
		fixed++
	}
	e.pop = next

	e.counters.Repairs = append(e.counters.Repairs, fixed)
	e.timers.Repair = append(e.timers.Repair, time.Since(start))
	return e.requireSize("repair")
}
