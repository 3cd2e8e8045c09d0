package ga

import (
	"slices"
	"time"
)

// Counters holds the per-generation histories. Cross, Mutations,
// Constructions, Destructions and Repairs start with a zero entry for
// generation −1.
type Counters struct {
	Cross         []int
	Mutations     []int
	Constructions []int
	Destructions  []int
	Repairs       []int

	AvgFitness  []float64
	BestFitness []float64
}

func newCounters() Counters {
	return Counters{
		Cross:         []int{0},
		Mutations:     []int{0},
		Constructions: []int{0},
		Destructions:  []int{0},
		Repairs:       []int{0},
	}
}

// Clone deep-copies every history.
func (c Counters) Clone() Counters {
	return Counters{
		Cross:         slices.Clone(c.Cross),
		Mutations:     slices.Clone(c.Mutations),
		Constructions: slices.Clone(c.Constructions),
		Destructions:  slices.Clone(c.Destructions),
		Repairs:       slices.Clone(c.Repairs),
		AvgFitness:    slices.Clone(c.AvgFitness),
		BestFitness:   slices.Clone(c.BestFitness),
	}
}

// Timers holds one wall-clock duration per phase call.
type Timers struct {
	Population    []time.Duration
	Evaluation    []time.Duration
	Selection     []time.Duration
	Recombination []time.Duration
	Mutation      []time.Duration
	Repair        []time.Duration
	Restart       []time.Duration
	Total         []time.Duration
}

// Clone deep-copies every history.
func (t Timers) Clone() Timers {
	return Timers{
		Population:    slices.Clone(t.Population),
		Evaluation:    slices.Clone(t.Evaluation),
		Selection:     slices.Clone(t.Selection),
		Recombination: slices.Clone(t.Recombination),
		Mutation:      slices.Clone(t.Mutation),
		Repair:        slices.Clone(t.Repair),
		Restart:       slices.Clone(t.Restart),
		Total:         slices.Clone(t.Total),
	}
}

func sumInts(xs []int) int {
	var s int
	for _, x := range xs {
		s += x
	}
	return s
}

func last[T any](xs []T) T {
	var zero T
	if len(xs) == 0 {
		return zero
	}
	return xs[len(xs)-1]
}
