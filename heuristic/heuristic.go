// Package heuristic - Method selection and the Heuristic/Repairer contracts.
//
// A Method is chosen once, at configuration time; New returns the matching
// stateless implementation. All randomness arrives through the *rand.Rand
// argument, so the same seed reproduces the same builds.
package heuristic

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/vrpga/vrp"
)

var (
	// ErrBuildFailed signals a construction that could not place every
	// customer. It is an expected outcome; callers retry.
	ErrBuildFailed = errors.New("heuristic: build failed")

	// ErrUnknownMethod is returned when parsing an unrecognized method tag.
	ErrUnknownMethod = errors.New("heuristic: unknown method")
)

// Method selects a construction/mutation heuristic.
type Method int

const (
	// Random builds uniform random chromosomes.
	Random Method = iota
	// TwoOpt builds random chromosomes improved by per-route 2-opt.
	TwoOpt
	// NearestNeighbor builds capacity-aware nearest-neighbour chromosomes.
	NearestNeighbor
	// NearestNeighborTwoOpt runs NearestNeighbor followed by 2-opt.
	NearestNeighborTwoOpt
)

var methodTags = [...]string{
	Random:                "random",
	TwoOpt:                "2opt",
	NearestNeighbor:       "nn",
	NearestNeighborTwoOpt: "nn2opt",
}

// String returns the configuration tag ("random", "2opt", "nn", "nn2opt").
func (m Method) String() string {
	if m < 0 || int(m) >= len(methodTags) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodTags[m]
}

// ParseMethod maps a configuration tag to a Method.
func ParseMethod(s string) (Method, error) {
	for i, tag := range methodTags {
		if tag == s {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownMethod)
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(methodTags) {
		return nil, fmt.Errorf("%d: %w", int(m), ErrUnknownMethod)
	}
	return []byte(methodTags[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	v, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Heuristic builds and mutates chromosomes for one Method.
type Heuristic interface {
	// Method reports the variant.
	Method() Method

	// Build returns a new stamped chromosome, or ErrBuildFailed.
	Build(inst *vrp.Instance, rng *rand.Rand) (*vrp.Chromosome, error)

	// Mutate returns a stamped candidate derived from c. c is not modified.
	Mutate(c *vrp.Chromosome, inst *vrp.Instance, rng *rand.Rand) (*vrp.Chromosome, error)

	// Reconstructs reports whether Mutate ignores c and builds a fresh
	// individual; callers then enforce uniqueness against the population.
	Reconstructs() bool
}

// Repairer turns infeasible chromosomes into (hopefully) feasible ones.
type Repairer interface {
	Repair(c *vrp.Chromosome, inst *vrp.Instance) *vrp.Chromosome
}

// New returns the Heuristic for m with default 2-opt settings.
func New(m Method) (Heuristic, error) {
	switch m {
	case Random:
		return RandomHeuristic{}, nil
	case TwoOpt:
		return TwoOptHeuristic{Opts: DefaultTwoOptOptions()}, nil
	case NearestNeighbor:
		return NearestNeighborHeuristic{}, nil
	case NearestNeighborTwoOpt:
		return NearestNeighborHeuristic{Improve: true, Opts: DefaultTwoOptOptions()}, nil
	default:
		return nil, fmt.Errorf("%v: %w", m, ErrUnknownMethod)
	}
}

// RandomHeuristic builds uniform random chromosomes.
type RandomHeuristic struct{}

// Method implements Heuristic.
func (RandomHeuristic) Method() Method { return Random }

// Reconstructs implements Heuristic.
func (RandomHeuristic) Reconstructs() bool { return false }

// Build implements Heuristic.
func (RandomHeuristic) Build(inst *vrp.Instance, rng *rand.Rand) (*vrp.Chromosome, error) {
	c := inst.RandomChromosome(rng)
	inst.Stamp(c)
	return c, nil
}

// Mutate swaps two distinct tour positions.
func (RandomHeuristic) Mutate(c *vrp.Chromosome, inst *vrp.Instance, rng *rand.Rand) (*vrp.Chromosome, error) {
	n := len(c.Tour)
	tour := append([]int(nil), c.Tour...)
	if n >= 2 {
		i := rng.Intn(n)
		j := rng.Intn(n - 1)
		if j >= i {
			j++
		}
		tour[i], tour[j] = tour[j], tour[i]
	}
	out, err := vrp.NewChromosome(inst.Dimension(), inst.Trucks(), tour)
	if err != nil {
		return nil, err
	}
	inst.Stamp(out)
	return out, nil
}
