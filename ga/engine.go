package ga

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/vrpga/crossover"
	"github.com/katalvlaran/vrpga/heuristic"
	"github.com/katalvlaran/vrpga/vrp"
)

// Engine runs the evolutionary search on one instance.
type Engine struct {
	cfg  Config
	inst *vrp.Instance
	xop  crossover.Operator

	random       heuristic.Heuristic
	construction heuristic.Heuristic
	mutation     heuristic.Heuristic
	repairer     heuristic.Repairer

	rng     *rand.Rand
	logger  *slog.Logger
	reg     prometheus.Registerer
	metrics *metrics
	runID   string

	pop         []*vrp.Chromosome
	elite       []*vrp.Chromosome
	best        *vrp.Chromosome
	generation  int
	restart     bool
	initialized bool
	evaluated   bool // population scored and unchanged since
	start       time.Time
	reported    time.Time

	counters Counters
	timers   Timers
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger routes generation lines and reports to l. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRand replaces the RNG derived from Config.Seed.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithRegisterer publishes per-generation metrics on reg. The collectors
// carry a run_id label, so engines may share a registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(e *Engine) {
		e.reg = reg
	}
}

// WithRepairer replaces the default heuristic.CapacityRepair.
func WithRepairer(r heuristic.Repairer) Option {
	return func(e *Engine) {
		if r != nil {
			e.repairer = r
		}
	}
}

// New validates cfg and wires the heuristics it names.
func New(inst *vrp.Instance, xop crossover.Operator, cfg Config, opts ...Option) (*Engine, error) {
	if inst == nil {
		return nil, fmt.Errorf("nil instance: %w", ErrConfig)
	}
	if xop == nil {
		return nil, fmt.Errorf("nil crossover operator: %w", ErrConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	construction, err := heuristic.New(cfg.Construction)
	if err != nil {
		return nil, fmt.Errorf("construction: %v: %w", err, ErrConfig)
	}
	mutation, err := heuristic.New(cfg.Mutation)
	if err != nil {
		return nil, fmt.Errorf("mutation: %v: %w", err, ErrConfig)
	}

	e := &Engine{
		cfg:          cfg,
		inst:         inst,
		xop:          xop,
		random:       heuristic.RandomHeuristic{},
		construction: construction,
		mutation:     mutation,
		repairer:     heuristic.CapacityRepair{},
		rng:          rngFromSeed(cfg.Seed),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		runID:        uuid.NewString(),
		generation:   -1,
		counters:     newCounters(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(slog.String("run_id", e.runID))
	if e.metrics, err = newMetrics(e.reg, e.runID); err != nil {
		return nil, err
	}
	return e, nil
}

// RunID identifies this run in log records.
func (e *Engine) RunID() string { return e.runID }

// Config returns the validated configuration.
func (e *Engine) Config() Config { return e.cfg }

// Generation is the number of completed evaluations minus one.
func (e *Engine) Generation() int { return e.generation }

// AvgFitness is the average fitness of the last evaluation (0 before any).
func (e *Engine) AvgFitness() float64 { return last(e.counters.AvgFitness) }

// BestSolution returns the best individual seen, or nil before Evaluate.
func (e *Engine) BestSolution() *vrp.Chromosome { return e.best }

// Population returns the current individuals. The slice is a copy; the
// chromosomes are shared and must be treated as read-only.
func (e *Engine) Population() []*vrp.Chromosome { return slices.Clone(e.pop) }

// Elite returns the current elite set (shared chromosomes, copied slice).
func (e *Engine) Elite() []*vrp.Chromosome { return slices.Clone(e.elite) }

// RestartPending reports whether the next MaybeRestart will act.
func (e *Engine) RestartPending() bool { return e.restart }

// Counters returns a copy of the statistics histories.
func (e *Engine) Counters() Counters { return e.counters.Clone() }

// Timers returns a copy of the phase timers.
func (e *Engine) Timers() Timers { return e.timers.Clone() }

// Step runs one generation. The generation line is logged before the
// restart phase so it still shows a pending restart.
//
// Evaluation is skipped when the population was already scored and has not
// changed since, as after Run's closing evaluation.
func (e *Engine) Step() error {
	if !e.initialized {
		return fmt.Errorf("step before initialize: %w", ErrInvariantViolation)
	}
	if !e.evaluated {
		if err := e.Evaluate(); err != nil {
			return fmt.Errorf("generation %d: evaluate: %w", e.generation, err)
		}
	}
	phases := []struct {
		name string
		run  func() error
	}{
		{"select", e.Select},
		{"recombine", e.Recombine},
		{"repopulate", e.Repopulate},
		{"mutate", e.Mutate},
		{"repair", e.Repair},
	}
	for _, p := range phases {
		if err := p.run(); err != nil {
			return fmt.Errorf("generation %d: %s: %w", e.generation, p.name, err)
		}
	}
	e.metrics.observeGeneration(e.generation, &e.counters)
	e.LogGeneration()

	if err := e.MaybeRestart(); err != nil {
		return fmt.Errorf("generation %d: restart: %w", e.generation, err)
	}
	return nil
}

// Run initializes the population when needed, runs up to generations steps
// and finishes with one evaluation so BestSolution covers the last
// population. Cancellation is checked between generations. Run may be called
// again to continue the search; the closing evaluation then opens the next
// generation.
func (e *Engine) Run(ctx context.Context, generations int) error {
	if !e.initialized {
		if err := e.Initialize(); err != nil {
			return err
		}
	}
	for i := 0; i < generations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Step(); err != nil {
			return err
		}
	}
	if e.evaluated {
		return nil
	}
	return e.Evaluate()
}

func (e *Engine) requireSize(phase string) error {
	if !e.initialized {
		return fmt.Errorf("%s before initialize: %w", phase, ErrInvariantViolation)
	}
	if len(e.pop) != e.cfg.PopulationSize {
		return fmt.Errorf("%s: population size %d, want %d: %w",
			phase, len(e.pop), e.cfg.PopulationSize, ErrInvariantViolation)
	}
	return nil
}
