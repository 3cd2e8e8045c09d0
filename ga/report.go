package ga

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/katalvlaran/vrpga/crossover"
	"github.com/katalvlaran/vrpga/vrp"
)

// Summary aggregates a run for the final report.
type Summary struct {
	RunID      string
	Generation int

	Cross         int
	Constructions int
	Destructions  int
	Repairs       int
	Mutations     int

	// Crossover holds the operator's own counters and timers.
	Crossover       crossover.Counters
	CrossoverTimers crossover.Timers

	Total         time.Duration
	Population    time.Duration
	Evaluation    time.Duration
	Selection     time.Duration
	Recombination time.Duration
	Mutation      time.Duration
	Repair        time.Duration
	Restart       time.Duration

	Capacity  float64
	Best      *vrp.Chromosome
	BestKnown *vrp.Chromosome
}

// HasImprovement reports whether Improvement is defined.
func (s Summary) HasImprovement() bool { return s.Crossover.ParentsSum != 0 }

// Improvement is the percentage by which children undercut their parents in
// total cost. It is 0 when HasImprovement is false.
func (s Summary) Improvement() float64 {
	if !s.HasImprovement() {
		return 0
	}
	return (s.Crossover.ParentsSum - s.Crossover.ChildrenSum) / s.Crossover.ParentsSum * 100
}

// Report appends the time elapsed since Initialize, or since the previous
// Report, to Timers.Total and summarizes the run. Summary.Total is therefore
// the wall time from Initialize to the latest Report.
func (e *Engine) Report() Summary {
	if !e.start.IsZero() {
		from := e.start
		if !e.reported.IsZero() {
			from = e.reported
		}
		now := time.Now()
		e.timers.Total = append(e.timers.Total, now.Sub(from))
		e.reported = now
	}
	t := &e.timers
	s := Summary{
		RunID:           e.runID,
		Generation:      e.generation,
		Cross:           sumInts(e.counters.Cross),
		Constructions:   sumInts(e.counters.Constructions),
		Destructions:    sumInts(e.counters.Destructions),
		Repairs:         sumInts(e.counters.Repairs),
		Mutations:       sumInts(e.counters.Mutations),
		Crossover:       e.xop.Counters(),
		CrossoverTimers: e.xop.Timers(),
		Total:           crossover.Sum(t.Total),
		Population:      crossover.Sum(t.Population),
		Evaluation:      crossover.Sum(t.Evaluation),
		Selection:       crossover.Sum(t.Selection),
		Recombination:   crossover.Sum(t.Recombination),
		Mutation:        crossover.Sum(t.Mutation),
		Repair:          crossover.Sum(t.Repair),
		Restart:         crossover.Sum(t.Restart),
		Capacity:        e.inst.Capacity(),
		BestKnown:       e.inst.BestKnown,
	}
	if e.best != nil {
		s.Best = e.best.Clone()
	}
	return s
}

// WriteTo renders the human-readable report.
func (s Summary) WriteTo(w io.Writer) (int64, error) {
	var b bytes.Buffer
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}
	xc, xt := s.Crossover, s.CrossoverTimers

	line("----------------------- Statistics ------------------------")
	line("Total crossover: %d", s.Cross)
	line("Constructions: %d", s.Constructions)
	line("Destructions: %d", s.Destructions)
	line("Repairs: %d", s.Repairs)
	line("Failed: %d", xc.Failed)
	if s.HasImprovement() {
		line("Overall improvement: %f", s.Improvement())
	}
	if xc.Partitioned() {
		line("Partitions")
		line(" Feasible type 1: %d", xc.Feasible1)
		line(" Feasible type 2: %d", xc.Feasible2)
		line(" Feasible type 3: %d", xc.Feasible3)
		line(" Infeasible: %d", xc.Infeasible)
		line(" Fusions: %d", xc.Fusions)
		line(" Unsolved: %d", xc.Unsolved)
	}
	line("Infeasible tours: %d", xc.InfeasibleTours)
	line("Total mutations: %d", s.Mutations)
	line("--------------------- Time statistics ---------------------")
	line("Total execution time: %s", s.Total)
	line("Initial population: %s", s.Population)
	line("Evaluation: %s", s.Evaluation)
	line("Selection: %s", s.Selection)
	line("Recombination: %s", s.Recombination)
	stage := func(name string, xs []time.Duration) {
		if len(xs) > 0 {
			line(" %s: %s", name, crossover.Sum(xs))
		}
	}
	stage("Partitioning", xt.Partitioning)
	stage("Simplified graph", xt.SimpleGraph)
	stage("Classification", xt.Classification)
	stage("Fusion", xt.Fusion)
	stage("Build", xt.Build)
	line("Mutation: %s", s.Mutation)
	line("Repair: %s", s.Repair)
	line("Population restart: %s", s.Restart)
	line("Capacity: %g", s.Capacity)
	if s.BestKnown != nil {
		line("---------------- Best known solution ----------------------")
		writeSolution(line, s.BestKnown)
	}
	if s.Best != nil {
		line("------------------- Best individual found -----------------")
		writeSolution(line, s.Best)
	}
	line("-----------------------------------------------------------")

	return b.WriteTo(w)
}

func writeSolution(line func(string, ...any), c *vrp.Chromosome) {
	line("Tour: %v", c.Tour)
	line("Routes: %s", c)
	line("Distance: %f", c.Distance)
	line("Load: %v", c.Load)
}

// LogReport emits the Report summary as one structured record.
func (e *Engine) LogReport() Summary {
	s := e.Report()
	attrs := []any{
		slog.Int("generation", s.Generation),
		slog.Group("totals",
			slog.Int("cross", s.Cross),
			slog.Int("constructions", s.Constructions),
			slog.Int("destructions", s.Destructions),
			slog.Int("repairs", s.Repairs),
			slog.Int("mutations", s.Mutations),
			slog.Int("failed", s.Crossover.Failed),
			slog.Int("infeasible_tours", s.Crossover.InfeasibleTours),
		),
		slog.Group("time",
			slog.Duration("total", s.Total),
			slog.Duration("population", s.Population),
			slog.Duration("evaluation", s.Evaluation),
			slog.Duration("selection", s.Selection),
			slog.Duration("recombination", s.Recombination),
			slog.Duration("mutation", s.Mutation),
			slog.Duration("repair", s.Repair),
			slog.Duration("restart", s.Restart),
		),
		slog.Float64("capacity", s.Capacity),
	}
	if s.HasImprovement() {
		attrs = append(attrs, slog.Float64("improvement", s.Improvement()))
	}
	if s.BestKnown != nil {
		attrs = append(attrs, slog.Group("best_known",
			slog.Float64("distance", s.BestKnown.Distance),
			slog.String("routes", s.BestKnown.String())))
	}
	if s.Best != nil {
		attrs = append(attrs, slog.Group("best",
			slog.Float64("distance", s.Best.Distance),
			slog.Float64("fitness", s.Best.Fitness),
			slog.String("routes", s.Best.String()),
			slog.Any("load", s.Best.Load)))
	}
	e.logger.Info("run report", attrs...)
	return s
}

// LogGeneration emits the latest per-generation statistics.
func (e *Engine) LogGeneration() {
	c := &e.counters
	e.logger.Info("generation",
		slog.Int("t", e.generation),
		slog.Int("cross", last(c.Cross)),
		slog.Int("constructions", last(c.Constructions)),
		slog.Int("destructions", last(c.Destructions)),
		slog.Int("repairs", last(c.Repairs)),
		slog.Int("mutations", last(c.Mutations)),
		slog.Float64("avg", last(c.AvgFitness)),
		slog.Float64("best", last(c.BestFitness)),
		slog.Bool("restart", e.restart),
	)
}
