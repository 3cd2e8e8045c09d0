// Package ga is the evolutionary search engine of the CVRP solver.
//
// An Engine owns one run: a population of exactly Config.PopulationSize
// chromosomes, an optional elite set, the best solution seen so far and the
// per-generation statistics. A generation (Engine.Step) is:
//
//	Evaluate → Select → Recombine → Repopulate → Mutate → Repair → MaybeRestart
//
// Evaluate scores the population with the configured FitnessPolicy, merges
// and refreshes the elite set, updates the best solution (strict improvement
// only) and advances the generation counter, which starts at −1.
//
// Select runs Config.PopulationSize k-tournaments without replacement.
//
// Recombine pairs the population sequentially, or in pairwise mode every
// unordered pair of distinct individuals, and calls the crossover.Operator
// with probability Config.PCross. Children are deduplicated by value. It also
// raises the restart flag when the search stagnates (no crossover, or equal
// average or best fitness over the last two generations).
//
// Repopulate, Initialize and MaybeRestart insert freshly constructed
// individuals that are unique in the population; each individual gets at most
// Config.MaxAttempts tries before ErrConstructionFailed.
//
// Mutate and Repair build new population snapshots and never edit a
// chromosome in place.
//
// Observability:
//   - Counters and Timers keep one entry per generation and phase.
//   - LogGeneration and LogReport write through the *slog.Logger given with
//     WithLogger; every record carries the run id.
//   - WithRegisterer mirrors the counters as Prometheus metrics.
//
// Concurrency: an Engine is single-threaded and not safe for concurrent use.
// All randomness flows from one *rand.Rand (WithRand or Config.Seed).
package ga
