// Package crossover defines the recombination contract used by the
// evolutionary engine and ships an order crossover (OX) implementation.
//
// Operators work on single tours: permutations of 0..dimension+trucks-2
// where 0 is the depot and every id >= dimension is a depot copy (see
// package vrp). Children are returned in the same form; the caller rebuilds
// routes with vrp.FromSingleTour, so rotations are harmless.
//
// Every operator keeps running diagnostics:
//
//	Counters - failures, parent/child cost sums, partition classification,
//	           fusions, unsolved partitions and infeasible child tours.
//	Timers   - one duration per call and stage.
//
// Partition fields (Feasible1..3, Infeasible, Fusions, Unsolved and the
// Partitioning/SimpleGraph/Fusion timers) are filled by partition-based
// operators. OX does not partition and leaves them at zero.
package crossover
