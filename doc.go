// Package vrpga is a genetic-algorithm solver for the Capacitated Vehicle
// Routing Problem (CVRP).
//
// The module is organized into four packages, leaves first:
//
//	vrp/       - Instance (depot, customers, demand, capacity, trucks and a
//	             gonum distance matrix) and Chromosome (tour, routes,
//	             distance, load, fitness) with the single-tour conversion
//	heuristic/ - construction and mutation heuristics (random, 2opt, nn,
//	             nn2opt) and the capacity repair
//	crossover/ - the recombination contract and order crossover (OX)
//	ga/        - the Engine: population lifecycle, fitness policies a–e,
//	             tournament selection, sequential and pairwise recombination,
//	             mutation, repair, stagnation restart, statistics, YAML
//	             configuration, slog logging and Prometheus metrics
//
// Quick start:
//
//	inst, _ := vrp.NewEuclidean(coords, demand, capacity, trucks)
//	rng := rand.New(rand.NewSource(42))
//	op, _ := crossover.NewOX(inst, rng)
//	cfg, _ := ga.LoadConfig("ga.yaml")
//	e, _ := ga.New(inst, op, cfg, ga.WithRand(rng), ga.WithLogger(logger))
//	_ = e.Run(ctx, 500)
//	e.LogReport()
//
// Determinism: every random decision flows from one *rand.Rand, so a fixed
// seed reproduces a run exactly.
package vrpga
