package ga

import (
	"log/slog"
	"time"
)

// MaybeRestart acts only when Recombine raised the restart flag. It then
// clears the flag, keeps the best PopulationSize − round(PopulationSize ·
// RestartRatio) individuals and refills with unique, immediately scored
// individuals from the construction heuristic.
func (e *Engine) MaybeRestart() error {
	start := time.Now()
	if !e.initialized {
		return e.requireSize("restart")
	}

	if e.restart {
		e.restart = false
		e.evaluated = false
		for _, c := range e.pop {
			if !c.Evaluated() {
				c.Fitness = e.fitness(c)
			}
		}
		sortByFitness(e.pop)
		keep := e.cfg.PopulationSize - share(e.cfg.PopulationSize, e.cfg.RestartRatio)
		if keep < len(e.pop) {
			e.pop = e.pop[:keep]
		}
		if err := e.insert(e.construction, e.cfg.PopulationSize-len(e.pop), true); err != nil {
			return err
		}
		e.metrics.restart()
		e.logger.Info("population restarted",
			slog.Int("generation", e.generation),
			slog.Int("kept", keep))
	}

	e.timers.Restart = append(e.timers.Restart, time.Since(start))
	return e.requireSize("restart")
}
