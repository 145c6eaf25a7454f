package annealing

import (
	"fmt"
	"math"

	"github.com/limaJavier/allocation/pkg/progress"
	"github.com/limaJavier/allocation/pkg/random"
	"github.com/uber-go/tally/v4"
)

// Problem describes the state space searched by an Annealer
type Problem[T any] interface {
	// Value being minimised
	Energy(state T) float64
	// Returns a neighbour of state without modifying state; ok is false when no legal neighbour was found
	Propose(state T) (neighbour T, ok bool)
}

type Annealer[T any] interface {
	// Runs the full cooling schedule from initial and returns the last accepted state
	Anneal(initial T) T
}

type annealerImplementation[T any] struct {
	problem Problem[T]
	options Options
	source  random.Source
	sink    progress.Sink
	metrics *Metrics
}

// A nil scope disables metrics, a nil sink discards progress
func NewAnnealer[T any](problem Problem[T], options Options, source random.Source, sink progress.Sink, scope tally.Scope) (Annealer[T], error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if scope == nil {
		scope = tally.NoopScope
	}
	return &annealerImplementation[T]{
		problem: problem,
		options: options,
		source:  source,
		sink:    progress.OrNop(sink),
		metrics: NewMetrics(scope),
	}, nil
}

func (annealer *annealerImplementation[T]) Anneal(initial T) T {
	current := initial
	currentEnergy := annealer.problem.Energy(current)
	annealer.metrics.Energy.Update(currentEnergy)

	for temperature := annealer.options.InitialTemp; temperature > annealer.options.MinTemp; temperature *= annealer.options.Alpha {
		exhausted := 0
		for range annealer.options.Iterations {
			candidate, ok := annealer.problem.Propose(current)
			if !ok {
				exhausted++
				annealer.metrics.Exhausted.Inc(1)
				continue
			}
			annealer.metrics.Proposals.Inc(1)

			candidateEnergy := annealer.problem.Energy(candidate)
			delta := candidateEnergy - currentEnergy
			if !Accept(delta, temperature, annealer.source) {
				annealer.metrics.Rejected.Inc(1)
				continue
			}

			if delta < 0 {
				annealer.metrics.AcceptedBetter.Inc(1)
			} else {
				annealer.metrics.AcceptedWorse.Inc(1)
			}
			current, currentEnergy = candidate, candidateEnergy
			annealer.metrics.Energy.Update(currentEnergy)
		}

		annealer.metrics.TemperatureLevels.Inc(1)
		if exhausted > 0 {
			annealer.sink.Report(fmt.Sprintf("No legal move found for %v of %v proposals at temperature %.2f", exhausted, annealer.options.Iterations, temperature))
		}
		annealer.sink.Report(fmt.Sprintf("Temperature %.2f: current allocation got score %v", temperature, currentEnergy))
	}
	return current
}

// Metropolis criterion: improvements are always accepted without drawing from source, anything else with probability exp(-delta/temperature)
func Accept(delta float64, temperature float64, source random.Source) bool {
	if delta < 0 {
		return true
	}
	return source.Float64() < math.Exp(-delta/temperature)
}
