package annealing

import (
	"github.com/uber-go/tally/v4"
)

// Metrics tracks the progress of an annealing run
type Metrics struct {
	// proposals that produced a candidate state
	Proposals tally.Counter
	// candidates accepted because they improved the energy
	AcceptedBetter tally.Counter
	// candidates accepted by the Metropolis criterion despite not improving
	AcceptedWorse tally.Counter
	Rejected      tally.Counter
	// proposals that found no legal move
	Exhausted         tally.Counter
	TemperatureLevels tally.Counter
	// energy of the current state
	Energy tally.Gauge
}

func NewMetrics(scope tally.Scope) *Metrics {
	betterScope := scope.Tagged(map[string]string{"kind": "better"})
	worseScope := scope.Tagged(map[string]string{"kind": "worse"})
	return &Metrics{
		Proposals:         scope.Counter("proposals"),
		AcceptedBetter:    betterScope.Counter("accepted"),
		AcceptedWorse:     worseScope.Counter("accepted"),
		Rejected:          scope.Counter("rejected"),
		Exhausted:         scope.Counter("exhausted"),
		TemperatureLevels: scope.Counter("temperature_levels"),
		Energy:            scope.Gauge("energy"),
	}
}
