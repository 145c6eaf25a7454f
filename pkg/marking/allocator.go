package marking

import (
	"fmt"

	"github.com/limaJavier/allocation/pkg/annealing"
	"github.com/limaJavier/allocation/pkg/progress"
	"github.com/limaJavier/allocation/pkg/random"
	"github.com/uber-go/tally/v4"
)

// RoomAllocator places markers and students into rooms and improves the placement by simulated annealing
type RoomAllocator interface {
	Allocate(markers []*Marker, students []*Student, roomCount int) Result

	// Returns true when the allocation breaks no hard constraint
	Verify(allocation *RoomAllocation) bool
}

type roomAllocatorImplementation struct {
	scores  Scores
	options annealing.Options
	source  random.Source
	sink    progress.Sink
	scope   tally.Scope
}

// A nil scope disables metrics
func NewRoomAllocator(scores Scores, options annealing.Options, source random.Source, sink progress.Sink, scope tally.Scope) (RoomAllocator, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if scope == nil {
		scope = tally.NoopScope
	}
	return &roomAllocatorImplementation{
		scores:  scores,
		options: options,
		source:  source,
		sink:    progress.OrNop(sink),
		scope:   scope,
	}, nil
}

// Students' expertise is overwritten with their supervisor's. The returned allocation is the last state accepted by the search
func (allocator *roomAllocatorImplementation) Allocate(markers []*Marker, students []*Student, roomCount int) Result {
	allocator.sink.Report("Starting allocation")

	if errors := ValidateInput(markers, students, roomCount); len(errors) > 0 {
		return Result{Success: false, Errors: errors}
	}
	if errors := AssignExpertise(markers, students); len(errors) > 0 {
		return Result{Success: false, Errors: errors}
	}

	initial, errors := buildInitialSolution(markers, students, roomCount, allocator.source, allocator.sink)
	if len(errors) > 0 {
		return Result{Success: false, Errors: errors}
	}
	if violations := Violations(initial); len(violations) > 0 {
		allocator.sink.Report(fmt.Sprintf("Initial allocation breaks %v constraints", len(violations)))
	}

	problem := newRoomProblem(markers, allocator.scores, allocator.source)
	allocator.sink.Report(fmt.Sprintf("Initial allocation got score %v", problem.Energy(initial)))

	annealer, err := annealing.NewAnnealer[*RoomAllocation](problem, allocator.options, allocator.source, allocator.sink, allocator.scope)
	if err != nil {
		return Result{Success: false, Errors: []string{err.Error()}}
	}
	allocation := annealer.Anneal(initial)

	allocator.sink.Report("Completed allocating rooms")
	SummariseRoomAllocation(allocation, allocator.sink)
	return Result{Success: true, Errors: []string{}, Allocation: allocation}
}

func (allocator *roomAllocatorImplementation) Verify(allocation *RoomAllocation) bool {
	return len(Violations(allocation)) == 0
}
