package matching

import (
	"fmt"
	"math"

	"github.com/limaJavier/allocation/pkg/progress"
	"github.com/limaJavier/allocation/pkg/random"
	"github.com/samber/lo"
)

// Number of randomised runs compared when some students are unranked
const DefaultRuns = 100

// Allocator runs the whole student/supervisor pipeline: validation, preference preparation, stable matching and remainder allocation
type Allocator interface {
	Allocate(students []*Student, supervisors []*Supervisor) Result

	Verify(students []*Student, supervisors []*Supervisor) bool
}

type allocatorImplementation struct {
	source random.Source
	sink   progress.Sink
	runs   int
}

func NewAllocator(source random.Source, sink progress.Sink, runs int) Allocator {
	if runs < 1 {
		runs = DefaultRuns
	}
	return &allocatorImplementation{
		source: source,
		sink:   progress.OrNop(sink),
		runs:   runs,
	}
}

// Duplicate picks are removed from the given students in place. When every student is ranked the records are allocated in place;
// otherwise rankings are random and any single matching may be unlucky, so several runs are made on copies and the best one is returned
func (allocator *allocatorImplementation) Allocate(students []*Student, supervisors []*Supervisor) Result {
	allocator.sink.Report("Starting allocation")

	errors := ValidateStudentSupervisors(students, supervisors)
	if len(errors) > 0 {
		return Result{Success: false, Errors: errors}
	}

	RemoveDuplicatePicks(students, allocator.sink)
	if bound, err := PlacementBound(students, supervisors); err == nil {
		applicants := lo.CountBy(students, func(student *Student) bool { return len(student.Preference) > 0 })
		allocator.sink.Report(fmt.Sprintf("Submitted choices allow at most %v of %v students to be placed on a choice", bound, applicants))
	}

	result := Result{Success: true, Errors: []string{}}
	if lo.SomeBy(students, func(student *Student) bool { return student.Rank == nil }) {
		bestScore := math.MaxInt
		for range allocator.runs {
			studentsCopy, supervisorsCopy := cloneAll(students, supervisors)
			allocator.allocateOnce(studentsCopy, supervisorsCopy, progress.Nop)

			if score := scoreResult(studentsCopy); score < bestScore {
				bestScore = score
				result.Students, result.Supervisors = studentsCopy, supervisorsCopy
			}
		}
	} else {
		allocator.allocateOnce(students, supervisors, allocator.sink)
		result.Students, result.Supervisors = students, supervisors
	}

	allocator.sink.Report("Completed allocating students")
	SummariseResults(result.Students, result.Supervisors, allocator.sink)
	return result
}

func (allocator *allocatorImplementation) allocateOnce(students []*Student, supervisors []*Supervisor, sink progress.Sink) {
	RandomiseMissingPreferences(students, supervisors, allocator.source, sink)
	SetSupervisorPreferences(students, supervisors, allocator.source, sink)
	NewStudentOptimalMatcher(sink).Solve(students, supervisors)
	AllocateRemaining(students, supervisors, sink)
}

func (allocator *allocatorImplementation) Verify(students []*Student, supervisors []*Supervisor) bool {
	return Verify(students, supervisors)
}
