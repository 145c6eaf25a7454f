package matching

import (
	"slices"

	"github.com/limaJavier/allocation/pkg/progress"
	"github.com/samber/lo"
)

// Matcher solves a capacitated two-sided matching in place: students' Allocation and supervisors' Students are updated, and preference lists are pruned
type Matcher interface {
	Solve(students []*Student, supervisors []*Supervisor)
}

type studentOptimalMatcher struct {
	sink progress.Sink
}

// Returns the resident-oriented Gale-Shapley matcher (Roth 1984) for the Hospital/Resident problem.
// Preference entries that do not resolve to a record are skipped silently
func NewStudentOptimalMatcher(sink progress.Sink) Matcher {
	return &studentOptimalMatcher{
		sink: progress.OrNop(sink),
	}
}

func (matcher *studentOptimalMatcher) Solve(students []*Student, supervisors []*Supervisor) {
	matcher.sink.Report("Running matching algorithm")

	studentsById := lo.KeyBy(students, func(student *Student) string { return student.Id })
	supervisorsById := lo.KeyBy(supervisors, func(supervisor *Supervisor) string { return supervisor.Id })

	freeStudents := lo.Filter(students, func(student *Student, _ int) bool {
		return !student.Allocated() && len(student.Preference) > 0
	})

	for len(freeStudents) > 0 {
		//** Take the last free student and its favourite supervisor
		student := freeStudents[len(freeStudents)-1]
		freeStudents = freeStudents[:len(freeStudents)-1]
		if len(student.Preference) == 0 {
			continue
		}

		favourite, ok := supervisorsById[student.Preference[0]]
		if !ok {
			continue
		}
		// Do not pair up when the supervisor does not accept the student
		if !slices.Contains(favourite.Preference, student.Id) {
			continue
		}

		//** Make room by releasing the worst current match
		if favourite.Full() {
			worstId, ok := worstMatch(favourite)
			if !ok {
				continue
			}
			worst := studentsById[worstId]
			unmatchPair(worstId, worst, favourite)
			if worst != nil {
				freeStudents = append(freeStudents, worst)
			}
		}

		matchPair(student, favourite)

		//** Prune every pair the full supervisor would never accept
		if favourite.Full() {
			for _, successorId := range successors(favourite) {
				successor, ok := studentsById[successorId]
				if !ok {
					continue
				}
				deletePair(successor, favourite)
				if len(successor.Preference) == 0 {
					freeStudents = lo.Without(freeStudents, successor)
				}
			}
		}
	}
}
