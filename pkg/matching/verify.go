package matching

import (
	"slices"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

// Checks that the matching is symmetric and that no supervisor exceeds its capacity
func Verify(students []*Student, supervisors []*Supervisor) bool {
	allocations := make(map[string]string, len(students))
	for _, student := range students {
		allocations[student.Id] = student.Allocation
	}

	matched := 0
	for _, supervisor := range supervisors {
		// Check that:
		// - Supervisor is within capacity
		// - Supervisor holds no student twice
		// - Every matched student points back at the supervisor
		if len(supervisor.Students) > supervisor.Capacity ||
			len(lo.Uniq(supervisor.Students)) != len(supervisor.Students) ||
			lo.SomeBy(supervisor.Students, func(id string) bool { return allocations[id] != supervisor.Id }) {
			return false
		}
		matched += len(supervisor.Students)
	}

	// Every allocated student must have been found in exactly one supervisor
	return matched == lo.CountBy(students, func(student *Student) bool { return student.Allocated() })
}

// Preference lists captured before solving, since solving prunes them
type Snapshot struct {
	Students    map[string][]string
	Supervisors map[string][]string
}

func TakeSnapshot(students []*Student, supervisors []*Supervisor) Snapshot {
	return Snapshot{
		Students: lo.SliceToMap(students, func(student *Student) (string, []string) {
			return student.Id, slices.Clone(student.Preference)
		}),
		Supervisors: lo.SliceToMap(supervisors, func(supervisor *Supervisor) (string, []string) {
			return supervisor.Id, slices.Clone(supervisor.Preference)
		}),
	}
}

// Returns every (student, supervisor) pair, under the snapshot's preferences, that would rather be matched to each other than keep the current matching
func BlockingPairs(snapshot Snapshot, students []*Student, supervisors []*Supervisor) [][2]string {
	supervisorsById := lo.KeyBy(supervisors, func(supervisor *Supervisor) string { return supervisor.Id })
	blocking := make([][2]string, 0)

	for _, student := range students {
		preference := snapshot.Students[student.Id]
		current := slices.Index(preference, student.Allocation)
		if !student.Allocated() || current == -1 {
			current = len(preference)
		}

		// Only supervisors the student strictly prefers to its current allocation can block
		for _, supervisorId := range preference[:current] {
			supervisor, ok := supervisorsById[supervisorId]
			if !ok {
				continue
			}
			supervisorPreference := snapshot.Supervisors[supervisorId]
			position := slices.Index(supervisorPreference, student.Id)
			if position == -1 {
				continue
			}

			if !supervisor.Full() {
				blocking = append(blocking, [2]string{student.Id, supervisorId})
				continue
			}
			worst, _ := worstMatch(supervisor)
			worstPosition := slices.Index(supervisorPreference, worst)
			if worstPosition == -1 || position < worstPosition {
				blocking = append(blocking, [2]string{student.Id, supervisorId})
			}
		}
	}
	return blocking
}

// Returns the largest number of students that could simultaneously be placed on one of their preferences without exceeding any capacity
func PlacementBound(students []*Student, supervisors []*Supervisor) (int, error) {
	applicants := lo.Filter(students, func(student *Student, _ int) bool { return len(student.Preference) > 0 })
	if len(applicants) == 0 {
		return 0, nil
	}

	// Every supervisor contributes one node per place
	slots := lo.FlatMap(supervisors, func(supervisor *Supervisor, _ int) []string {
		return lo.Times(max(supervisor.Capacity, 0), func(_ int) string { return supervisor.Id })
	})
	if len(slots) == 0 {
		return 0, nil
	}

	accepts := lo.SliceToMap(applicants, func(student *Student) (string, map[string]struct{}) {
		return student.Id, lo.Keyify(student.Preference)
	})
	neighbors := func(studentAny any, slotAny any) (bool, error) {
		_, ok := accepts[studentAny.(string)][slotAny.(string)]
		return ok, nil
	}

	studentsAny := lo.Map(applicants, func(student *Student, _ int) any { return student.Id })
	slotsAny := lo.Map(slots, func(slot string, _ int) any { return slot })

	graph, err := bipartitegraph.NewBipartiteGraph(studentsAny, slotsAny, neighbors)
	if err != nil {
		return 0, err
	}
	return len(graph.LargestMatching()), nil
}
