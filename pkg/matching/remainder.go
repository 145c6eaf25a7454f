package matching

import (
	"fmt"

	"github.com/limaJavier/allocation/pkg/progress"
	"github.com/samber/lo"
)

// Places every unallocated student with a supervisor of its programme that still has capacity, always choosing the supervisor with the most spare places.
// Programmes without spare capacity are reported and their students stay unallocated. Returns the students left unallocated
func AllocateRemaining(students []*Student, supervisors []*Supervisor, sink progress.Sink) []*Student {
	sink = progress.OrNop(sink)

	unallocated := lo.Filter(students, func(student *Student, _ int) bool { return !student.Allocated() })
	withoutPreference := lo.Filter(unallocated, func(student *Student, _ int) bool {
		return len(student.Choices) == 0 || student.Choices[0] == ""
	})
	sink.Report(fmt.Sprintf("Allocating %v remaining students, %v of which did not set preferences", len(unallocated), len(withoutPreference)))

	withCapacity := lo.Filter(supervisors, func(supervisor *Supervisor, _ int) bool { return supervisor.Spare() > 0 })
	supervisorsByProgramme := groupSupervisorsByProgramme(withCapacity)
	unallocatedByProgramme := lo.GroupBy(unallocated, func(student *Student) string { return student.Programme })
	programmes := lo.Uniq(lo.Map(unallocated, func(student *Student, _ int) string { return student.Programme }))

	left := make([]*Student, 0)
	for _, programme := range programmes {
		candidates := supervisorsByProgramme[programme]
		if len(candidates) == 0 {
			sink.Report(fmt.Sprintf("No supervisors left for programme %v", programme))
			left = append(left, unallocatedByProgramme[programme]...)
			continue
		}

		unplaced := allocateRemainingByProgramme(unallocatedByProgramme[programme], candidates)
		if len(unplaced) > 0 {
			sink.Report(fmt.Sprintf("No supervisors left for programme %v", programme))
			left = append(left, unplaced...)
		}
	}
	return left
}

func allocateRemainingByProgramme(students []*Student, supervisors []*Supervisor) []*Student {
	freeStudents := make([]*Student, len(students))
	copy(freeStudents, students)

	for len(freeStudents) > 0 {
		// Ties go to the first supervisor found
		highest := lo.MaxBy(supervisors, func(supervisor *Supervisor, max *Supervisor) bool {
			return supervisor.Spare() > max.Spare()
		})
		if highest.Spare() <= 0 {
			return freeStudents
		}

		student := freeStudents[len(freeStudents)-1]
		freeStudents = freeStudents[:len(freeStudents)-1]
		matchPair(student, highest)
	}
	return freeStudents
}
