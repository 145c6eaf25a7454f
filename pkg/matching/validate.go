package matching

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Collects every problem in the input instead of stopping at the first one
func ValidateStudentSupervisors(students []*Student, supervisors []*Supervisor) []string {
	errors := make([]string, 0)

	allSupervisors := lo.Map(supervisors, func(supervisor *Supervisor, _ int) string { return supervisor.Id })
	allProgrammes := lo.Uniq(lo.FlatMap(supervisors, func(supervisor *Supervisor, _ int) []string { return supervisor.Programmes }))
	knownSupervisors, knownProgrammes := lo.Keyify(allSupervisors), lo.Keyify(allProgrammes)

	for _, id := range lo.FindDuplicates(allSupervisors) {
		errors = append(errors, fmt.Sprintf("Supervisor '%v' appears more than once.", id))
	}
	for _, supervisor := range supervisors {
		if supervisor.Capacity < 1 {
			errors = append(errors, fmt.Sprintf("Supervisor '%v' has capacity %v. Capacity must be at least 1.", supervisor.Id, supervisor.Capacity))
		}
	}

	studentIds := lo.Map(students, func(student *Student, _ int) string { return student.Id })
	for _, id := range lo.FindDuplicates(studentIds) {
		errors = append(errors, fmt.Sprintf("Student '%v' appears more than once.", id))
	}

	supervisorsById := lo.KeyBy(supervisors, func(supervisor *Supervisor) string { return supervisor.Id })
	for _, student := range students {
		if supervisor, ok := supervisorsById[student.Allocation]; student.Allocated() && (!ok || !slices.Contains(supervisor.Students, student.Id)) {
			errors = append(errors, fmt.Sprintf("Student '%v' is allocated to '%v' who does not list them as a student.", student.Id, student.Allocation))
		}
		if _, ok := knownProgrammes[student.Programme]; !ok {
			errors = append(errors, fmt.Sprintf("Student '%v' is on programme '%v' which is not in list of known programmes. Must be one of %v.", student.Id, student.Programme, FormatStrings(allProgrammes)))
		}
		for _, preference := range student.Preference {
			if _, ok := knownSupervisors[preference]; !ok {
				errors = append(errors, fmt.Sprintf("Student '%v' submitted preference '%v' which is not in list of known supervisors. Must be one of %v.", student.Id, preference, FormatStrings(allSupervisors)))
			}
		}
	}

	return errors
}
