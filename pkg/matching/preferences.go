package matching

import (
	"fmt"
	"slices"
	"strings"

	"github.com/limaJavier/allocation/pkg/progress"
	"github.com/limaJavier/allocation/pkg/random"
	"github.com/samber/lo"
)

// Removes every supervisor a student entered more than once, all occurrences included, so repeating a pick cannot be used to game the matching
func RemoveDuplicatePicks(students []*Student, sink progress.Sink) {
	sink = progress.OrNop(sink)
	for _, student := range students {
		occurrences := lo.CountValues(student.Preference)
		kept := make([]string, 0, len(student.Preference))
		for _, preference := range lo.Uniq(student.Preference) {
			if occurrences[preference] == 1 {
				kept = append(kept, preference)
			} else {
				sink.Report(fmt.Sprintf("Removing preference %v from %v as they entered it %v times", preference, student.Id, occurrences[preference]))
			}
		}
		student.Preference = kept
	}
}

// A student who entered fewer than the required choices would be guaranteed one of them, which is unfair on everyone else.
// Students with between one and three choices get the rest drawn at random, without repetition, from supervisors of their programme.
// Students without any choice are left for the remainder allocation
func RandomiseMissingPreferences(students []*Student, supervisors []*Supervisor, source random.Source, sink progress.Sink) {
	sink = progress.OrNop(sink)
	supervisorsByProgramme := groupSupervisorsByProgramme(supervisors)

	for _, student := range students {
		missing := RequiredPreferences - len(student.Preference)
		if missing <= 0 || missing >= RequiredPreferences {
			continue
		}

		candidates := lo.FilterMap(supervisorsByProgramme[student.Programme], func(supervisor *Supervisor, _ int) (string, bool) {
			return supervisor.Id, !slices.Contains(student.Preference, supervisor.Id)
		})
		toAssign := random.Choose(source, candidates, min(missing, len(candidates)))

		sink.Report(fmt.Sprintf("Student '%v' entered %v preferences. Randomly adding supervisors %v as additional preferences.", student.Id, len(student.Preference), FormatStrings(toAssign)))
		student.Preference = append(student.Preference, toAssign...)
	}
}

// Gives every supervisor the same preference list: all students by ascending rank.
// Unranked students first receive a random permutation of the ranks following the current maximum
func SetSupervisorPreferences(students []*Student, supervisors []*Supervisor, source random.Source, sink progress.Sink) {
	sink = progress.OrNop(sink)

	unranked := lo.Filter(students, func(student *Student, _ int) bool { return student.Rank == nil })
	if len(unranked) > 0 {
		sink.Report("Randomising rank for any unranked students")

		maxRank := 0
		for _, student := range students {
			if student.Rank != nil && *student.Rank > maxRank {
				maxRank = *student.Rank
			}
		}

		ranks := random.ShuffleSlice(source, lo.RangeFrom(maxRank+1, len(unranked)))
		for i, student := range unranked {
			rank := ranks[i]
			student.Rank = &rank
		}
	}

	sorted := slices.Clone(students)
	slices.SortStableFunc(sorted, func(a, b *Student) int {
		return *a.Rank - *b.Rank
	})
	preference := lo.Map(sorted, func(student *Student, _ int) string { return student.Id })

	for _, supervisor := range supervisors {
		supervisor.Preference = slices.Clone(preference)
	}
}

// Groups supervisors under every programme they serve, keeping input order inside each group
func groupSupervisorsByProgramme(supervisors []*Supervisor) map[string][]*Supervisor {
	groups := make(map[string][]*Supervisor)
	for _, supervisor := range supervisors {
		for _, programme := range lo.Uniq(supervisor.Programmes) {
			groups[programme] = append(groups[programme], supervisor)
		}
	}
	return groups
}

// Formats values as a comma separated list of quoted strings, e.g. 'a', 'b'
func FormatStrings(values []string) string {
	return strings.Join(lo.Map(values, func(value string, _ int) string {
		return fmt.Sprintf("'%v'", value)
	}), ", ")
}
