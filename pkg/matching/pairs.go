package matching

import (
	"slices"

	"github.com/samber/lo"
)

// Matches student to supervisor keeping both sides consistent. Supervisor's matched students stay sorted by its preference list
func matchPair(student *Student, supervisor *Supervisor) {
	supervisor.Students = append(supervisor.Students, student.Id)
	// Removal at capacity always takes the tail, so the order must follow the supervisor's preference
	rank := preferenceRank(supervisor.Preference)
	slices.SortStableFunc(supervisor.Students, func(a, b string) int {
		return rank(a) - rank(b)
	})
	student.Allocation = supervisor.Id
}

// Undoes a match on both sides. student may be nil when the id no longer resolves to a record
func unmatchPair(studentId string, student *Student, supervisor *Supervisor) {
	if student != nil && student.Allocation == supervisor.Id {
		student.Allocation = ""
	}
	supervisor.Students = lo.Without(supervisor.Students, studentId)
}

// Removes the pair from the game: neither side will consider the other again
func deletePair(student *Student, supervisor *Supervisor) {
	student.Preference = lo.Without(student.Preference, supervisor.Id)
	supervisor.Preference = lo.Without(supervisor.Preference, student.Id)
}

// Returns the least preferred student currently matched to supervisor
func worstMatch(supervisor *Supervisor) (string, bool) {
	if len(supervisor.Students) == 0 {
		return "", false
	}
	return supervisor.Students[len(supervisor.Students)-1], true
}

// Returns the students ranked by supervisor strictly after its worst current match
func successors(supervisor *Supervisor) []string {
	worst, ok := worstMatch(supervisor)
	if !ok {
		return []string{}
	}
	index := slices.Index(supervisor.Preference, worst)
	if index == -1 {
		return []string{}
	}
	return slices.Clone(supervisor.Preference[index+1:])
}

// Returns a function giving the position of an id in preference. Unknown ids rank last
func preferenceRank(preference []string) func(id string) int {
	positions := make(map[string]int, len(preference))
	for i, id := range preference {
		if _, ok := positions[id]; !ok {
			positions[id] = i
		}
	}
	return func(id string) int {
		if position, ok := positions[id]; ok {
			return position
		}
		return len(preference)
	}
}
