package matching

import (
	"fmt"
	"slices"

	"github.com/limaJavier/allocation/pkg/progress"
	"github.com/samber/lo"
)

// Reports how full every supervisor is and how many students got each of their submitted choices
func SummariseResults(students []*Student, supervisors []*Supervisor, sink progress.Sink) {
	sink = progress.OrNop(sink)
	for _, supervisor := range supervisors {
		sink.Report(fmt.Sprintf("%v has %v/%v students allocated", supervisor.Id, len(supervisor.Students), supervisor.Capacity))
	}

	for i, count := range CountChoices(students) {
		if i != RequiredPreferences {
			sink.Report(fmt.Sprintf("Choice %v: %v students", i+1, count))
		} else {
			sink.Report(fmt.Sprintf("None of submitted choices: %v students", count))
		}
	}
}

// Counts students allocated to their first, second, third and fourth choice; the last bucket holds those allocated elsewhere.
// Students who submitted no first choice are not counted
func CountChoices(students []*Student) [RequiredPreferences + 1]int {
	var counts [RequiredPreferences + 1]int
	for _, student := range students {
		if len(student.Choices) == 0 || student.Choices[0] == "" {
			continue
		}
		index := slices.Index(student.Choices, student.Allocation)
		if !student.Allocated() || index == -1 || index >= RequiredPreferences {
			index = RequiredPreferences
		}
		counts[index]++
	}
	return counts
}

// Lower is better: students further down their choices weigh more
func scoreResult(students []*Student) int {
	counts := CountChoices(students)
	return lo.Sum(lo.Map(counts[:], func(count int, index int) int {
		return count*index + 1
	}))
}
