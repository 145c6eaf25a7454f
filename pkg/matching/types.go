package matching

import (
	"errors"
	"slices"

	"github.com/samber/lo"
	"go.uber.org/multierr"
)

// Number of choices every student is expected to submit
const RequiredPreferences = 4

type Student struct {
	Id         string
	Programme  string
	Rank       *int     // Lower is more senior, nil when the student was not ranked
	Choices    []string // Choices as submitted, before any deduplication or backfill. Used only to summarise results
	Preference []string // Supervisors ordered from most to least preferred, pruned while matching
	Allocation string   // Supervisor id, empty while unassigned
}

type Supervisor struct {
	Id         string
	Programmes []string
	Capacity   int
	Preference []string // Students ordered from most to least preferred
	Students   []string // Matched students, always kept sorted by Preference so the tail is the worst current match
}

func (student *Student) Allocated() bool {
	return student.Allocation != ""
}

func (student *Student) Clone() *Student {
	clone := *student
	clone.Choices = slices.Clone(student.Choices)
	clone.Preference = slices.Clone(student.Preference)
	if student.Rank != nil {
		rank := *student.Rank
		clone.Rank = &rank
	}
	return &clone
}

func (supervisor *Supervisor) Clone() *Supervisor {
	clone := *supervisor
	clone.Programmes = slices.Clone(supervisor.Programmes)
	clone.Preference = slices.Clone(supervisor.Preference)
	clone.Students = slices.Clone(supervisor.Students)
	return &clone
}

// Number of students the supervisor can still take
func (supervisor *Supervisor) Spare() int {
	return supervisor.Capacity - len(supervisor.Students)
}

func (supervisor *Supervisor) Full() bool {
	return len(supervisor.Students) >= supervisor.Capacity
}

func cloneAll(students []*Student, supervisors []*Supervisor) ([]*Student, []*Supervisor) {
	return lo.Map(students, func(student *Student, _ int) *Student { return student.Clone() }),
		lo.Map(supervisors, func(supervisor *Supervisor, _ int) *Supervisor { return supervisor.Clone() })
}

type Result struct {
	Success     bool
	Errors      []string
	Students    []*Student
	Supervisors []*Supervisor
}

// Folds the validation errors into a single error, nil on success
func (result Result) Err() error {
	return multierr.Combine(lo.Map(result.Errors, func(message string, _ int) error {
		return errors.New(message)
	})...)
}
