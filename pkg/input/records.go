package input

import (
	"fmt"
	"strconv"

	"github.com/limaJavier/allocation/pkg/marking"
	"github.com/limaJavier/allocation/pkg/matching"
	"github.com/samber/lo"
	"go.uber.org/multierr"
)

type StudentRow struct {
	Id           string `mapstructure:"id"`
	Programme    string `mapstructure:"programme"`
	Rank         string `mapstructure:"rank"`
	FirstChoice  string `mapstructure:"first choice"`
	SecondChoice string `mapstructure:"second choice"`
	ThirdChoice  string `mapstructure:"third choice"`
	FourthChoice string `mapstructure:"fourth choice"`
}

type SupervisorRow struct {
	Id         string `mapstructure:"id"`
	Capacity   string `mapstructure:"capacity"`
	Programme1 string `mapstructure:"programme 1"`
	Programme2 string `mapstructure:"programme 2"`
	Programme3 string `mapstructure:"programme 3"`
	Programme4 string `mapstructure:"programme 4"`
}

type MarkerRow struct {
	Id          string `mapstructure:"id"`
	Expertise   string `mapstructure:"expertise"`
	PhdStudents string `mapstructure:"phd students"`
	Academic    string `mapstructure:"academic"`
	MarkWith    string `mapstructure:"mark with"`
	NotMarkWith string `mapstructure:"not mark with"`
}

type MarkingStudentRow struct {
	Id           string `mapstructure:"id"`
	Supervisor   string `mapstructure:"supervisor"`
	MarkerAvoid  string `mapstructure:"marker avoid"`
	FixedMarkers string `mapstructure:"fixed markers"`
}

var (
	studentColumns        = []string{"id", "programme", "first choice", "second choice", "third choice", "fourth choice"}
	supervisorColumns     = []string{"id", "capacity", "programme 1", "programme 2", "programme 3", "programme 4"}
	markerColumns         = []string{"id", "expertise", "phd students", "academic"}
	markingStudentColumns = []string{"id", "supervisor", "marker avoid"}
)

// Builds unallocated matching students from preference rows. Empty choices are skipped, an empty rank leaves the student unranked.
// An allocation column, as written by WriteStudentsCsv, is ignored
func Students(rows []Row) ([]*matching.Student, error) {
	decoded, errs := decodeRows[StudentRow](rows, studentColumns)

	students := make([]*matching.Student, 0, len(decoded))
	for _, row := range decoded {
		student := &matching.Student{
			Id:        row.Id,
			Programme: row.Programme,
			Choices:   lo.Compact([]string{row.FirstChoice, row.SecondChoice, row.ThirdChoice, row.FourthChoice}),
		}
		student.Preference = append([]string{}, student.Choices...)

		if row.Rank != "" {
			rank, err := strconv.Atoi(row.Rank)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("student '%v': rank '%v' is not an integer", row.Id, row.Rank))
				continue
			}
			student.Rank = &rank
		}
		students = append(students, student)
	}
	return students, errs
}

func Supervisors(rows []Row) ([]*matching.Supervisor, error) {
	decoded, errs := decodeRows[SupervisorRow](rows, supervisorColumns)

	supervisors := make([]*matching.Supervisor, 0, len(decoded))
	for _, row := range decoded {
		capacity, err := strconv.Atoi(row.Capacity)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("supervisor '%v': capacity '%v' is not an integer", row.Id, row.Capacity))
			continue
		}
		supervisors = append(supervisors, &matching.Supervisor{
			Id:         row.Id,
			Capacity:   capacity,
			Programmes: lo.Compact([]string{row.Programme1, row.Programme2, row.Programme3, row.Programme4}),
			Students:   []string{},
		})
	}
	return supervisors, errs
}

func Markers(rows []Row) ([]*marking.Marker, error) {
	decoded, errs := decodeRows[MarkerRow](rows, markerColumns)

	return lo.Map(decoded, func(row MarkerRow, _ int) *marking.Marker {
		return &marking.Marker{
			Id:          row.Id,
			Expertise:   splitList(row.Expertise),
			PhdStudents: splitList(row.PhdStudents),
			Academic:    toBoolean(row.Academic),
			MarkWith:    row.MarkWith,
			NotMarkWith: splitList(row.NotMarkWith),
		}
	}), errs
}

func MarkingStudents(rows []Row) ([]*marking.Student, error) {
	decoded, errs := decodeRows[MarkingStudentRow](rows, markingStudentColumns)

	return lo.Map(decoded, func(row MarkingStudentRow, _ int) *marking.Student {
		return &marking.Student{
			Id:           row.Id,
			Supervisor:   row.Supervisor,
			MarkerAvoid:  splitList(row.MarkerAvoid),
			FixedMarkers: splitList(row.FixedMarkers),
		}
	}), errs
}
