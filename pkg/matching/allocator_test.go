package matching

import (
	"testing"

	"github.com/limaJavier/allocation/pkg/progress"
	"github.com/limaJavier/allocation/pkg/random"
	. "github.com/onsi/gomega"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStudent(id string, rank *int, choices ...string) *Student {
	return &Student{Id: id, Programme: "P1", Rank: rank, Choices: choices, Preference: append([]string{}, choices...)}
}

func rankedGame() ([]*Student, []*Supervisor) {
	students := []*Student{
		newStudent("S1", rank(1), "X", "Y", "Z", "W"),
		newStudent("S2", rank(2), "X", "Y", "Z", "W"),
		newStudent("S3", rank(3), "Y", "X", "Z", "W"),
		newStudent("S4", rank(4), "X", "Z", "Y", "W"),
		newStudent("S5", rank(5)),
	}
	supervisors := []*Supervisor{
		{Id: "X", Capacity: 1, Programmes: []string{"P1"}, Students: []string{}},
		{Id: "Y", Capacity: 1, Programmes: []string{"P1"}, Students: []string{}},
		{Id: "Z", Capacity: 1, Programmes: []string{"P1"}, Students: []string{}},
		{Id: "W", Capacity: 2, Programmes: []string{"P1"}, Students: []string{}},
	}
	return students, supervisors
}

func TestAllocateRankedStudents(t *testing.T) {
	//** Arrange
	students, supervisors := rankedGame()
	recorder := progress.NewRecorder()
	allocator := NewAllocator(random.NewSource(1), recorder, 0)

	//** Act
	result := allocator.Allocate(students, supervisors)

	//** Assert
	require.True(t, result.Success)
	assert.NoError(t, result.Err())
	assert.True(t, allocator.Verify(result.Students, result.Supervisors))
	assert.Equal(t, []string{"X", "Y", "Z", "W", "W"}, lo.Map(result.Students, func(student *Student, _ int) string { return student.Allocation }))
	assert.Equal(t, [5]int{1, 1, 1, 1, 0}, CountChoices(result.Students))
	assert.Equal(t, []string{
		"Starting allocation",
		"Submitted choices allow at most 4 of 4 students to be placed on a choice",
		"Running matching algorithm",
		"Allocating 1 remaining students, 1 of which did not set preferences",
		"Completed allocating students",
		"X has 1/1 students allocated",
		"Y has 1/1 students allocated",
		"Z has 1/1 students allocated",
		"W has 2/2 students allocated",
		"Choice 1: 1 students",
		"Choice 2: 1 students",
		"Choice 3: 1 students",
		"Choice 4: 1 students",
		"None of submitted choices: 0 students",
	}, recorder.Messages())
}

func TestAllocateUnrankedStudentsUsesCopies(t *testing.T) {
	//** Arrange
	run := func() (Result, []*Supervisor) {
		students, supervisors := rankedGame()
		for _, student := range students {
			student.Rank = nil
		}
		return NewAllocator(random.NewSource(17), nil, 10).Allocate(students, supervisors), supervisors
	}

	//** Act
	first, inputSupervisors := run()
	second, _ := run()

	//** Assert
	g := NewWithT(t)
	g.Expect(first.Success).To(BeTrue())
	g.Expect(Verify(first.Students, first.Supervisors)).To(BeTrue())
	g.Expect(lo.EveryBy(first.Students, func(student *Student) bool { return student.Allocated() })).To(BeTrue())
	for _, supervisor := range inputSupervisors {
		g.Expect(supervisor.Students).To(BeEmpty())
	}

	allocations := func(result Result) []string {
		return lo.Map(result.Students, func(student *Student, _ int) string { return student.Allocation })
	}
	g.Expect(allocations(first)).To(Equal(allocations(second)))
}

func TestAllocateRejectsInvalidInput(t *testing.T) {
	students := []*Student{newStudent("S1", nil, "Q")}
	supervisors := []*Supervisor{{Id: "X", Capacity: 1, Programmes: []string{"P1"}}}

	result := NewAllocator(random.NewSource(1), nil, 1).Allocate(students, supervisors)

	assert.False(t, result.Success)
	assert.Nil(t, result.Students)
	assert.Len(t, result.Errors, 1)
	assert.EqualError(t, result.Err(), result.Errors[0])
}

func TestAllocateRejectsStaleAllocation(t *testing.T) {
	students := []*Student{
		{Id: "A", Rank: rank(1), Programme: "P1", Choices: []string{"X"}, Preference: []string{"X"}, Allocation: "Y"},
		{Id: "B", Rank: rank(2), Programme: "P1", Choices: []string{"X"}, Preference: []string{"X"}},
	}
	supervisors := []*Supervisor{
		{Id: "X", Capacity: 1, Programmes: []string{"P1"}, Students: []string{}},
		{Id: "Y", Capacity: 1, Programmes: []string{"P1"}, Students: []string{}},
	}

	result := NewAllocator(random.NewSource(1), nil, 1).Allocate(students, supervisors)

	assert.False(t, result.Success)
	assert.EqualError(t, result.Err(), "Student 'A' is allocated to 'Y' who does not list them as a student.")
}

func TestSummariseResults(t *testing.T) {
	students := []*Student{
		{Id: "A", Choices: []string{"X", "Y"}, Allocation: "Y"},
		{Id: "B", Choices: []string{"X"}, Allocation: "Z"},
		{Id: "C", Allocation: "Z"},
	}
	supervisors := []*Supervisor{
		{Id: "Y", Capacity: 2, Students: []string{"A"}},
		{Id: "Z", Capacity: 2, Students: []string{"B", "C"}},
	}
	recorder := progress.NewRecorder()

	SummariseResults(students, supervisors, recorder)

	assert.Equal(t, []string{
		"Y has 1/2 students allocated",
		"Z has 2/2 students allocated",
		"Choice 1: 0 students",
		"Choice 2: 1 students",
		"Choice 3: 0 students",
		"Choice 4: 0 students",
		"None of submitted choices: 1 students",
	}, recorder.Messages())
	assert.Equal(t, 10, scoreResult(students))
}

func TestPlacementBound(t *testing.T) {
	students := []*Student{
		{Id: "A", Preference: []string{"X"}},
		{Id: "B", Preference: []string{"X"}},
		{Id: "C", Preference: []string{"X", "Y"}},
		{Id: "D"},
	}
	supervisors := []*Supervisor{
		{Id: "X", Capacity: 1},
		{Id: "Y", Capacity: 1},
	}

	bound, err := PlacementBound(students, supervisors)

	assert.NoError(t, err)
	assert.Equal(t, 2, bound)

	supervisors[0].Capacity = 2
	bound, err = PlacementBound(students, supervisors)
	assert.NoError(t, err)
	assert.Equal(t, 3, bound)
}
