package marking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreRoomAllocation(t *testing.T) {
	//** Arrange
	scores := Scores{
		SupervisorMarkingStudent: -100,
		SameSupervisor:           -20,
		SubjectAreaMatchFirst:    5,
		SubjectAreaMatchSecond:   2,
		RoomSize:                 2,
	}
	// Two students with the same supervisor in the first room, one room of the right size and one student in each room sharing expertise with a marker
	allocation := &RoomAllocation{
		Rooms: []*Room{
			{
				Students: []*Student{
					{Id: "student1", Expertise: []string{"blue"}, Supervisor: "marker1", MarkerAvoid: []string{"marker3"}},
					{Id: "student2", Expertise: []string{"yellow"}, Supervisor: "marker1"},
				},
				Markers: []*Marker{
					{Id: "marker2", Expertise: []string{"green", "blue"}, PhdStudents: []string{"marker3"}, Academic: true},
				},
			},
			{
				Students: []*Student{
					{Id: "student3", Expertise: []string{"green"}, Supervisor: "marker2"},
				},
				Markers: []*Marker{
					{Id: "marker1", Expertise: []string{"green", "blue"}, Academic: true},
					{Id: "marker3", Expertise: []string{"yellow"}, Academic: true},
				},
			},
		},
		StudentsPerRoom: 3,
	}

	//** Act
	score := ScoreRoomAllocation(allocation, scores)

	//** Assert
	assert.Equal(t, 8, score)
}

func TestScoreRoom(t *testing.T) {
	scores := DefaultScores()
	first := &Marker{Id: "m1", Expertise: []string{"ai", "ml"}}
	second := &Marker{Id: "m2", Expertise: []string{"ml"}}
	room := &Room{
		Markers: []*Marker{first, second},
		Students: []*Student{
			{Id: "both", Expertise: []string{"ml"}, Supervisor: "x"},
			{Id: "one", Expertise: []string{"ai"}, Supervisor: "y"},
			{Id: "fixed", Expertise: []string{"none"}, Supervisor: "z", FixedMarkers: []string{"m1", "m2"}},
			{Id: "supervised", Expertise: []string{"none"}, Supervisor: "m2"},
		},
	}

	// Size bonus, 5+2 for both, 5 for one, 2*50 fixed, -100 supervisor
	assert.Equal(t, 2+7+5+100-100, scoreRoom(room, 4, scores))
	// Too far from the target for the size bonus
	assert.Equal(t, 7+5+100-100, scoreRoom(room, 2, scores))
}

func TestScoreSameSupervisorPenaltyGrows(t *testing.T) {
	room := &Room{
		Students: []*Student{
			{Id: "a", Supervisor: "x"},
			{Id: "b", Supervisor: "x"},
			{Id: "c", Supervisor: "x"},
			{Id: "d", Supervisor: "y"},
		},
	}

	assert.Equal(t, 2*-20, scoreRoom(room, 10, DefaultScores()))
}
