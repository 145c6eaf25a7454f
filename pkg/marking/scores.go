package marking

import (
	"github.com/samber/lo"
)

// Weights of the soft constraints. Penalties are negative
type Scores struct {
	SupervisorMarkingStudent int `mapstructure:"supervisorMarkingStudent"`
	SameSupervisor           int `mapstructure:"sameSupervisor"`
	SubjectAreaMatchFirst    int `mapstructure:"subjectAreaMatchFirst"`
	SubjectAreaMatchSecond   int `mapstructure:"subjectAreaMatchSecond"`
	RoomSize                 int `mapstructure:"roomSize"`
	FixedMarker              int `mapstructure:"fixedMarker"`
}

func DefaultScores() Scores {
	return Scores{
		SupervisorMarkingStudent: -100,
		SameSupervisor:           -20,
		SubjectAreaMatchFirst:    5,
		SubjectAreaMatchSecond:   2,
		RoomSize:                 2,
		FixedMarker:              50,
	}
}

// Negated sum of the room scores, so lower is better
func ScoreRoomAllocation(allocation *RoomAllocation, scores Scores) int {
	return -lo.SumBy(allocation.Rooms, func(room *Room) int {
		return scoreRoom(room, allocation.StudentsPerRoom, scores)
	})
}

func scoreRoom(room *Room, target float64, scores Scores) int {
	total := 0

	if size := float64(len(room.Students)); size-target <= 1 && target-size <= 1 {
		total += scores.RoomSize
	}

	supervisorCounts := make(map[string]int)
	for _, student := range room.Students {
		switch matches := expertiseMatches(room, student); {
		case matches >= 2:
			total += scores.SubjectAreaMatchFirst + scores.SubjectAreaMatchSecond
		case matches == 1:
			total += scores.SubjectAreaMatchFirst
		}

		if room.hasMarker(student.Supervisor) {
			total += scores.SupervisorMarkingStudent
		}
		for _, fixed := range student.FixedMarkers {
			if room.hasMarker(fixed) {
				total += scores.FixedMarker
			}
		}
		supervisorCounts[student.Supervisor]++
	}

	for _, count := range supervisorCounts {
		if count > 1 {
			total += scores.SameSupervisor * (count - 1)
		}
	}
	return total
}

// Number of markers in the room sharing at least one expertise tag with the student
func expertiseMatches(room *Room, student *Student) int {
	return lo.CountBy(room.Markers, func(marker *Marker) bool {
		return lo.Some(marker.Expertise, student.Expertise)
	})
}
