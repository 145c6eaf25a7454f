package marking

import (
	"errors"
	"slices"

	"github.com/samber/lo"
	"go.uber.org/multierr"
)

const (
	MarkersPerRoom  = 2
	MaxFixedMarkers = 2
	// Attempts at finding a legal neighbour before a proposal gives up
	MoveAttempts = 100
)

type Marker struct {
	Id        string
	Expertise []string
	// Markers who are PhD students of this marker
	PhdStudents []string
	Academic    bool
	// Marker this marker must share a room with, empty when unset
	MarkWith    string
	NotMarkWith []string
}

type Student struct {
	Id string
	// Taken from the supervisor before allocating
	Expertise    []string
	Supervisor   string
	MarkerAvoid  []string
	FixedMarkers []string
}

type Room struct {
	Markers  []*Marker
	Students []*Student
}

type RoomAllocation struct {
	Rooms []*Room
	// Ideal number of students per room, may be fractional
	StudentsPerRoom float64
}

// Copies the room layout. Markers and students are shared since moves only rearrange them
func (allocation *RoomAllocation) Clone() *RoomAllocation {
	return &RoomAllocation{
		Rooms: lo.Map(allocation.Rooms, func(room *Room, _ int) *Room {
			return &Room{
				Markers:  slices.Clone(room.Markers),
				Students: slices.Clone(room.Students),
			}
		}),
		StudentsPerRoom: allocation.StudentsPerRoom,
	}
}

func (room *Room) hasMarker(id string) bool {
	return lo.SomeBy(room.Markers, func(marker *Marker) bool { return marker.Id == id })
}

func (room *Room) academicCount() int {
	return lo.CountBy(room.Markers, func(marker *Marker) bool { return marker.Academic })
}

type Result struct {
	Success    bool
	Errors     []string
	Allocation *RoomAllocation
}

// Folds the validation errors into a single error, nil on success
func (result Result) Err() error {
	return multierr.Combine(lo.Map(result.Errors, func(message string, _ int) error { return errors.New(message) })...)
}
