package marking

import (
	"github.com/limaJavier/allocation/pkg/random"
)

// Neighbourhood of a room allocation: marker swaps and student swaps between two rooms
type roomProblem struct {
	scores   Scores
	source   random.Source
	partners map[string]string
}

func newRoomProblem(markers []*Marker, scores Scores, source random.Source) *roomProblem {
	return &roomProblem{
		scores:   scores,
		source:   source,
		partners: partnersOf(markers),
	}
}

func (problem *roomProblem) Energy(allocation *RoomAllocation) float64 {
	return float64(ScoreRoomAllocation(allocation, problem.scores))
}

// Picks marker swap or student swap with equal odds and tries up to MoveAttempts random room pairs for a legal one.
// The given allocation is never modified
func (problem *roomProblem) Propose(allocation *RoomAllocation) (*RoomAllocation, bool) {
	if len(allocation.Rooms) < 2 {
		return allocation, false
	}

	neighbour := allocation.Clone()
	swap := problem.swapMarkers
	if problem.source.Float64() >= 0.5 {
		swap = problem.swapStudents
	}

	for range MoveAttempts {
		first, second := random.TwoDistinctIndices(problem.source, len(neighbour.Rooms))
		if swap(neighbour.Rooms[first], neighbour.Rooms[second]) {
			return neighbour, true
		}
	}
	return allocation, false
}

func (problem *roomProblem) swapMarkers(first *Room, second *Room) bool {
	if len(first.Markers) == 0 || len(second.Markers) == 0 {
		return false
	}
	i, j := problem.source.Intn(len(first.Markers)), problem.source.Intn(len(second.Markers))
	if !problem.canSwapMarkers(first, second, first.Markers[i], second.Markers[j]) {
		return false
	}
	first.Markers[i], second.Markers[j] = second.Markers[j], first.Markers[i]
	return true
}

// A swap is illegal when it:
// - Involves a marker with a mandatory partner
// - Leaves either room without an academic marker it had before
// - Puts a marker with someone it conflicts with
// - Puts a marker in front of a student they supervise or who avoids them
func (problem *roomProblem) canSwapMarkers(first *Room, second *Room, outgoing *Marker, incoming *Marker) bool {
	if problem.partners[outgoing.Id] != "" || problem.partners[incoming.Id] != "" {
		return false
	}
	if losesAcademic(first, outgoing, incoming) || losesAcademic(second, incoming, outgoing) {
		return false
	}
	return canJoin(incoming, first, outgoing) && canJoin(outgoing, second, incoming)
}

func losesAcademic(room *Room, outgoing *Marker, incoming *Marker) bool {
	return outgoing.Academic && !incoming.Academic && room.academicCount() == 1
}

func (problem *roomProblem) swapStudents(first *Room, second *Room) bool {
	if len(first.Students) == 0 || len(second.Students) == 0 {
		return false
	}
	i, j := problem.source.Intn(len(first.Students)), problem.source.Intn(len(second.Students))
	if !studentFits(first.Students[i], second) || !studentFits(second.Students[j], first) {
		return false
	}
	first.Students[i], second.Students[j] = second.Students[j], first.Students[i]
	return true
}
