package marking

import (
	"fmt"
	"math"
	"slices"

	"github.com/limaJavier/allocation/pkg/progress"
	"github.com/limaJavier/allocation/pkg/random"
	"github.com/samber/lo"
)

type solutionBuilder struct {
	source   random.Source
	sink     progress.Sink
	rooms    []*Room
	markers  map[string]*Marker
	partners map[string]string
	// Room currently holding each placed marker
	roomOf map[string]*Room
	// Next room tried when placing students round-robin
	cursor int
}

// Builds a randomised allocation respecting fixed markers, marker pairs and as many hard constraints as it can.
// Returns an error for every student or marker pair that could not be kept together
func buildInitialSolution(markers []*Marker, students []*Student, roomCount int, source random.Source, sink progress.Sink) (*RoomAllocation, []string) {
	builder := &solutionBuilder{
		source:   source,
		sink:     progress.OrNop(sink),
		rooms:    lo.Times(roomCount, func(_ int) *Room { return &Room{Markers: []*Marker{}, Students: []*Student{}} }),
		markers:  lo.KeyBy(markers, func(marker *Marker) string { return marker.Id }),
		partners: partnersOf(markers),
		roomOf:   make(map[string]*Room),
	}
	errors := make([]string, 0)

	byFixedCount := lo.GroupBy(students, func(student *Student) int { return len(student.FixedMarkers) })

	//** Students with two fixed markers get a room with both of them
	for _, student := range byFixedCount[2] {
		first, second := builder.markers[student.FixedMarkers[0]], builder.markers[student.FixedMarkers[1]]
		room, ok := builder.placeTogether(first, second)
		if !ok {
			errors = append(errors, fmt.Sprintf("Unable to place student '%v' in one room with fixed markers '%v' and '%v'.", student.Id, first.Id, second.Id))
			continue
		}
		room.Students = append(room.Students, student)
	}

	//** Students with one fixed marker join that marker, bringing its partner along
	for _, student := range byFixedCount[1] {
		marker := builder.markers[student.FixedMarkers[0]]
		room, ok := builder.placeMarker(marker, student)
		if !ok {
			errors = append(errors, fmt.Sprintf("Unable to place student '%v' in a room with fixed marker '%v'.", student.Id, marker.Id))
			continue
		}
		if !studentFits(student, room) {
			builder.sink.Report(fmt.Sprintf("Student '%v' could not be placed with fixed marker '%v' without a conflict", student.Id, marker.Id))
		}
		room.Students = append(room.Students, student)
	}

	//** Remaining marker pairs
	failed := make(map[string]bool)
	for _, marker := range markers {
		partnerId, ok := builder.partners[marker.Id]
		if !ok || failed[partnerId] || builder.placed(marker) && builder.placed(builder.markers[partnerId]) {
			continue
		}
		if _, ok := builder.placeTogether(marker, builder.markers[partnerId]); !ok {
			failed[marker.Id] = true
			errors = append(errors, fmt.Sprintf("Unable to place marker '%v' in one room with '%v'.", marker.Id, partnerId))
		}
	}
	if len(errors) > 0 {
		return nil, errors
	}

	//** Every other marker fills the free slots, academics first
	builder.fillMarkerSlots(markers)

	//** Students without fixed markers
	studentsPerRoom := float64(len(students)) / float64(roomCount)
	for _, student := range random.ShuffleSlice(source, byFixedCount[0]) {
		builder.placeStudent(student, int(math.Floor(studentsPerRoom)))
	}

	return &RoomAllocation{Rooms: builder.rooms, StudentsPerRoom: studentsPerRoom}, nil
}

func (builder *solutionBuilder) placed(marker *Marker) bool {
	_, ok := builder.roomOf[marker.Id]
	return ok
}

func (builder *solutionBuilder) place(marker *Marker, room *Room) {
	room.Markers = append(room.Markers, marker)
	builder.roomOf[marker.Id] = room
}

func (builder *solutionBuilder) emptyRoom() (*Room, bool) {
	return lo.Find(builder.rooms, func(room *Room) bool { return len(room.Markers) == 0 })
}

// Puts both markers in the same room, reusing the room of whichever is already placed
func (builder *solutionBuilder) placeTogether(first *Marker, second *Marker) (*Room, bool) {
	firstRoom, firstPlaced := builder.roomOf[first.Id]
	secondRoom, secondPlaced := builder.roomOf[second.Id]

	switch {
	case firstPlaced && secondPlaced:
		return firstRoom, firstRoom == secondRoom
	case firstPlaced:
		if len(firstRoom.Markers) >= MarkersPerRoom {
			return nil, false
		}
		builder.place(second, firstRoom)
		return firstRoom, true
	case secondPlaced:
		if len(secondRoom.Markers) >= MarkersPerRoom {
			return nil, false
		}
		builder.place(first, secondRoom)
		return secondRoom, true
	}

	room, ok := builder.emptyRoom()
	if !ok {
		return nil, false
	}
	builder.place(first, room)
	builder.place(second, room)
	return room, true
}

// Places a single marker together with its partner if it has one. An unpartnered marker prefers an empty room
// as long as enough empty rooms stay free for the pairs still to be placed, then any free slot legal for it and the student
func (builder *solutionBuilder) placeMarker(marker *Marker, student *Student) (*Room, bool) {
	if room, ok := builder.roomOf[marker.Id]; ok {
		return room, true
	}
	if partnerId, ok := builder.partners[marker.Id]; ok {
		return builder.placeTogether(marker, builder.markers[partnerId])
	}

	empty := lo.CountBy(builder.rooms, func(room *Room) bool { return len(room.Markers) == 0 })
	if empty > builder.pendingPairs() {
		room, _ := builder.emptyRoom()
		builder.place(marker, room)
		return room, true
	}

	room, ok := lo.Find(builder.rooms, func(room *Room) bool {
		return len(room.Markers) > 0 && len(room.Markers) < MarkersPerRoom &&
			lo.EveryBy(room.Markers, func(other *Marker) bool { return builder.partners[other.Id] == "" }) &&
			canJoin(marker, room, nil) &&
			studentFits(student, room)
	})
	if !ok {
		// Taking the room of a pair reports the pair instead
		if room, ok = builder.emptyRoom(); !ok {
			return nil, false
		}
	}
	builder.place(marker, room)
	return room, true
}

// Number of marker pairs with neither marker placed, each needing an empty room of its own
func (builder *solutionBuilder) pendingPairs() int {
	pending := 0
	for id, partnerId := range builder.partners {
		_, idPlaced := builder.roomOf[id]
		_, partnerPlaced := builder.roomOf[partnerId]
		if id < partnerId && !idPlaced && !partnerPlaced {
			pending++
		}
	}
	return pending
}

func (builder *solutionBuilder) fillMarkerSlots(markers []*Marker) {
	remaining := random.ShuffleSlice(builder.source, lo.Filter(markers, func(marker *Marker, _ int) bool { return !builder.placed(marker) }))
	// Markers with more conflicts go first while there are still many slots to choose from
	conflicts := lo.SliceToMap(remaining, func(marker *Marker) (string, int) {
		return marker.Id, lo.CountBy(markers, func(other *Marker) bool { return other != marker && conflicting(marker, other) })
	})
	slices.SortStableFunc(remaining, func(first *Marker, second *Marker) int {
		return conflicts[second.Id] - conflicts[first.Id]
	})

	take := func(room *Room, eligible func(*Marker) bool) bool {
		index := slices.IndexFunc(remaining, func(marker *Marker) bool { return eligible(marker) && canJoin(marker, room, nil) })
		if index == -1 {
			index = slices.IndexFunc(remaining, eligible)
		}
		if index == -1 {
			return false
		}
		builder.place(remaining[index], room)
		remaining = slices.Delete(remaining, index, index+1)
		return true
	}

	for _, room := range builder.rooms {
		if len(room.Markers) < MarkersPerRoom && room.academicCount() == 0 {
			take(room, func(marker *Marker) bool { return marker.Academic })
		}
	}
	for _, room := range builder.rooms {
		for len(room.Markers) < MarkersPerRoom && take(room, func(*Marker) bool { return true }) {
		}
	}
}

// Puts the student in the next room, round-robin, that is below the limit and legal for them, preferring rooms without another student of the same supervisor.
// The limit is relaxed by one and then lifted before resorting to the smallest room
func (builder *solutionBuilder) placeStudent(student *Student, target int) {
	sameSupervisor := func(room *Room) bool {
		return lo.SomeBy(room.Students, func(other *Student) bool { return other.Supervisor == student.Supervisor })
	}

	for _, limit := range []int{target, target + 1, math.MaxInt} {
		for _, avoidSameSupervisor := range []bool{true, false} {
			for offset := range builder.rooms {
				index := (builder.cursor + offset) % len(builder.rooms)
				room := builder.rooms[index]
				if len(room.Students) >= limit || !studentFits(student, room) || avoidSameSupervisor && sameSupervisor(room) {
					continue
				}
				room.Students = append(room.Students, student)
				builder.cursor = index + 1
				return
			}
		}
	}

	room := lo.MinBy(builder.rooms, func(room *Room, min *Room) bool { return len(room.Students) < len(min.Students) })
	room.Students = append(room.Students, student)
	builder.sink.Report(fmt.Sprintf("Student '%v' could not be placed without a conflict", student.Id))
}
