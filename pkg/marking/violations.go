package marking

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Lists every hard constraint the allocation breaks: marker conflicts, students marked by their supervisor or an avoided marker, and separated marker pairs or markers placed twice
func Violations(allocation *RoomAllocation) []string {
	violations := make([]string, 0)
	roomOf := make(map[string]int)
	markers := make([]*Marker, 0)

	for index, room := range allocation.Rooms {
		number := index + 1
		for i, marker := range room.Markers {
			roomOf[marker.Id] = number
			markers = append(markers, marker)

			for _, other := range room.Markers[i+1:] {
				switch {
				case slices.Contains(marker.PhdStudents, other.Id):
					violations = append(violations, fmt.Sprintf("Room %v: marker '%v' marks with their PhD student '%v'", number, marker.Id, other.Id))
				case slices.Contains(other.PhdStudents, marker.Id):
					violations = append(violations, fmt.Sprintf("Room %v: marker '%v' marks with their PhD student '%v'", number, other.Id, marker.Id))
				case slices.Contains(marker.NotMarkWith, other.Id) || slices.Contains(other.NotMarkWith, marker.Id):
					violations = append(violations, fmt.Sprintf("Room %v: markers '%v' and '%v' must not mark together", number, marker.Id, other.Id))
				}
			}
		}

		for _, student := range room.Students {
			if room.hasMarker(student.Supervisor) {
				violations = append(violations, fmt.Sprintf("Room %v: student '%v' is marked by their supervisor '%v'", number, student.Id, student.Supervisor))
			}
			for _, avoid := range student.MarkerAvoid {
				if room.hasMarker(avoid) {
					violations = append(violations, fmt.Sprintf("Room %v: student '%v' is marked by avoided marker '%v'", number, student.Id, avoid))
				}
			}
		}
	}

	for _, marker := range markers {
		partnerRoom, ok := roomOf[marker.MarkWith]
		if marker.MarkWith != "" && ok && partnerRoom != roomOf[marker.Id] {
			violations = append(violations, fmt.Sprintf("Marker '%v' must mark with '%v' but they are in rooms %v and %v", marker.Id, marker.MarkWith, roomOf[marker.Id], partnerRoom))
		}
	}
	for _, id := range lo.FindDuplicates(lo.Map(markers, func(marker *Marker, _ int) string { return marker.Id })) {
		violations = append(violations, fmt.Sprintf("Marker '%v' is placed more than once", id))
	}
	return violations
}
