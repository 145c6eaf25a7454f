package marking

import (
	"slices"
)

// Two markers conflict when one supervises the other's PhD or either refuses to mark with the other
func conflicting(first *Marker, second *Marker) bool {
	return slices.Contains(first.PhdStudents, second.Id) ||
		slices.Contains(second.PhdStudents, first.Id) ||
		slices.Contains(first.NotMarkWith, second.Id) ||
		slices.Contains(second.NotMarkWith, first.Id)
}

// Whether marker may sit in room once leaving (nil for none) has left it
func canJoin(marker *Marker, room *Room, leaving *Marker) bool {
	for _, other := range room.Markers {
		if other != leaving && other != marker && conflicting(marker, other) {
			return false
		}
	}
	for _, student := range room.Students {
		if !acceptsMarker(student, marker) {
			return false
		}
	}
	return true
}

// A student may not be marked by their supervisor or by a marker they avoid
func acceptsMarker(student *Student, marker *Marker) bool {
	return student.Supervisor != marker.Id && !slices.Contains(student.MarkerAvoid, marker.Id)
}

// Whether student may sit in room
func studentFits(student *Student, room *Room) bool {
	for _, marker := range room.Markers {
		if !acceptsMarker(student, marker) {
			return false
		}
	}
	return true
}

// Maps every marker with a mandatory partner to that partner, in both directions
func partnersOf(markers []*Marker) map[string]string {
	partners := make(map[string]string)
	for _, marker := range markers {
		if marker.MarkWith != "" && marker.MarkWith != marker.Id {
			partners[marker.Id] = marker.MarkWith
			if _, ok := partners[marker.MarkWith]; !ok {
				partners[marker.MarkWith] = marker.Id
			}
		}
	}
	return partners
}
