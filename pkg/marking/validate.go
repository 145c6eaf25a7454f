package marking

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Collects every problem with the input. Room count and marker count problems are reported alone since nothing else can be checked meaningfully
func ValidateInput(markers []*Marker, students []*Student, roomCount int) []string {
	if roomCount < 1 {
		return []string{"Cannot allocate to fewer than 1 room"}
	}
	if len(markers) < roomCount*MarkersPerRoom {
		return []string{fmt.Sprintf("Cannot allocate to %v rooms. Only %v markers uploaded. There must be at least %v markers to allocate 2 per room.",
			roomCount, len(markers), roomCount*MarkersPerRoom)}
	}

	errors := make([]string, 0)
	markersById := lo.KeyBy(markers, func(marker *Marker) string { return marker.Id })
	partners := partnersOf(markers)

	for _, id := range lo.FindDuplicates(lo.Map(markers, func(marker *Marker, _ int) string { return marker.Id })) {
		errors = append(errors, fmt.Sprintf("Marker '%v' appears more than once.", id))
	}
	for _, id := range lo.FindDuplicates(lo.Map(students, func(student *Student, _ int) string { return student.Id })) {
		errors = append(errors, fmt.Sprintf("Student '%v' appears more than once.", id))
	}

	for _, marker := range markers {
		errors = append(errors, validateMarker(marker, markersById)...)
	}
	for _, student := range students {
		errors = append(errors, validateStudent(student, markersById, partners)...)
	}
	return errors
}

func validateMarker(marker *Marker, markersById map[string]*Marker) []string {
	errors := make([]string, 0)

	if marker.MarkWith != "" {
		partner, ok := markersById[marker.MarkWith]
		switch {
		case marker.MarkWith == marker.Id:
			errors = append(errors, fmt.Sprintf("Marker '%v' cannot mark with themselves.", marker.Id))
		case !ok:
			errors = append(errors, fmt.Sprintf("Marker '%v' must mark with '%v' who is not in list of known markers.", marker.Id, marker.MarkWith))
		case partner.MarkWith != "" && partner.MarkWith != marker.Id:
			errors = append(errors, fmt.Sprintf("Marker '%v' must mark with '%v' but '%v' must mark with '%v'.", marker.Id, partner.Id, partner.Id, partner.MarkWith))
		case conflicting(marker, partner):
			errors = append(errors, fmt.Sprintf("Marker '%v' must mark with '%v' but they cannot mark together.", marker.Id, partner.Id))
		}
	}

	for _, other := range marker.NotMarkWith {
		if _, ok := markersById[other]; !ok {
			errors = append(errors, fmt.Sprintf("Marker '%v' must not mark with '%v' who is not in list of known markers.", marker.Id, other))
		}
	}
	return errors
}

func validateStudent(student *Student, markersById map[string]*Marker, partners map[string]string) []string {
	errors := make([]string, 0)

	if _, ok := markersById[student.Supervisor]; !ok {
		errors = append(errors, fmt.Sprintf("Student '%v' has supervisor '%v' who is not in list of known markers.", student.Id, student.Supervisor))
	}

	if len(student.FixedMarkers) > MaxFixedMarkers {
		errors = append(errors, fmt.Sprintf("Student '%v' has %v fixed markers. At most %v fixed markers are allowed.", student.Id, len(student.FixedMarkers), MaxFixedMarkers))
	}
	for _, fixed := range lo.FindDuplicates(student.FixedMarkers) {
		errors = append(errors, fmt.Sprintf("Student '%v' lists fixed marker '%v' more than once.", student.Id, fixed))
	}
	for _, fixed := range student.FixedMarkers {
		partner := partners[fixed]
		switch _, ok := markersById[fixed]; {
		case !ok:
			errors = append(errors, fmt.Sprintf("Student '%v' has fixed marker '%v' who is not in list of known markers.", student.Id, fixed))
		case slices.Contains(student.MarkerAvoid, fixed):
			errors = append(errors, fmt.Sprintf("Student '%v' has marker '%v' as a fixed marker and as a marker to avoid.", student.Id, fixed))
		case fixed == student.Supervisor:
			errors = append(errors, fmt.Sprintf("Student '%v' has their supervisor '%v' as a fixed marker.", student.Id, fixed))
		// The partner always ends up in the same room
		case partner != "" && partner == student.Supervisor:
			errors = append(errors, fmt.Sprintf("Student '%v' has fixed marker '%v' who must mark with their supervisor '%v'.", student.Id, fixed, partner))
		case partner != "" && slices.Contains(student.MarkerAvoid, partner):
			errors = append(errors, fmt.Sprintf("Student '%v' has fixed marker '%v' who must mark with avoided marker '%v'.", student.Id, fixed, partner))
		}
	}

	for _, avoid := range student.MarkerAvoid {
		if _, ok := markersById[avoid]; !ok {
			errors = append(errors, fmt.Sprintf("Student '%v' avoids marker '%v' who is not in list of known markers.", student.Id, avoid))
		}
	}

	if len(student.FixedMarkers) == MaxFixedMarkers {
		first, firstOk := markersById[student.FixedMarkers[0]]
		second, secondOk := markersById[student.FixedMarkers[1]]
		if firstOk && secondOk && first != second && !canPair(first, second) {
			errors = append(errors, fmt.Sprintf("Student '%v' has fixed markers '%v' and '%v' who cannot mark together.", student.Id, first.Id, second.Id))
		}
	}
	return errors
}

// Whether two markers may form a room, given their partners and conflicts
func canPair(first *Marker, second *Marker) bool {
	if first.MarkWith != "" && first.MarkWith != second.Id {
		return false
	}
	if second.MarkWith != "" && second.MarkWith != first.Id {
		return false
	}
	return !conflicting(first, second)
}

// Overwrites every student's expertise with a copy of their supervisor's. Returns an error for each unknown supervisor
func AssignExpertise(markers []*Marker, students []*Student) []string {
	markersById := lo.KeyBy(markers, func(marker *Marker) string { return marker.Id })
	partners := partnersOf(markers)
	errors := make([]string, 0)
	for _, student := range students {
		supervisor, ok := markersById[student.Supervisor]
		if !ok {
			errors = append(errors, fmt.Sprintf("Student '%v' has supervisor '%v' who is not in list of known markers.", student.Id, student.Supervisor))
			continue
		}
		student.Expertise = slices.Clone(supervisor.Expertise)
	}
	return errors
}
