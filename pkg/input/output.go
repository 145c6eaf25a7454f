package input

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/limaJavier/allocation/pkg/marking"
	"github.com/limaJavier/allocation/pkg/matching"
	"github.com/samber/lo"
)

// Writes the students with their allocation, one row per student
func WriteStudentsCsv(writer io.Writer, students []*matching.Student) error {
	csvWriter := csv.NewWriter(writer)
	records := [][]string{{"id", "programme", "rank", "first choice", "second choice", "third choice", "fourth choice", "allocation"}}

	for _, student := range students {
		rank := ""
		if student.Rank != nil {
			rank = strconv.Itoa(*student.Rank)
		}
		choices := make([]string, matching.RequiredPreferences)
		copy(choices, student.Choices)

		record := append([]string{student.Id, student.Programme, rank}, choices...)
		records = append(records, append(record, student.Allocation))
	}

	if err := csvWriter.WriteAll(records); err != nil {
		return fmt.Errorf("write students: %w", err)
	}
	return nil
}

// Writes one column per room: its two markers then its students
func WriteRoomsCsv(writer io.Writer, allocation *marking.RoomAllocation) error {
	csvWriter := csv.NewWriter(writer)
	if len(allocation.Rooms) == 0 {
		return nil
	}

	columns := lo.Map(allocation.Rooms, func(room *marking.Room, _ int) []string {
		column := make([]string, marking.MarkersPerRoom)
		copy(column, lo.Map(room.Markers, func(marker *marking.Marker, _ int) string { return marker.Id }))
		return append(column, lo.Map(room.Students, func(student *marking.Student, _ int) string { return student.Id })...)
	})
	height := lo.Max(lo.Map(columns, func(column []string, _ int) int { return len(column) }))

	records := [][]string{lo.Times(len(columns), func(i int) string { return fmt.Sprintf("Room %v", i+1) })}
	for row := range height {
		records = append(records, lo.Map(columns, func(column []string, _ int) string {
			if row < len(column) {
				return column[row]
			}
			return ""
		}))
	}

	if err := csvWriter.WriteAll(records); err != nil {
		return fmt.Errorf("write rooms: %w", err)
	}
	return nil
}
