package marking

import (
	"fmt"

	"github.com/limaJavier/allocation/pkg/progress"
	"github.com/samber/lo"
)

// Reports per room and overall statistics of an allocation
func SummariseRoomAllocation(allocation *RoomAllocation, sink progress.Sink) {
	sink = progress.OrNop(sink)

	var (
		totalStudents                   int
		totalAcademicMarkers            int
		totalStudentsWithSupervisor     int
		totalStudentsWithSameSupervisor int
		totalExpertiseCoveredByOne      int
		totalExpertiseCoveredByBoth     int
	)

	for index, room := range allocation.Rooms {
		students := len(room.Students)
		academicMarkers := room.academicCount()
		withSupervisor := lo.CountBy(room.Students, func(student *Student) bool { return room.hasMarker(student.Supervisor) })
		sameSupervisor := lo.CountBy(lo.Values(lo.CountValuesBy(room.Students, func(student *Student) string { return student.Supervisor })), func(count int) bool {
			return count > 1
		})
		coveredByOne := lo.CountBy(room.Students, func(student *Student) bool { return expertiseMatches(room, student) > 0 })
		coveredByBoth := lo.CountBy(room.Students, func(student *Student) bool {
			return len(room.Markers) > 0 && expertiseMatches(room, student) == len(room.Markers)
		})

		totalStudents += students
		totalAcademicMarkers += academicMarkers
		totalStudentsWithSupervisor += withSupervisor
		totalStudentsWithSameSupervisor += sameSupervisor
		totalExpertiseCoveredByOne += coveredByOne
		totalExpertiseCoveredByBoth += coveredByBoth

		sink.Report(fmt.Sprintf("Room %v:", index+1))
		sink.Report(fmt.Sprintf("  - Number of students: %v", students))
		sink.Report(fmt.Sprintf("  - Number of markers: %v/%v (academic/total)", academicMarkers, len(room.Markers)))
		sink.Report(fmt.Sprintf("  - Students with their supervisor in the room: %v/%v", withSupervisor, students))
		sink.Report(fmt.Sprintf("  - Students with the same supervisor: %v", sameSupervisor))
		sink.Report(fmt.Sprintf("  - Expertise covered by at least one marker: %v/%v", coveredByOne, students))
		sink.Report(fmt.Sprintf("  - Expertise covered by both markers: %v/%v", coveredByBoth, students))
		sink.Report("")
	}

	sink.Report("Overall Summary:")
	sink.Report(fmt.Sprintf("  - Total students: %v", totalStudents))
	sink.Report(fmt.Sprintf("  - Total rooms: %v", len(allocation.Rooms)))
	sink.Report(fmt.Sprintf("  - Total academic markers: %v", totalAcademicMarkers))
	sink.Report(fmt.Sprintf("  - Total students with their supervisor in the room: %v", totalStudentsWithSupervisor))
	sink.Report(fmt.Sprintf("  - Total students with the same supervisor in the room: %v", totalStudentsWithSameSupervisor))
	sink.Report(fmt.Sprintf("  - Students whose expertise is covered by at least one marker: %v", percentage(totalExpertiseCoveredByOne, totalStudents)))
	sink.Report(fmt.Sprintf("  - Students whose expertise is covered by both markers: %v", percentage(totalExpertiseCoveredByBoth, totalStudents)))
}

// Two decimal percentage, NaN% when total is zero
func percentage(count int, total int) string {
	return fmt.Sprintf("%.2f%%", float64(count)*100/float64(total))
}
