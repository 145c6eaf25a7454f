package marking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func academicMarkers(ids ...string) []*Marker {
	result := make([]*Marker, 0, len(ids))
	for _, id := range ids {
		result = append(result, &Marker{Id: id, Academic: true})
	}
	return result
}

func TestValidateRoomCount(t *testing.T) {
	assert.Equal(t, []string{"Cannot allocate to fewer than 1 room"}, ValidateInput(academicMarkers("a", "b"), []*Student{}, 0))
	assert.Equal(t, []string{"Cannot allocate to fewer than 1 room"}, ValidateInput(nil, nil, -3))
}

func TestValidateMarkerCount(t *testing.T) {
	errors := ValidateInput(academicMarkers("a", "b", "c"), []*Student{}, 2)

	assert.Equal(t, []string{"Cannot allocate to 2 rooms. Only 3 markers uploaded. There must be at least 4 markers to allocate 2 per room."}, errors)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	//** Arrange
	all := []*Marker{
		{Id: "A", MarkWith: "B"},
		{Id: "B", MarkWith: "C"},
		{Id: "C", NotMarkWith: []string{"Z"}},
		{Id: "D"},
	}
	students := []*Student{
		{Id: "s1", Supervisor: "Q"},
		{Id: "s2", Supervisor: "A", FixedMarkers: []string{"A", "B", "C"}, MarkerAvoid: []string{"B", "Y"}},
		{Id: "s3", Supervisor: "D", FixedMarkers: []string{"A", "C"}},
	}

	//** Act
	errors := ValidateInput(all, students, 2)

	//** Assert
	assert.Equal(t, []string{
		"Marker 'A' must mark with 'B' but 'B' must mark with 'C'.",
		"Marker 'C' must not mark with 'Z' who is not in list of known markers.",
		"Student 's1' has supervisor 'Q' who is not in list of known markers.",
		"Student 's2' has 3 fixed markers. At most 2 fixed markers are allowed.",
		"Student 's2' has their supervisor 'A' as a fixed marker.",
		"Student 's2' has marker 'B' as a fixed marker and as a marker to avoid.",
		"Student 's2' has fixed marker 'C' who must mark with avoided marker 'B'.",
		"Student 's2' avoids marker 'Y' who is not in list of known markers.",
		"Student 's3' has fixed markers 'A' and 'C' who cannot mark together.",
	}, errors)
}

func TestValidateMarkerReferences(t *testing.T) {
	all := []*Marker{
		{Id: "A", MarkWith: "A"},
		{Id: "B", MarkWith: "Ghost"},
		{Id: "C", MarkWith: "D"},
		{Id: "D", PhdStudents: []string{"C"}},
		{Id: "A"},
	}
	students := []*Student{
		{Id: "s", Supervisor: "A", FixedMarkers: []string{"B", "B", "Ghost"}},
		{Id: "s", Supervisor: "A"},
	}

	errors := ValidateInput(all, students, 1)

	assert.Equal(t, []string{
		"Marker 'A' appears more than once.",
		"Student 's' appears more than once.",
		"Marker 'A' cannot mark with themselves.",
		"Marker 'B' must mark with 'Ghost' who is not in list of known markers.",
		"Marker 'C' must mark with 'D' but they cannot mark together.",
		"Student 's' has 3 fixed markers. At most 2 fixed markers are allowed.",
		"Student 's' lists fixed marker 'B' more than once.",
		"Student 's' has fixed marker 'Ghost' who is not in list of known markers.",
	}, errors)
}

func TestValidateAcceptsConsistentPairs(t *testing.T) {
	all := []*Marker{
		{Id: "A", MarkWith: "B"},
		{Id: "B", MarkWith: "A"},
		{Id: "C", MarkWith: "D"},
		{Id: "D", NotMarkWith: []string{"A"}},
	}
	students := []*Student{
		{Id: "s1", Supervisor: "C", FixedMarkers: []string{"A", "B"}, MarkerAvoid: []string{"D"}},
		{Id: "s2", Supervisor: "A", FixedMarkers: []string{"D"}},
	}

	assert.Empty(t, ValidateInput(all, students, 2))
}

func TestValidateFixedMarkerPartners(t *testing.T) {
	all := []*Marker{
		{Id: "A", MarkWith: "B"},
		{Id: "B"},
		{Id: "C", MarkWith: "D"},
		{Id: "D", MarkWith: "C"},
	}
	students := []*Student{
		{Id: "s1", Supervisor: "A", FixedMarkers: []string{"B"}},
		{Id: "s2", Supervisor: "A", FixedMarkers: []string{"D"}, MarkerAvoid: []string{"C"}},
		{Id: "s3", Supervisor: "B", FixedMarkers: []string{"C"}},
	}

	errors := ValidateInput(all, students, 2)

	assert.Equal(t, []string{
		"Student 's1' has fixed marker 'B' who must mark with their supervisor 'A'.",
		"Student 's2' has fixed marker 'D' who must mark with avoided marker 'C'.",
	}, errors)
}

func TestAssignExpertise(t *testing.T) {
	all := []*Marker{{Id: "A", Expertise: []string{"ai", "ml"}}, {Id: "B"}}
	students := []*Student{
		{Id: "s1", Supervisor: "A", Expertise: []string{"self declared"}},
		{Id: "s2", Supervisor: "B", Expertise: []string{"self declared"}},
		{Id: "s3", Supervisor: "Q"},
	}

	errors := AssignExpertise(all, students)

	assert.Equal(t, []string{"Student 's3' has supervisor 'Q' who is not in list of known markers."}, errors)
	assert.Equal(t, []string{"ai", "ml"}, students[0].Expertise)
	assert.Empty(t, students[1].Expertise)

	// Each student owns a copy
	students[0].Expertise[0] = "changed"
	assert.Equal(t, "ai", all[0].Expertise[0])
}
