package school

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolhub/console/core"
)

func strPtr(s string) *string { return &s }

func TestStudentMerge(t *testing.T) {
	orig := Student{
		ID:        "student-001",
		FirstName: "Emma",
		LastName:  "Johnson",
		Email:     "emma.johnson@school.com",
		Grade:     "8th",
		ClassID:   "class-001",
		Status:    StatusActive,
	}
	graduated := StatusGraduated

	tests := []struct {
		name  string
		patch StudentPatch
		want  Student
	}{
		{
			name:  "empty patch keeps everything",
			patch: StudentPatch{ID: "student-001"},
			want:  orig,
		},
		{
			name:  "present fields replace",
			patch: StudentPatch{ID: "student-001", Grade: strPtr("9th"), Status: &graduated},
			want: func() Student {
				s := orig
				s.Grade = "9th"
				s.Status = StatusGraduated
				return s
			}(),
		},
		{
			name:  "empty string is a value",
			patch: StudentPatch{ID: "student-001", Email: strPtr("")},
			want: func() Student {
				s := orig
				s.Email = ""
				return s
			}(),
		},
		{
			name:  "id never changes",
			patch: StudentPatch{ID: "student-999", FirstName: strPtr("Emily")},
			want: func() Student {
				s := orig
				s.FirstName = "Emily"
				return s
			}(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orig.Merge(tt.patch))
		})
	}
}

func TestPatchFromRoundTrips(t *testing.T) {
	s := Student{ID: "student-002", FirstName: "Michael", LastName: "Chen", Status: StatusActive}
	assert.Equal(t, s, Student{ID: "student-002"}.Merge(PatchFrom(s)))
}

func TestSliceMergeReplacesWholesale(t *testing.T) {
	teacher := Teacher{ID: "teacher-001", Subjects: []string{"Mathematics", "Physics"}}
	merged := teacher.Merge(TeacherPatch{ID: "teacher-001", Subjects: []string{"Chemistry"}})
	assert.Equal(t, []string{"Chemistry"}, merged.Subjects)
	assert.Equal(t, []string{"Mathematics", "Physics"}, teacher.Subjects)

	parent := Parent{ID: "parent-001", StudentIDs: []string{"student-001"}}
	assert.Equal(t, []string{"student-001"}, parent.Merge(ParentPatch{ID: "parent-001"}).StudentIDs)

	capacity := 32
	class := Class{ID: "class-001", Name: "8A", Capacity: 30, StudentsCount: 25}
	merged2 := class.Merge(ClassPatch{ID: "class-001", Capacity: &capacity})
	assert.Equal(t, 32, merged2.Capacity)
	assert.Equal(t, 25, merged2.StudentsCount)
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "John Johnson", Parent{FirstName: "John", LastName: "Johnson"}.FullName())
	assert.Equal(t, "Sarah", Teacher{FirstName: "Sarah"}.FullName())
}

func TestStatusValidation(t *testing.T) {
	tests := []struct {
		name    string
		teacher Teacher
		field   string
	}{
		{name: "valid", teacher: Teacher{FirstName: "Sarah", LastName: "Williams", Status: StatusActive}},
		{name: "status omitted", teacher: Teacher{FirstName: "Sarah", LastName: "Williams"}},
		{name: "unknown status", teacher: Teacher{FirstName: "Sarah", LastName: "Williams", Status: "retired"}, field: "status"},
		{name: "blank name", teacher: Teacher{FirstName: "  ", LastName: "Williams"}, field: "firstName"},
		{name: "bad email", teacher: Teacher{FirstName: "Sarah", LastName: "Williams", Email: "nope"}, field: "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := core.Validate.Struct(tt.teacher)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			flds, ok := core.FieldErrors(err)
			require.True(t, ok)
			require.Len(t, flds, 1)
			assert.Equal(t, tt.field, flds[0].Field)
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, st := range AllStatuses {
		assert.True(t, st.Valid())
	}
	assert.False(t, Status("").Valid())
	assert.False(t, Status("Active").Valid())
}
