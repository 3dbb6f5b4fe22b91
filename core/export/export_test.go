package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/schoolhub/console/core/school"
	"github.com/schoolhub/console/storage/fixtures"
)

func TestStudentsCSV(t *testing.T) {
	students := fixtures.Sample().Students[:2]
	students = append(students, school.Student{ID: "student-009", FirstName: "Ann, Jr.", LastName: `O"Neil`, Status: school.StatusInactive})

	var buf bytes.Buffer
	require.NoError(t, StudentsCSV(&buf, students))

	want := "ID,First Name,Last Name,Email,Grade,Class,Date of Birth,Status\n" +
		"student-001,Emma,Johnson,emma.j@school.edu,8th,8A,2008-03-15,active\n" +
		"student-002,Michael,Chen,michael.c@school.edu,9th,9B,2007-11-22,active\n" +
		"student-009,\"Ann, Jr.\",\"O\"\"Neil\",,,,,inactive\n"
	assert.Equal(t, want, buf.String())
}

func TestStudentsCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, StudentsCSV(&buf, nil))
	assert.Equal(t, "ID,First Name,Last Name,Email,Grade,Class,Date of Birth,Status\n", buf.String())
}

func TestStudentsXLSX(t *testing.T) {
	students := fixtures.Sample().Students

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, students))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{"student-003", "Sophia", "Rodriguez", "sophia.r@school.edu", "8th", "8A", "2008-07-08", "active"}, rows[3])
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 12, 16, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	assert.Equal(t, "students-2024-12-17.csv", FileName(FormatCSV, now))
	assert.Equal(t, "students-2024-12-17.xlsx", FileName(FormatXLSX, now))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatCSV},
		{in: "CSV", want: FormatCSV},
		{in: "xlsx", want: FormatXLSX},
		{in: "pdf", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "text/csv", FormatCSV.ContentType())
}
