// Package export renders student lists as CSV or XLSX downloads.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/schoolhub/console/core/school"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"

	SheetName = "Students"

	MsgExported = "Students exported successfully"
)

var (
	Header = []string{"ID", "First Name", "Last Name", "Email", "Grade", "Class", "Date of Birth", "Status"}

	ErrUnknownFormat = errors.New("unknown export format")
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// FileName is students-<YYYY-MM-DD>.<ext> for the UTC date of now.
func FileName(f Format, now time.Time) string {
	return fmt.Sprintf("students-%s.%s", now.UTC().Format("2006-01-02"), f)
}

func row(s school.Student) []string {
	return []string{s.ID, s.FirstName, s.LastName, s.Email, s.Grade, s.ClassName, s.DateOfBirth, string(s.Status)}
}

// Write renders students in format f to w.
func Write(w io.Writer, f Format, students []school.Student) error {
	switch f {
	case FormatCSV:
		return StudentsCSV(w, students)
	case FormatXLSX:
		return StudentsXLSX(w, students)
	}
	return errors.Wrapf(ErrUnknownFormat, "%q", f)
}

// StudentsCSV writes the header and one row per student. Fields holding commas,
// quotes or newlines are quoted.
func StudentsCSV(w io.Writer, students []school.Student) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return errors.Wrap(err, "writing csv header")
	}
	for _, s := range students {
		if err := cw.Write(row(s)); err != nil {
			return errors.Wrapf(err, "writing csv row %s", s.ID)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing csv")
}

// StudentsXLSX writes a workbook with a single Students sheet laid out like the CSV.
func StudentsXLSX(w io.Writer, students []school.Student) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = errors.Wrap(cErr, "closing workbook")
		}
	}()

	if err = f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return errors.Wrap(err, "naming sheet")
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return errors.Wrap(err, "opening sheet writer")
	}
	if err = sw.SetRow("A1", toCells(Header), excelize.RowOpts{}); err != nil {
		return errors.Wrap(err, "writing header")
	}
	for i, s := range students {
		cell, cErr := excelize.CoordinatesToCellName(1, i+2)
		if cErr != nil {
			return errors.Wrap(cErr, "computing cell name")
		}
		if err = sw.SetRow(cell, toCells(row(s))); err != nil {
			return errors.Wrapf(err, "writing row %s", s.ID)
		}
	}
	if err = sw.Flush(); err != nil {
		return errors.Wrap(err, "flushing sheet")
	}
	if _, err = f.WriteTo(w); err != nil {
		return errors.Wrap(err, "writing workbook")
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
