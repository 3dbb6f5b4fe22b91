// Package studentform validates and submits the student create/edit form against the store.
package studentform

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/schoolhub/console/core/access"
	"github.com/schoolhub/console/core/form"
	"github.com/schoolhub/console/core/school"
	"github.com/schoolhub/console/core/store"
)

const (
	MsgCreated      = "Student created successfully"
	MsgUpdated      = "Student updated successfully"
	MsgCreateFailed = "Failed to create student"
	MsgUpdateFailed = "Failed to update student"

	dateLayout = "2006-01-02"
)

// Fields are the form fields, in display order.
var Fields = []string{
	"firstName", "lastName", "email", "phone", "dateOfBirth", "gender", "grade",
	"classId", "parentId", "address", "emergencyContact", "status", "notes",
}

var Rules = form.Rules{
	"firstName": "notblank",
	"lastName":  "notblank",
	"email":     "notblank,email",
	"grade":     "notblank",
	"classId":   "notblank",
	"parentId":  "notblank",
	"status":    "omitempty,status",
}

// InitialValues are the create-mode values: every field empty and status active.
func InitialValues() map[string]string {
	values := make(map[string]string, len(Fields))
	for _, f := range Fields {
		values[f] = ""
	}
	values["status"] = string(school.StatusActive)
	return values
}

// Values are the edit-mode values of s.
func Values(s school.Student) map[string]string {
	return map[string]string{
		"firstName":        s.FirstName,
		"lastName":         s.LastName,
		"email":            s.Email,
		"phone":            s.Phone,
		"dateOfBirth":      s.DateOfBirth,
		"gender":           s.Gender,
		"grade":            s.Grade,
		"classId":          s.ClassID,
		"parentId":         s.ParentID,
		"address":          s.Address,
		"emergencyContact": s.EmergencyContact,
		"status":           string(s.Status),
		"notes":            s.Notes,
	}
}

// Submit validates f and, when it passes, creates a student (editID empty) or updates
// student editID as role. Class and parent captions are resolved from the store at this
// moment; the enrollment date is kept on edit and set to now's date otherwise.
//
// A validation failure returns a *core.ValidationError and dispatches nothing. A rejected
// dispatch reports the failure message on the store and is returned.
func Submit(s *store.Store, role access.Role, f *form.State, editID string, now time.Time) (school.Student, error) {
	if !form.Validate(f, Rules) {
		return school.Student{}, f.Err()
	}

	f.SetSubmitting(true)
	s.Post(role, store.SetLoading{Loading: true})
	defer func() {
		f.SetSubmitting(false)
		s.Post(role, store.SetLoading{Loading: false})
	}()

	st := s.State()
	patch := patchFromValues(f.Values)
	className, parentName := "", ""
	if class, ok := st.ClassByID(f.Value("classId")); ok {
		className = class.Name
	}
	if parent, ok := st.ParentByID(f.Value("parentId")); ok {
		parentName = parent.FirstName + " " + parent.LastName
	}
	patch.ClassName, patch.ParentName = &className, &parentName

	if editID == "" {
		enrollment := now.UTC().Format(dateLayout)
		patch.EnrollmentDate = &enrollment
		student := school.Student{ID: uuid.NewString()}.Merge(patch)
		if err := s.Dispatch(role, store.AddStudent{Student: student}); err != nil {
			s.Post(role, store.SetError{Message: MsgCreateFailed})
			return school.Student{}, errors.Wrap(err, "creating student")
		}
		s.Post(role, store.SetSuccess{Message: MsgCreated})
		return student, nil
	}

	enrollment := now.UTC().Format(dateLayout)
	if existing, ok := st.StudentByID(editID); ok && existing.EnrollmentDate != "" {
		enrollment = existing.EnrollmentDate
	}
	patch.ID = editID
	patch.EnrollmentDate = &enrollment
	if err := s.Dispatch(role, store.UpdateStudent{Patch: patch}); err != nil {
		s.Post(role, store.SetError{Message: MsgUpdateFailed})
		return school.Student{}, errors.Wrap(err, "updating student")
	}
	s.Post(role, store.SetSuccess{Message: MsgUpdated})
	updated, _ := s.State().StudentByID(editID)
	return updated, nil
}

// patchFromValues carries every form field; fields outside the form (photo) stay untouched.
func patchFromValues(values map[string]string) school.StudentPatch {
	str := func(field string) *string {
		v := values[field]
		return &v
	}
	status := school.Status(values["status"])
	if status == "" {
		status = school.StatusActive
	}
	return school.StudentPatch{
		FirstName:        str("firstName"),
		LastName:         str("lastName"),
		Email:            str("email"),
		Phone:            str("phone"),
		DateOfBirth:      str("dateOfBirth"),
		Gender:           str("gender"),
		Grade:            str("grade"),
		ClassID:          str("classId"),
		ParentID:         str("parentId"),
		Address:          str("address"),
		EmergencyContact: str("emergencyContact"),
		Status:           &status,
		Notes:            str("notes"),
	}
}
