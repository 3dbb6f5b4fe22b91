// Package school holds the console's domain records: students, teachers, classes,
// parents and notifications, plus the partial records used for non-destructive updates.
package school

import (
	"strings"
	"time"
)

type Status string

const (
	StatusActive      Status = "active"
	StatusInactive    Status = "inactive"
	StatusSuspended   Status = "suspended"
	StatusGraduated   Status = "graduated"
	StatusTransferred Status = "transferred"
)

var AllStatuses = []Status{StatusActive, StatusInactive, StatusSuspended, StatusGraduated, StatusTransferred}

func (s Status) Valid() bool {
	for _, st := range AllStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// Entity is anything keyed by an opaque, immutable id.
type Entity interface {
	GetID() string
}

type Student struct {
	ID               string `json:"id" yaml:"id"`
	FirstName        string `json:"firstName" yaml:"firstName"`
	LastName         string `json:"lastName" yaml:"lastName"`
	Email            string `json:"email" yaml:"email"`
	Phone            string `json:"phone" yaml:"phone"`
	DateOfBirth      string `json:"dateOfBirth" yaml:"dateOfBirth"` // YYYY-MM-DD
	Gender           string `json:"gender" yaml:"gender"`
	Grade            string `json:"grade" yaml:"grade"`
	ClassID          string `json:"classId" yaml:"classId"`
	ClassName        string `json:"className" yaml:"className"`
	ParentID         string `json:"parentId" yaml:"parentId"`
	ParentName       string `json:"parentName" yaml:"parentName"`
	Address          string `json:"address" yaml:"address"`
	EmergencyContact string `json:"emergencyContact" yaml:"emergencyContact"`
	EnrollmentDate   string `json:"enrollmentDate" yaml:"enrollmentDate"` // YYYY-MM-DD
	Status           Status `json:"status" yaml:"status"`
	Photo            string `json:"photo,omitempty" yaml:"photo,omitempty"`
	Notes            string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func (s Student) GetID() string    { return s.ID }
func (s Student) FullName() string { return fullName(s.FirstName, s.LastName) }
func (s Student) Clone() Student   { return s }

type Teacher struct {
	ID               string   `json:"id" yaml:"id"`
	FirstName        string   `json:"firstName" yaml:"firstName" validate:"notblank"`
	LastName         string   `json:"lastName" yaml:"lastName" validate:"notblank"`
	Email            string   `json:"email" yaml:"email" validate:"omitempty,email"`
	Phone            string   `json:"phone" yaml:"phone"`
	DateOfBirth      string   `json:"dateOfBirth" yaml:"dateOfBirth"`
	Gender           string   `json:"gender" yaml:"gender"`
	Department       string   `json:"department" yaml:"department"`
	Subjects         []string `json:"subjects" yaml:"subjects"`
	HireDate         string   `json:"hireDate" yaml:"hireDate"`
	Qualification    string   `json:"qualification" yaml:"qualification"`
	Status           Status   `json:"status" yaml:"status" validate:"omitempty,status"`
	Photo            string   `json:"photo,omitempty" yaml:"photo,omitempty"`
	Address          string   `json:"address" yaml:"address"`
	EmergencyContact string   `json:"emergencyContact" yaml:"emergencyContact"`
	Notes            string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func (t Teacher) GetID() string    { return t.ID }
func (t Teacher) FullName() string { return fullName(t.FirstName, t.LastName) }

// Clone returns a copy of t that shares no slices with it.
func (t Teacher) Clone() Teacher {
	t.Subjects = cloneStrings(t.Subjects)
	return t
}

type Class struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name" validate:"notblank"`
	Grade         string   `json:"grade" yaml:"grade"`
	TeacherID     string   `json:"teacherId" yaml:"teacherId"`
	TeacherName   string   `json:"teacherName" yaml:"teacherName"`
	Room          string   `json:"room" yaml:"room"`
	Capacity      int      `json:"capacity" yaml:"capacity" validate:"min=0"`
	StudentsCount int      `json:"studentsCount" yaml:"studentsCount" validate:"min=0"`
	Subjects      []string `json:"subjects" yaml:"subjects"`
	Schedule      string   `json:"schedule" yaml:"schedule"`
	Status        Status   `json:"status" yaml:"status" validate:"omitempty,status"`
}

func (c Class) GetID() string { return c.ID }

// Clone returns a copy of c that shares no slices with it.
func (c Class) Clone() Class {
	c.Subjects = cloneStrings(c.Subjects)
	return c
}

type Parent struct {
	ID               string   `json:"id" yaml:"id"`
	FirstName        string   `json:"firstName" yaml:"firstName" validate:"notblank"`
	LastName         string   `json:"lastName" yaml:"lastName" validate:"notblank"`
	Email            string   `json:"email" yaml:"email" validate:"omitempty,email"`
	Phone            string   `json:"phone" yaml:"phone"`
	Relationship     string   `json:"relationship" yaml:"relationship"`
	StudentIDs       []string `json:"studentIds" yaml:"studentIds"`
	Address          string   `json:"address" yaml:"address"`
	EmergencyContact string   `json:"emergencyContact" yaml:"emergencyContact"`
	Status           Status   `json:"status" yaml:"status" validate:"omitempty,status"`
}

func (p Parent) GetID() string    { return p.ID }
func (p Parent) FullName() string { return fullName(p.FirstName, p.LastName) }

// Clone returns a copy of p that shares no slices with it.
func (p Parent) Clone() Parent {
	p.StudentIDs = cloneStrings(p.StudentIDs)
	return p
}

type RecipientType string

const (
	RecipientAll     RecipientType = "all"
	RecipientStudent RecipientType = "student"
	RecipientTeacher RecipientType = "teacher"
	RecipientParent  RecipientType = "parent"
	RecipientAdmin   RecipientType = "admin"
)

type Notification struct {
	ID            string        `json:"id" yaml:"id"`
	Title         string        `json:"title" yaml:"title"`
	Message       string        `json:"message" yaml:"message"`
	Type          string        `json:"type" yaml:"type"` // grade, event, info, ...
	RecipientID   string        `json:"recipientId" yaml:"recipientId"`
	RecipientType RecipientType `json:"recipientType" yaml:"recipientType"`
	IsRead        bool          `json:"isRead" yaml:"isRead"`
	CreatedAt     time.Time     `json:"createdAt" yaml:"createdAt"` // UTC
}

func (n Notification) GetID() string       { return n.ID }
func (n Notification) Clone() Notification { return n }

// NewNotification is the caller-supplied part of a Notification; id, read flag and
// creation time are assigned by the store.
type NewNotification struct {
	Title         string        `json:"title" validate:"notblank"`
	Message       string        `json:"message" validate:"notblank"`
	Type          string        `json:"type"`
	RecipientID   string        `json:"recipientId"`
	RecipientType RecipientType `json:"recipientType" validate:"omitempty,oneof=all student teacher parent admin"`
}

// Dataset is the bulk seed shape loaded at startup.
type Dataset struct {
	Students      []Student      `json:"students" yaml:"students"`
	Teachers      []Teacher      `json:"teachers" yaml:"teachers"`
	Classes       []Class        `json:"classes" yaml:"classes"`
	Parents       []Parent       `json:"parents" yaml:"parents"`
	Notifications []Notification `json:"notifications" yaml:"notifications"`
}

func cloneStrings(ss []string) []string {
	if ss == nil {
		return nil
	}
	return append([]string{}, ss...)
}

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
