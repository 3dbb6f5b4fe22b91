package store

import (
	"slices"
	"time"

	"github.com/pkg/errors"

	"github.com/schoolhub/console/core"
	"github.com/schoolhub/console/core/access"
	"github.com/schoolhub/console/core/school"
)

type Kind string

// Action kinds
const (
	KindSetStudents   Kind = "SET_STUDENTS"
	KindAddStudent    Kind = "ADD_STUDENT"
	KindUpdateStudent Kind = "UPDATE_STUDENT"
	KindDeleteStudent Kind = "DELETE_STUDENT"
	KindSetTeachers   Kind = "SET_TEACHERS"
	KindAddTeacher    Kind = "ADD_TEACHER"
	KindUpdateTeacher Kind = "UPDATE_TEACHER"
	KindDeleteTeacher Kind = "DELETE_TEACHER"
	KindSetClasses    Kind = "SET_CLASSES"
	KindAddClass      Kind = "ADD_CLASS"
	KindUpdateClass   Kind = "UPDATE_CLASS"
	KindDeleteClass   Kind = "DELETE_CLASS"
	KindSetParents    Kind = "SET_PARENTS"
	KindAddParent     Kind = "ADD_PARENT"
	KindUpdateParent  Kind = "UPDATE_PARENT"
	KindDeleteParent  Kind = "DELETE_PARENT"
	KindSetLoading    Kind = "SET_LOADING"
	KindSetError      Kind = "SET_ERROR"
	KindSetSuccess    Kind = "SET_SUCCESS"
	KindClearMessages Kind = "CLEAR_MESSAGES"
	KindAddNotif      Kind = "ADD_NOTIFICATION"
	KindRemoveNotif   Kind = "REMOVE_NOTIFICATION"
	KindMarkNotifRead Kind = "MARK_NOTIFICATION_READ"
	KindSetNotifs     Kind = "SET_NOTIFICATIONS"
)

// Action is the closed set of store transitions. Each action applies itself in reduce,
// which must be pure: no I/O, no clock, no randomness.
type Action interface {
	Kind() Kind
	// Capability is the capability required to dispatch the action, empty when unrestricted.
	Capability() access.Capability
	reduce(st State) (State, error)
}

// Reduce returns the state that results from applying a to st.
// A not-found action returns st unchanged along with an error wrapping core.ErrNotFound.
func Reduce(st State, a Action) (State, error) {
	next, err := a.reduce(st)
	if err != nil {
		return st, err
	}
	return next, nil
}

// Students

type SetStudents struct{ Students []school.Student }
type AddStudent struct{ Student school.Student }
type UpdateStudent struct{ Patch school.StudentPatch }
type DeleteStudent struct{ ID string }

func (SetStudents) Kind() Kind { return KindSetStudents }
func (AddStudent) Kind() Kind { return KindAddStudent }
func (UpdateStudent) Kind() Kind { return KindUpdateStudent }
func (DeleteStudent) Kind() Kind { return KindDeleteStudent }

func (SetStudents) Capability() access.Capability { return access.CanManageStudents }
func (AddStudent) Capability() access.Capability { return access.CanManageStudents }
func (UpdateStudent) Capability() access.Capability { return access.CanManageStudents }
func (DeleteStudent) Capability() access.Capability { return access.CanManageStudents }

func (a SetStudents) reduce(st State) (State, error) {
	st.Students = setAll(a.Students)
	return st, nil
}

func (a AddStudent) reduce(st State) (State, error) {
	st.Students = appendOne(st.Students, a.Student)
	return st, nil
}

func (a UpdateStudent) reduce(st State) (State, error) {
	var err error
	st.Students, err = updateByID(st.Students, a.Patch.ID, func(s school.Student) school.Student {
		return s.Merge(a.Patch)
	})
	return st, errors.Wrap(err, string(KindUpdateStudent))
}

func (a DeleteStudent) reduce(st State) (State, error) {
	var err error
	st.Students, err = removeByID(st.Students, a.ID)
	return st, errors.Wrap(err, string(KindDeleteStudent))
}

// Teachers

type SetTeachers struct{ Teachers []school.Teacher }
type AddTeacher struct{ Teacher school.Teacher }
type UpdateTeacher struct{ Patch school.TeacherPatch }
type DeleteTeacher struct{ ID string }

func (SetTeachers) Kind() Kind { return KindSetTeachers }
func (AddTeacher) Kind() Kind { return KindAddTeacher }
func (UpdateTeacher) Kind() Kind { return KindUpdateTeacher }
func (DeleteTeacher) Kind() Kind { return KindDeleteTeacher }

func (SetTeachers) Capability() access.Capability { return access.CanManageTeachers }
func (AddTeacher) Capability() access.Capability { return access.CanManageTeachers }
func (UpdateTeacher) Capability() access.Capability { return access.CanManageTeachers }
func (DeleteTeacher) Capability() access.Capability { return access.CanManageTeachers }

func (a SetTeachers) reduce(st State) (State, error) {
	st.Teachers = setAll(a.Teachers)
	return st, nil
}

func (a AddTeacher) reduce(st State) (State, error) {
	st.Teachers = appendOne(st.Teachers, a.Teacher)
	return st, nil
}

func (a UpdateTeacher) reduce(st State) (State, error) {
	var err error
	st.Teachers, err = updateByID(st.Teachers, a.Patch.ID, func(t school.Teacher) school.Teacher {
		return t.Merge(a.Patch)
	})
	return st, errors.Wrap(err, string(KindUpdateTeacher))
}

func (a DeleteTeacher) reduce(st State) (State, error) {
	var err error
	st.Teachers, err = removeByID(st.Teachers, a.ID)
	return st, errors.Wrap(err, string(KindDeleteTeacher))
}

// Classes

type SetClasses struct{ Classes []school.Class }
type AddClass struct{ Class school.Class }
type UpdateClass struct{ Patch school.ClassPatch }
type DeleteClass struct{ ID string }

func (SetClasses) Kind() Kind { return KindSetClasses }
func (AddClass) Kind() Kind { return KindAddClass }
func (UpdateClass) Kind() Kind { return KindUpdateClass }
func (DeleteClass) Kind() Kind { return KindDeleteClass }

func (SetClasses) Capability() access.Capability { return access.CanManageClasses }
func (AddClass) Capability() access.Capability { return access.CanManageClasses }
func (UpdateClass) Capability() access.Capability { return access.CanManageClasses }
func (DeleteClass) Capability() access.Capability { return access.CanManageClasses }

func (a SetClasses) reduce(st State) (State, error) {
	st.Classes = setAll(a.Classes)
	return st, nil
}

func (a AddClass) reduce(st State) (State, error) {
	st.Classes = appendOne(st.Classes, a.Class)
	return st, nil
}

func (a UpdateClass) reduce(st State) (State, error) {
	var err error
	st.Classes, err = updateByID(st.Classes, a.Patch.ID, func(c school.Class) school.Class {
		return c.Merge(a.Patch)
	})
	return st, errors.Wrap(err, string(KindUpdateClass))
}

func (a DeleteClass) reduce(st State) (State, error) {
	var err error
	st.Classes, err = removeByID(st.Classes, a.ID)
	return st, errors.Wrap(err, string(KindDeleteClass))
}

// Parents

type SetParents struct{ Parents []school.Parent }
type AddParent struct{ Parent school.Parent }
type UpdateParent struct{ Patch school.ParentPatch }
type DeleteParent struct{ ID string }

func (SetParents) Kind() Kind { return KindSetParents }
func (AddParent) Kind() Kind { return KindAddParent }
func (UpdateParent) Kind() Kind { return KindUpdateParent }
func (DeleteParent) Kind() Kind { return KindDeleteParent }

func (SetParents) Capability() access.Capability { return access.CanManageParents }
func (AddParent) Capability() access.Capability { return access.CanManageParents }
func (UpdateParent) Capability() access.Capability { return access.CanManageParents }
func (DeleteParent) Capability() access.Capability { return access.CanManageParents }

func (a SetParents) reduce(st State) (State, error) {
	st.Parents = setAll(a.Parents)
	return st, nil
}

func (a AddParent) reduce(st State) (State, error) {
	st.Parents = appendOne(st.Parents, a.Parent)
	return st, nil
}

func (a UpdateParent) reduce(st State) (State, error) {
	var err error
	st.Parents, err = updateByID(st.Parents, a.Patch.ID, func(p school.Parent) school.Parent {
		return p.Merge(a.Patch)
	})
	return st, errors.Wrap(err, string(KindUpdateParent))
}

func (a DeleteParent) reduce(st State) (State, error) {
	var err error
	st.Parents, err = removeByID(st.Parents, a.ID)
	return st, errors.Wrap(err, string(KindDeleteParent))
}

// UI status

type SetLoading struct{ Loading bool }

// SetError and SetSuccess replace the current message and bump the message generation.
type SetError struct{ Message string }
type SetSuccess struct{ Message string }

// ClearMessages clears both messages when Generation is zero or still current,
// and is a no-op otherwise.
type ClearMessages struct{ Generation uint64 }

func (SetLoading) Kind() Kind { return KindSetLoading }
func (SetError) Kind() Kind { return KindSetError }
func (SetSuccess) Kind() Kind { return KindSetSuccess }
func (ClearMessages) Kind() Kind { return KindClearMessages }

func (SetLoading) Capability() access.Capability { return "" }
func (SetError) Capability() access.Capability { return "" }
func (SetSuccess) Capability() access.Capability { return "" }
func (ClearMessages) Capability() access.Capability { return "" }

func (a SetLoading) reduce(st State) (State, error) {
	st.UI.Loading = a.Loading
	return st, nil
}

func (a SetError) reduce(st State) (State, error) {
	st.UI.Error, st.UI.Success = a.Message, ""
	st.generation++
	return st, nil
}

func (a SetSuccess) reduce(st State) (State, error) {
	st.UI.Success, st.UI.Error = a.Message, ""
	st.generation++
	return st, nil
}

func (a ClearMessages) reduce(st State) (State, error) {
	if a.Generation != 0 && a.Generation != st.generation {
		return st, nil
	}
	st.UI.Error, st.UI.Success = "", ""
	return st, nil
}

// Notifications

// AddNotification appends a notification. The store fills in ID and CreatedAt before
// reducing when they are empty; IsRead always starts false.
type AddNotification struct {
	Notification school.NewNotification
	ID           string
	CreatedAt    time.Time
}

// SetNotifications replaces the notification list; used by the seed load.
type SetNotifications struct{ Notifications []school.Notification }
type RemoveNotification struct{ ID string }
type MarkNotificationRead struct{ ID string }

func (AddNotification) Kind() Kind { return KindAddNotif }
func (SetNotifications) Kind() Kind { return KindSetNotifs }
func (RemoveNotification) Kind() Kind { return KindRemoveNotif }
func (MarkNotificationRead) Kind() Kind { return KindMarkNotifRead }

func (AddNotification) Capability() access.Capability { return access.CanManageCommunication }
func (SetNotifications) Capability() access.Capability { return access.CanManageCommunication }
func (RemoveNotification) Capability() access.Capability { return access.CanManageCommunication }
func (MarkNotificationRead) Capability() access.Capability { return "" }

func (a AddNotification) reduce(st State) (State, error) {
	st.Notifications = appendOne(st.Notifications, school.Notification{
		ID:            a.ID,
		Title:         a.Notification.Title,
		Message:       a.Notification.Message,
		Type:          a.Notification.Type,
		RecipientID:   a.Notification.RecipientID,
		RecipientType: a.Notification.RecipientType,
		IsRead:        false,
		CreatedAt:     a.CreatedAt,
	})
	return st, nil
}

func (a SetNotifications) reduce(st State) (State, error) {
	st.Notifications = setAll(a.Notifications)
	return st, nil
}

func (a RemoveNotification) reduce(st State) (State, error) {
	var err error
	st.Notifications, err = removeByID(st.Notifications, a.ID)
	return st, errors.Wrap(err, string(KindRemoveNotif))
}

func (a MarkNotificationRead) reduce(st State) (State, error) {
	var err error
	st.Notifications, err = updateByID(st.Notifications, a.ID, func(n school.Notification) school.Notification {
		n.IsRead = true
		return n
	})
	return st, errors.Wrap(err, string(KindMarkNotifRead))
}

// collection helpers; none of them modifies its input

// cloner is implemented by every school record.
type cloner[T any] interface {
	Clone() T
}

// cloneAll deep-copies items; the result is never nil.
func cloneAll[T cloner[T]](items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

func setAll[T cloner[T]](items []T) []T {
	return cloneAll(items)
}

func appendOne[T cloner[T]](items []T, item T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, item.Clone())
}

func updateByID[T school.Entity](items []T, id string, merge func(T) T) ([]T, error) {
	idx := slices.IndexFunc(items, func(item T) bool { return item.GetID() == id })
	if idx < 0 {
		return items, errors.Wrapf(core.ErrNotFound, "id %q", id)
	}
	out := slices.Clone(items)
	out[idx] = merge(out[idx])
	return out, nil
}

func removeByID[T school.Entity](items []T, id string) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.GetID() != id {
			out = append(out, item)
		}
	}
	if len(out) == len(items) {
		return items, errors.Wrapf(core.ErrNotFound, "id %q", id)
	}
	return out, nil
}
