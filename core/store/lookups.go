package store

import "github.com/schoolhub/console/core/school"

// GetByID returns the record with the given id. It never fails: a miss returns the zero value and false.
func GetByID[T school.Entity](items []T, id string) (T, bool) {
	for _, item := range items {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0)
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// StudentsByClass returns the students whose ClassID is classID, in store order.
func StudentsByClass(st State, classID string) []school.Student {
	return filter(st.Students, func(s school.Student) bool { return s.ClassID == classID })
}

// StudentsByParent returns the students whose ParentID is parentID, in store order.
func StudentsByParent(st State, parentID string) []school.Student {
	return filter(st.Students, func(s school.Student) bool { return s.ParentID == parentID })
}

// ClassesByTeacher returns the classes whose TeacherID is teacherID, in store order.
func ClassesByTeacher(st State, teacherID string) []school.Class {
	return filter(st.Classes, func(c school.Class) bool { return c.TeacherID == teacherID })
}

func (st State) StudentByID(id string) (school.Student, bool) { return GetByID(st.Students, id) }
func (st State) TeacherByID(id string) (school.Teacher, bool) { return GetByID(st.Teachers, id) }
func (st State) ClassByID(id string) (school.Class, bool)     { return GetByID(st.Classes, id) }
func (st State) ParentByID(id string) (school.Parent, bool)   { return GetByID(st.Parents, id) }

func (st State) NotificationByID(id string) (school.Notification, bool) {
	return GetByID(st.Notifications, id)
}
