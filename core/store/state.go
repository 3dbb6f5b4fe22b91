package store

import (
	"github.com/schoolhub/console/core/school"
)

// Status is the transient UI status. At most one of Error and Success is non-empty.
type Status struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
	Success string `json:"success,omitempty"`
}

// State is an immutable snapshot of the store.
type State struct {
	Students      []school.Student      `json:"students"`
	Teachers      []school.Teacher      `json:"teachers"`
	Classes       []school.Class        `json:"classes"`
	Parents       []school.Parent       `json:"parents"`
	Notifications []school.Notification `json:"notifications"`
	UI            Status                `json:"ui"`

	generation uint64 // bumped on every SetError / SetSuccess
}

// Generation identifies the current UI message; see ClearMessages.
func (st State) Generation() uint64 { return st.generation }

// Empty is the state a new store starts with.
func Empty() State {
	return State{
		Students:      []school.Student{},
		Teachers:      []school.Teacher{},
		Classes:       []school.Class{},
		Parents:       []school.Parent{},
		Notifications: []school.Notification{},
	}
}

func (st State) clone() State {
	cpy := st
	cpy.Students = cloneAll(st.Students)
	cpy.Teachers = cloneAll(st.Teachers)
	cpy.Classes = cloneAll(st.Classes)
	cpy.Parents = cloneAll(st.Parents)
	cpy.Notifications = cloneAll(st.Notifications)
	return cpy
}

type Counts struct {
	Students      int `json:"students"`
	Teachers      int `json:"teachers"`
	Classes       int `json:"classes"`
	Parents       int `json:"parents"`
	Notifications int `json:"notifications"`
	Unread        int `json:"unread"`
}

// Counts feeds the dashboard counters.
func (st State) Counts() Counts {
	c := Counts{
		Students:      len(st.Students),
		Teachers:      len(st.Teachers),
		Classes:       len(st.Classes),
		Parents:       len(st.Parents),
		Notifications: len(st.Notifications),
	}
	for _, n := range st.Notifications {
		if !n.IsRead {
			c.Unread++
		}
	}
	return c
}
