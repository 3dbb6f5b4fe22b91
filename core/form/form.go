// Package form tracks an edit form between render and submit: current values, per-field
// errors, touched fields and the submitting flag.
package form

import (
	"maps"
	"sort"

	"github.com/schoolhub/console/core"
)

// State is the state of one form. The zero value is an empty form with no initial values.
type State struct {
	Values     map[string]string `json:"values"`
	Errors     map[string]string `json:"errors"`
	Touched    map[string]bool   `json:"touched"`
	Submitting bool              `json:"submitting"`

	initial map[string]string
}

// New returns a form holding a copy of initial.
func New(initial map[string]string) *State {
	return &State{
		Values:  maps.Clone(nonNil(initial)),
		Errors:  make(map[string]string),
		Touched: make(map[string]bool),
		initial: maps.Clone(nonNil(initial)),
	}
}

func nonNil(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

// lazyInit allocates the maps a zero State lacks.
func (f *State) lazyInit() {
	if f.Values == nil {
		f.Values = make(map[string]string)
	}
	if f.Errors == nil {
		f.Errors = make(map[string]string)
	}
	if f.Touched == nil {
		f.Touched = make(map[string]bool)
	}
}

// Change sets field and clears the field's error if it had one.
func (f *State) Change(field, value string) {
	f.lazyInit()
	f.Values[field] = value
	delete(f.Errors, field)
}

func (f *State) Blur(field string) {
	f.lazyInit()
	f.Touched[field] = true
}

// SetFieldValue sets field without touching its error.
func (f *State) SetFieldValue(field, value string) {
	f.lazyInit()
	f.Values[field] = value
}

// SetFieldError records msg for field; an empty msg clears it.
func (f *State) SetFieldError(field, msg string) {
	f.lazyInit()
	if msg == "" {
		delete(f.Errors, field)
		return
	}
	f.Errors[field] = msg
}

func (f *State) SetSubmitting(submitting bool) { f.Submitting = submitting }

// Reset restores the initial values and clears errors, touched fields and the submitting flag.
func (f *State) Reset() {
	f.Values = maps.Clone(nonNil(f.initial))
	f.Errors = make(map[string]string)
	f.Touched = make(map[string]bool)
	f.Submitting = false
}

func (f *State) Value(field string) string { return f.Values[field] }
func (f *State) Error(field string) string { return f.Errors[field] }
func (f *State) Valid() bool               { return len(f.Errors) == 0 }

// FieldErrors lists the current errors sorted by field.
func (f *State) FieldErrors() []core.FieldError {
	flds := make([]core.FieldError, 0, len(f.Errors))
	for field, msg := range f.Errors {
		flds = append(flds, core.FieldError{Field: field, Error: msg})
	}
	sort.Slice(flds, func(i, j int) bool { return flds[i].Field < flds[j].Field })
	return flds
}
