package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when an update, delete or lookup names an id that does not exist.
var ErrNotFound = errors.New("not found")

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return fmt.Sprintf("%s: %s", err.Fields[0].Field, err.Fields[0].Error)
		}
		return "validation failed"
	}
	return err.Err.Error()
}

// ForbiddenError reports a role that lacks the capability an operation requires.
type ForbiddenError struct {
	Role       string
	Capability string
}

func NewForbiddenError(role, capability string) error {
	return &ForbiddenError{Role: role, Capability: capability}
}

func (err ForbiddenError) Error() string {
	return fmt.Sprintf("role %q lacks capability %q", err.Role, err.Capability)
}

func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}

func IsForbidden(err error) bool {
	_, ok := errors.Cause(err).(*ForbiddenError)
	return ok
}
