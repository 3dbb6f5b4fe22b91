package form

import (
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/schoolhub/console/core"
)

// Rules maps a field to its validator tag, e.g. "notblank,email".
type Rules map[string]string

// Validate checks every ruled field of f and replaces the form's errors with the
// failures, using the translated validator messages. It reports whether the form passed.
func Validate(f *State, rules Rules) bool {
	fields := make([]string, 0, len(rules))
	for field := range rules {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	f.Errors = make(map[string]string)
	for _, field := range fields {
		err := core.Validate.Var(f.Values[field], rules[field])
		if err == nil {
			continue
		}
		if vErrs, ok := err.(validator.ValidationErrors); ok && len(vErrs) > 0 {
			f.Errors[field] = vErrs[0].Translate(core.Translator)
		} else {
			f.Errors[field] = err.Error()
		}
	}
	return f.Valid()
}

// Err returns a *core.ValidationError carrying the form's errors, or nil when it is valid.
func (f *State) Err() error {
	if f.Valid() {
		return nil
	}
	return core.NewValidationError(nil, f.FieldErrors()...)
}
