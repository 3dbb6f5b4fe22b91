package school

import (
	"github.com/go-playground/validator/v10"

	"github.com/schoolhub/console/core"
)

var (
	statusTag  = "status"
	statusText = "{0} must be one of active, inactive, suspended, graduated, transferred"
)

func init() {
	_ = core.Validate.RegisterValidation(statusTag, statusValidation)
	core.RegisterCustomTranslation(statusTag, statusText)
}

// statusValidation accepts Status values (or pointers to them) that are part of AllStatuses.
func statusValidation(fl validator.FieldLevel) bool {
	switch st := fl.Field().Interface().(type) {
	case Status:
		return st.Valid()
	case string:
		return Status(st).Valid()
	}
	return false
}
