package trainer

import (
	"github.com/go-playground/validator/v10"

	"github.com/sajidbaba1/fithub/core"
)

var (
	employmentTag  = "employmenttype"
	employmentText = "invalid employment type"

	statusTag  = "trainerstatus"
	statusText = "invalid status"

	specsTag  = "specializations"
	specsText = "invalid specializations"
)

func init() {
	_ = core.Validate.RegisterValidation(employmentTag, oneOf(AllEmploymentTypes))
	core.RegisterCustomTranslation(employmentTag, employmentText)

	_ = core.Validate.RegisterValidation(statusTag, oneOf(AllStatuses))
	core.RegisterCustomTranslation(statusTag, statusText)

	_ = core.Validate.RegisterValidation(specsTag, specializationsValidation)
	core.RegisterCustomTranslation(specsTag, specsText)
}

// oneOf checks that the field value is one of the known enum values.
func oneOf(known []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		for _, k := range known {
			if val == k {
				return true
			}
		}
		return false
	}
}

// specializationsValidation checks that all provided specializations are known.
func specializationsValidation(fl validator.FieldLevel) bool {
	specs, ok := fl.Field().Interface().([]string)
	if !ok {
		return false
	}
	for _, spec := range specs {
		var known bool
		for _, k := range AllSpecializations {
			if spec == k {
				known = true
				break
			}
		}
		if !known {
			return false
		}
	}
	return true
}
