package member

import (
	"github.com/go-playground/validator/v10"

	"github.com/sajidbaba1/fithub/core"
)

var (
	typeTag  = "membershiptype"
	typeText = "invalid membership type"

	statusTag  = "memberstatus"
	statusText = "invalid status"

	genderTag  = "gender"
	genderText = "invalid gender"
)

func init() {
	_ = core.Validate.RegisterValidation(typeTag, oneOf(AllTypes))
	core.RegisterCustomTranslation(typeTag, typeText)

	_ = core.Validate.RegisterValidation(statusTag, oneOf(AllStatuses))
	core.RegisterCustomTranslation(statusTag, statusText)

	_ = core.Validate.RegisterValidation(genderTag, oneOf(AllGenders))
	core.RegisterCustomTranslation(genderTag, genderText)
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
