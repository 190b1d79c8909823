package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"
)

var validate = validatorv10.New()

// Struct validates a decoded request payload against its struct tags.
func Struct(s any) error {
	return validate.Struct(s)
}
