package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// User and chat identifiers are positive integers assigned by the
	// collaborator services; zero means "missing" in a decoded request.
	validate.RegisterValidation("id", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() > 0
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "id":
			errors[field] = "Must be a positive identifier"
		case "nefield":
			errors[field] = "Must differ from " + err.Param()
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}
