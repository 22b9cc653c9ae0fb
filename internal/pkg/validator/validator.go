package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

var phonePattern = regexp.MustCompile(`^\+?[1-9][0-9]{7,14}$`)

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
	// Numeric strings, as sent by the multi-step forms
	validate.RegisterValidation("numericstr", func(fl validator.FieldLevel) bool {
		_, ok := parseNumber(fl.Field().String())
		return ok
	})
	validate.RegisterValidation("posnumstr", func(fl validator.FieldLevel) bool {
		n, ok := parseNumber(fl.Field().String())
		return ok && n > 0
	})
	validate.RegisterValidation("nonnegnumstr", func(fl validator.FieldLevel) bool {
		n, ok := parseNumber(fl.Field().String())
		return ok && n >= 0
	})

	validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	validate.RegisterValidation("lat", func(fl validator.FieldLevel) bool {
		v := fl.Field().Float()
		return v >= -90 && v <= 90
	})
	validate.RegisterValidation("lng", func(fl validator.FieldLevel) bool {
		v := fl.Field().Float()
		return v >= -180 && v <= 180
	})
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	return n, err == nil
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = Message(fe)
	}
	return out
}

// Struct runs struct validation and returns the raw validator errors, for
// callers that need namespaces rather than flat field names.
func Struct(s interface{}) validator.ValidationErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}
	return nil
}

// Message renders a human readable message for a single field error.
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "Select at least " + fe.Param()
		}
		return "Value is too short (min: " + fe.Param() + ")"
	case "max":
		return "Value is too long (max: " + fe.Param() + ")"
	case "gte":
		return "Value must be at least " + fe.Param()
	case "lte":
		return "Value must be at most " + fe.Param()
	case "gt":
		return "Value must be greater than " + fe.Param()
	case "url", "http_url":
		return "Invalid URL format"
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "numericstr":
		return "Must be a number"
	case "posnumstr":
		return "Must be a positive number"
	case "nonnegnumstr":
		return "Must be a non-negative number"
	case "phone":
		return "Invalid phone number"
	case "lat":
		return "Latitude must be between -90 and 90"
	case "lng":
		return "Longitude must be between -180 and 180"
	case "uuid", "uuid4":
		return "Invalid identifier"
	case "len":
		return "Must be exactly " + fe.Param() + " characters"
	default:
		return "Invalid value"
	}
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
