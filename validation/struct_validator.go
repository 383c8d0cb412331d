package validation

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once

	beanIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
)

// getValidator returns the singleton validator instance.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Prefer mapstructure/yaml names so config errors point at config keys.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"mapstructure", "yaml", "json"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return toSnakeCase(fld.Name)
		})

		_ = validate.RegisterValidation("beanid", func(fl validator.FieldLevel) bool {
			return IsBeanID(fl.Field().String())
		})
	})
	return validate
}

// IsBeanID reports whether s is an acceptable bean identifier.
func IsBeanID(s string) bool {
	return beanIDPattern.MatchString(s)
}

// Validate validates a struct using struct tags.
// Uses tags like `validate:"required,beanid"`.
func Validate(s any) error {
	v := New().Struct(s)
	if !v.HasErrors() {
		return nil
	}
	return v.Validate()
}

// Struct runs tag validation on s and adds every failing field to v.
func (v *Validator) Struct(s any) *Validator {
	err := getValidator().Struct(s)
	if err == nil {
		return v
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		v.AddError("struct", err.Error())
		return v
	}
	for _, e := range validationErrors {
		v.AddError(e.Field(), formatValidationError(e))
	}
	return v
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "beanid":
		return "must start with a letter or digit and contain only letters, digits, '.', '_' or '-'"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	case "url":
		return "must be a valid URL"
	case "hostname_port":
		return "must be a host:port pair"
	default:
		return "is invalid"
	}
}

// toSnakeCase converts a field name to snake_case.
func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune('_')
		}
		if r >= 'A' && r <= 'Z' {
			result.WriteRune(r + 32)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
