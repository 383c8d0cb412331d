// Package validation provides struct-tag and programmatic validation for
// beankit descriptors and configuration.
//
// Struct tag validation uses go-playground/validator with one extra tag,
// "beanid", accepting identifiers made of letters, digits, '.', '_' and '-'.
//
//	type Options struct {
//	    ID    string `validate:"required,beanid"`
//	    Order string `validate:"oneof=registration dependency"`
//	}
//	err := validation.Validate(opts)
//
// Programmatic validation collects field errors:
//
//	v := validation.New()
//	v.Required("id", id)
//	err := v.Validate()
package validation
