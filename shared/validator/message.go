package validator

import (
	"errors"
	"fmt"

	val "github.com/go-playground/validator/v10"
)

type formatter func(field, param string) string

func plain(format string) formatter {
	return func(field, _ string) string { return fmt.Sprintf(format, field) }
}

func withParam(format string) formatter {
	return func(field, param string) string { return fmt.Sprintf(format, field, param) }
}

var formatters = map[string]formatter{
	"required":    plain("%s is required"),
	"email":       plain("%s must be a valid email address"),
	"uuid":        plain("%s must be a valid UUID"),
	"url":         plain("%s must be a valid URL"),
	"notblank":    plain("%s must not be blank"),
	"gte":         withParam("%s must be greater than or equal to %s"),
	"min":         withParam("%s must be greater than or equal to %s"),
	"lte":         withParam("%s must be less than or equal to %s"),
	"max":         withParam("%s must be less than or equal to %s"),
	"oneof":       withParam("%s must be one of %s"),
	"mimetypes":   withParam("%s must be one of %s"),
	"maxfilesize": withParam("%s must not exceed %s MB"),
	"nefield":     withParam("%s must differ from %s"),
}

// message renders the first validation error that has a known wording.
func message(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	for _, fieldErr := range fieldErrors {
		if format, ok := formatters[fieldErr.Tag()]; ok {
			return format(fieldErr.Field(), fieldErr.Param())
		}
	}

	return fieldErrors.Error()
}
