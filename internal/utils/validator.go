package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/localnerve/recipedb/internal/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their json name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// FormatValidationErrors converts validator.ValidationErrors into a slice of ValidationError
func FormatValidationErrors(err error) []ValidationError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	out := make([]ValidationError, len(ve))
	for i, fe := range ve {
		out[i] = ValidationError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
		}
		switch fe.Tag() {
		case "required":
			out[i].Message = fmt.Sprintf("%s is required", fe.Field())
		case "min":
			if fe.Kind() == reflect.String {
				out[i].Message = fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
			} else {
				out[i].Message = fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
			}
		case "max":
			if fe.Kind() == reflect.String {
				out[i].Message = fmt.Sprintf("%s must be at most %s characters long", fe.Field(), fe.Param())
			} else {
				out[i].Message = fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
			}
		case "oneof":
			out[i].Message = fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
		case "url":
			out[i].Message = fmt.Sprintf("%s must be a valid URL", fe.Field())
		case "dive":
			out[i].Message = fmt.Sprintf("%s contains an invalid item", fe.Field())
		default:
			out[i].Message = fmt.Sprintf("Validation failed on field '%s' for tag '%s'", fe.Field(), fe.Tag())
		}
	}
	return out
}

// ValidateStruct runs struct tag validation and returns a 400 CustomError
// carrying per-field details on failure
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	details := FormatValidationErrors(err)
	if details == nil {
		return fmt.Errorf("validation setup: %w", err)
	}
	return types.NewValidationError(details[0].Message).WithDetails(details)
}

// ValidateVar validates a single value against a tag expression
func ValidateVar(field string, value interface{}, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		return types.NewValidationError(fmt.Sprintf("%s is invalid", field)).
			WithDetails([]ValidationError{{Field: field, Tag: tag, Message: fmt.Sprintf("%s is invalid", field)}})
	}
	return nil
}
