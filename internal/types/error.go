package types

import (
	"errors"
	"fmt"
	"net/http"
)

// Error types reported in the response envelope
const (
	TypeValidation = "validation"
	TypeAuth       = "auth"
	TypeForbidden  = "forbidden"
	TypeNotFound   = "notFound"
	TypeConflict   = "conflict"
	TypeInternal   = "internal"
)

// CustomError is an error that knows the HTTP status it maps to
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Details any    `json:"details,omitempty"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// WithDetails returns a copy of the error carrying details for the client
func (e *CustomError) WithDetails(details any) *CustomError {
	c := *e
	c.Details = details
	return &c
}

// NewValidationError reports malformed, missing or out of range input (400)
func NewValidationError(message string) *CustomError {
	return &CustomError{Code: http.StatusBadRequest, Message: message, Type: TypeValidation}
}

// NewAuthError reports a missing or invalid credential (401)
func NewAuthError(message string) *CustomError {
	return &CustomError{Code: http.StatusUnauthorized, Message: message, Type: TypeAuth}
}

// NewForbiddenError reports an authenticated caller lacking rights (403)
func NewForbiddenError(message string) *CustomError {
	return &CustomError{Code: http.StatusForbidden, Message: message, Type: TypeForbidden}
}

// NewNotFoundError reports an absent entity (404)
func NewNotFoundError(message string) *CustomError {
	return &CustomError{Code: http.StatusNotFound, Message: message, Type: TypeNotFound}
}

// NewConflictError reports a uniqueness conflict (409)
func NewConflictError(message string) *CustomError {
	return &CustomError{Code: http.StatusConflict, Message: message, Type: TypeConflict}
}

// AsCustomError unwraps err to a *CustomError if it holds one
func AsCustomError(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsType reports whether err is a *CustomError of the given type
func IsType(err error, errorType string) bool {
	ce, ok := AsCustomError(err)
	return ok && ce.Type == errorType
}
