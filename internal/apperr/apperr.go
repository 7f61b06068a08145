package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// The error taxonomy shared by every engine. Handlers map these onto HTTP
// statuses; anything outside the taxonomy becomes a 500 with a generic body.

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Validation(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

func Forbidden(message string) error {
	return &AuthorizationError{Message: message}
}

func HTTPStatus(err error) int {
	var validation *ValidationError
	var notFound *NotFoundError
	var authz *AuthorizationError

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &authz):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing error text. Unexpected errors never leak
// their internals.
func Message(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}
