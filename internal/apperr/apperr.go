package apperr

import (
	"errors"
	"net/http"
)

// Error is a recoverable domain error carrying an HTTP classification.
// Handlers map it to a response; anything else is masked as internal.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, "NOT_FOUND", message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, "CONFLICT", message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, "FORBIDDEN", message)
}

func InvalidInput(message string) *Error {
	return New(http.StatusBadRequest, "INVALID_INPUT", message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func Internal(message string) *Error {
	return New(http.StatusInternalServerError, "INTERNAL", message)
}

// From extracts the typed error, or nil when err is unexpected.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// Status reports the classification of an error, or false when it is not a
// domain error.
func Status(err error, status int) bool {
	appErr := From(err)
	return appErr != nil && appErr.Status == status
}
