// Package failure carries errors that know which HTTP status they map to.
package failure

import (
	"errors"
	"net/http"
)

// Failure is an error with the HTTP status it should be answered with.
// Message is safe to show to clients; the optional cause is not.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	cause   error
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

func (e *Failure) Unwrap() error {
	return e.cause
}

func newFailure(code int, message string) error {
	return &Failure{Code: code, Message: message}
}

// fromError copies err's message into a Failure, keeping nil as nil.
func fromError(code int, err error) error {
	if err == nil {
		return nil
	}

	return newFailure(code, err.Error())
}

func BadRequest(err error) error {
	return fromError(http.StatusBadRequest, err)
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, msg)
}

func InternalError(err error) error {
	return fromError(http.StatusInternalServerError, err)
}

// StorageUnavailable hides a persistence error behind a generic message.
// errors.Is and errors.As still reach the cause.
func StorageUnavailable(err error) error {
	if err == nil {
		return nil
	}

	return &Failure{Code: http.StatusInternalServerError, Message: "storage unavailable", cause: err}
}

func NotFound(message string) error {
	return newFailure(http.StatusNotFound, message)
}

func Conflict(message string) error {
	return newFailure(http.StatusConflict, message)
}

// GetCode returns the status carried by the first Failure in err's chain, 500 otherwise.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
