package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"corpbooking/shared/failure"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"bad request", failure.BadRequest(errors.New("bad input")), http.StatusBadRequest, "bad input"},
		{"bad request from string", failure.BadRequestFromString("start must be before end"), http.StatusBadRequest, "start must be before end"},
		{"unauthorized", failure.Unauthorized("invalid credentials"), http.StatusUnauthorized, "invalid credentials"},
		{"internal", failure.InternalError(errors.New("boom")), http.StatusInternalServerError, "boom"},
		{"not found", failure.NotFound("booking not found"), http.StatusNotFound, "booking not found"},
		{"conflict", failure.Conflict("vehicle still referenced"), http.StatusConflict, "vehicle still referenced"},
		{"storage unavailable", failure.StorageUnavailable(errors.New("dial tcp")), http.StatusInternalServerError, "storage unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestNilInputs(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
	assert.NoError(t, failure.StorageUnavailable(nil))
}

func TestStorageUnavailable_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("failed to list bookings: %w", failure.StorageUnavailable(cause))

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	assert.Equal(t, http.StatusForbidden, failure.GetCode(failure.ForbiddenError))
	assert.Equal(t, http.StatusNotFound, failure.GetCode(fmt.Errorf("wrapped: %w", failure.NotFound("x"))))
}
