package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpbooking/shared/constant"
	"corpbooking/shared/failure"
	"corpbooking/transport/http/response"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "failure keeps its message",
			err:      failure.NotFound("booking not found"),
			wantCode: http.StatusNotFound,
			wantMsg:  "booking not found",
		},
		{
			name:     "wrapped failure drops wrapper text",
			err:      fmt.Errorf("failed to load: %w", failure.BadRequestFromString("bad input")),
			wantCode: http.StatusBadRequest,
			wantMsg:  "bad input",
		},
		{
			name:     "storage failure hides cause",
			err:      failure.StorageUnavailable(errors.New("pq: connection refused")),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "storage unavailable",
		},
		{
			name:     "plain error is generic",
			err:      errors.New("secret detail"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, constant.ContentTypeJSON, rec.Header().Get(constant.RequestHeaderContentType))
			assert.Equal(t, tt.wantMsg, decode(t, rec)["error"])
		})
	}
}

func TestWithErrorDetails(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithErrorDetails(rec, failure.Conflict("already booked"), map[string]any{
		"conflicts": []string{"a", "b"},
		"error":     "overridden",
	})

	body := decode(t, rec)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "already booked", body["error"])
	assert.Len(t, body["conflicts"], 2)
}

func TestWithFile(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithFile(rec, constant.ContentTypeXLSX, "bookings.xlsx", []byte("PK"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, constant.ContentTypeXLSX, rec.Header().Get(constant.RequestHeaderContentType))
	assert.Contains(t, rec.Header().Get(constant.RequestHeaderContentDisposition), `filename="bookings.xlsx"`)
	assert.Equal(t, "PK", rec.Body.String())
}
