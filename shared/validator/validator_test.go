package validator_test

import (
	"strings"
	"testing"

	"corpbooking/shared/failure"
	"corpbooking/shared/validator"

	"github.com/stretchr/testify/assert"
)

type bookingForm struct {
	RequesterName string `json:"requester_name" validate:"required,notblank,max=10"`
	DurationUnit  string `json:"duration_unit"  validate:"required,oneof=hours days"`
	ResourceID    string `json:"resource_id"    validate:"omitempty,uuid"`
	Photo         string `json:"photo"          validate:"omitempty,mimetypes=image/png image/jpeg"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name: "valid body",
			body: `{"requester_name":"Budi","duration_unit":"hours"}`,
		},
		{
			name:    "malformed json",
			body:    `{"requester_name":`,
			wantMsg: "failed to decode request body",
		},
		{
			name:    "missing field reported by json name",
			body:    `{"duration_unit":"hours"}`,
			wantMsg: "requester_name is required",
		},
		{
			name:    "whitespace only value",
			body:    `{"requester_name":"   ","duration_unit":"hours"}`,
			wantMsg: "requester_name must not be blank",
		},
		{
			name:    "enum violation",
			body:    `{"requester_name":"Budi","duration_unit":"weeks"}`,
			wantMsg: "duration_unit must be one of hours days",
		},
		{
			name:    "bad uuid",
			body:    `{"requester_name":"Budi","duration_unit":"days","resource_id":"abc"}`,
			wantMsg: "resource_id must be a valid UUID",
		},
		{
			name:    "disallowed data url type",
			body:    `{"requester_name":"Budi","duration_unit":"days","photo":"data:text/plain;base64,SGk="}`,
			wantMsg: "photo must be one of image/png image/jpeg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := bookingForm{}
			err := validator.Validate(strings.NewReader(tt.body), &form)

			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, 400, failure.GetCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("approved", "oneof=pending approved rejected"))
	assert.Error(t, validator.ValidateVar("cancelled", "oneof=pending approved rejected"))
}

type passwordForm struct {
	Current string `json:"current_password" validate:"required"`
	Next    string `json:"new_password"     validate:"required,min=8,nefield=Current"`
}

func TestValidateStruct_FieldComparison(t *testing.T) {
	err := validator.ValidateStruct(&passwordForm{Current: "secret-pass", Next: "secret-pass"})

	assert.Equal(t, 400, failure.GetCode(err))
	assert.Equal(t, "new_password must differ from Current", err.Error())

	assert.NoError(t, validator.ValidateStruct(&passwordForm{Current: "secret-pass", Next: "another-pass"}))
}
