package base64_test

import (
	"testing"

	"corpbooking/shared/base64"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetContentType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"png", "data:image/png;base64,iVBORw0KGgo=", "image/png"},
		{"jpeg", "data:image/jpeg;base64,/9j/4AAQ", "image/jpeg"},
		{"empty", "", ""},
		{"missing prefix", "image/png;base64,iVBORw0KGgo=", ""},
		{"missing marker", "data:image/png,iVBORw0KGgo=", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base64.GetContentType(tt.input))
		})
	}
}

func TestDecode(t *testing.T) {
	contentType, data, err := base64.Decode("data:text/plain;base64,SGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "text/plain", contentType)
	assert.Equal(t, []byte("Hello"), data)

	_, _, err = base64.Decode("data:text/plain;base64,@@@")
	assert.ErrorIs(t, err, base64.ErrInvalidDataURL)

	_, _, err = base64.Decode("Hello")
	assert.ErrorIs(t, err, base64.ErrInvalidDataURL)
}
