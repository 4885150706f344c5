package base64

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const dataURLMarker = ";base64,"

var ErrInvalidDataURL = errors.New("invalid base64 data url")

func GetContentType(file string) string {
	start := len("data:")
	end := strings.Index(file, dataURLMarker)

	if end == -1 || end < start || !strings.HasPrefix(file, "data:") {
		return ""
	}

	return file[start:end]
}

// Decode splits a data url into its content type and raw bytes.
func Decode(file string) (contentType string, data []byte, err error) {
	contentType = GetContentType(file)
	if contentType == "" {
		return "", nil, ErrInvalidDataURL
	}

	payload := file[strings.Index(file, dataURLMarker)+len(dataURLMarker):]

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidDataURL, err)
	}

	return contentType, data, nil
}
