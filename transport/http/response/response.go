package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"corpbooking/shared/constant"
	"corpbooking/shared/failure"
	"corpbooking/shared/logger"
)

const msgInternalError = "internal server error"

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

// WithJSON sends a response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload interface{}) {
	response(writer, code, Data[any]{Data: &jsonPayload})
}

// WithError sends a response with an error message.
// Errors that are not a failure.Failure never leak their text to the client.
func WithError(writer http.ResponseWriter, err error) {
	code, errMsg := errorMessage(err)

	response(writer, code, Error{Error: &errMsg})
}

// WithErrorDetails sends the error message with extra top-level fields, e.g. the conflicting bookings.
func WithErrorDetails(writer http.ResponseWriter, err error, details map[string]any) {
	code, errMsg := errorMessage(err)

	payload := make(map[string]any, len(details)+1)
	for key, value := range details {
		payload[key] = value
	}

	payload["error"] = errMsg

	response(writer, code, payload)
}

// WithFile sends a binary attachment.
func WithFile(writer http.ResponseWriter, contentType, fileName string, content []byte) {
	writer.Header().Set(constant.RequestHeaderContentType, contentType)
	writer.Header().Set(constant.RequestHeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	writer.WriteHeader(http.StatusOK)

	if _, err := writer.Write(content); err != nil {
		logger.ErrorWithStack(err)
	}
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func errorMessage(err error) (int, string) {
	var fail *failure.Failure
	if errors.As(err, &fail) {
		return fail.Code, fail.Message
	}

	return http.StatusInternalServerError, msgInternalError
}

func response(writer http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
