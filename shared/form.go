package shared

import (
	"mime/multipart"
	"net/http"

	"corpbooking/shared/constant"
	"corpbooking/shared/failure"
	"corpbooking/shared/validator"
)

// FormRequest is a request body that can also arrive as a multipart form
// with one optional file.
type FormRequest[T any] interface {
	*T
	FromForm(r *http.Request)
	AttachFile(header *multipart.FileHeader, file multipart.File)
}

// BindRequest reads and validates T from a JSON body or a multipart form.
// release closes the uploaded file, if any, and is never nil.
func BindRequest[T any, P FormRequest[T]](r *http.Request, fileField string) (req T, release func(), err error) {
	release = func() {}

	if !IsMultipart(r) {
		return req, release, validator.Validate(r.Body, &req) //nolint:wrapcheck
	}

	if err = r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return req, release, failure.BadRequest(err) //nolint:wrapcheck
	}

	P(&req).FromForm(r)

	if file, header, fileErr := r.FormFile(fileField); fileErr == nil {
		P(&req).AttachFile(header, file)

		release = func() { _ = file.Close() }
	}

	if err = validator.ValidateStruct(&req); err != nil {
		release()

		return req, func() {}, err //nolint:wrapcheck
	}

	return req, release, nil
}
