package repository

import (
	"errors"

	"corpbooking/shared/constant"

	"github.com/lib/pq"
)

// HasPqCode reports whether err wraps a postgres error with the given SQLSTATE code.
func HasPqCode(err error, code string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	return string(pqErr.Code) == code
}

func IsUniqueViolation(err error) bool {
	return HasPqCode(err, constant.PqErrorCodeUniqueViolation)
}

func IsForeignKeyViolation(err error) bool {
	return HasPqCode(err, constant.PqErrorCodeFkViolation)
}
