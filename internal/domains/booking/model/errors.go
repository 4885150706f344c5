package model

import (
	"errors"
	"fmt"
	"strings"

	"corpbooking/shared/failure"
)

var (
	ErrInvalidStatus       = failure.BadRequestFromString("status must be one of pending, approved, rejected")
	ErrInvalidResourceKind = failure.BadRequestFromString("resource_kind must be one of vehicle, meeting_room, training_center")
	ErrInvalidRange        = failure.BadRequestFromString("start_time must be before end_time")
	ErrNotFound            = failure.NotFound("booking not found")
	ErrMissingResource     = failure.BadRequestFromString("resource_id or resource_name is required")
)

// ConflictError lists the approved bookings that overlap a rejected write.
type ConflictError struct {
	Conflicts []Booking
}

func (e *ConflictError) Error() string {
	names := make([]string, 0, len(e.Conflicts))

	for _, booking := range e.Conflicts {
		names = append(names, fmt.Sprintf("%s (%s - %s)",
			booking.ResourceName,
			booking.StartTime.Format("2006-01-02 15:04"),
			booking.EndTime.Format("2006-01-02 15:04"),
		))
	}

	return "resource is already booked in the requested time range: " + strings.Join(names, ", ")
}

// Unwrap maps the conflict onto a 409 failure.
func (e *ConflictError) Unwrap() error {
	return failure.Conflict(e.Error())
}

func AsConflict(err error) (*ConflictError, bool) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict, true
	}

	return nil, false
}
