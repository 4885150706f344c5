// Package conflict decides whether a requested interval collides with
// approved bookings. It performs no I/O; callers load the candidates.
package conflict

import (
	"time"

	"corpbooking/internal/domains/booking/model"
)

type Result struct {
	HasConflict bool
	Conflicts   []model.Booking
}

// Overlaps is the closed-interval test. Touching endpoints overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// Matches reports whether booking b is keyed on ref. An id key never matches
// a booking that only carries a name.
func Matches(ref model.ResourceRef, b model.Booking) bool {
	switch key := ref.(type) {
	case model.ByID:
		return b.ResourceID != nil && *b.ResourceID == key.ID
	case model.ByName:
		if key.Kind != "" && b.ResourceKind != key.Kind {
			return false
		}

		return b.ResourceName == key.Name
	default:
		return false
	}
}

// ValidateRange rejects empty and inverted intervals.
func ValidateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return model.ErrInvalidRange
	}

	return nil
}

// Detect returns the approved bookings in existing that share ref and overlap [start, end].
// excludeID skips the booking being re-checked.
func Detect(ref model.ResourceRef, start, end time.Time, existing []model.Booking, excludeID string) (Result, error) {
	if err := ValidateRange(start, end); err != nil {
		return Result{}, err
	}

	result := Result{Conflicts: []model.Booking{}}

	for _, booking := range existing {
		if excludeID != "" && booking.ID == excludeID {
			continue
		}

		if !booking.Status.Blocking() || !Matches(ref, booking) {
			continue
		}

		if Overlaps(booking.StartTime, booking.EndTime, start, end) {
			result.Conflicts = append(result.Conflicts, booking)
		}
	}

	result.HasConflict = len(result.Conflicts) > 0

	return result, nil
}
