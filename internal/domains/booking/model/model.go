package model

import (
	"time"

	"corpbooking/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldResourceKind  = "resource_kind"
	FieldResourceName  = "resource_name"
	FieldResourceID    = "resource_id"
	FieldRequesterName = "requester_name"
	FieldDivision      = "division"
	FieldPurpose       = "purpose"
	FieldDestination   = "destination"
	FieldStartTime     = "start_time"
	FieldEndTime       = "end_time"
	FieldDurationUnit  = "duration_unit"
	FieldStatus        = "status"
	FieldCreatedAt     = "created_at"
)

type Booking struct {
	ID            string       `db:"id"`
	ResourceKind  ResourceKind `db:"resource_kind"`
	ResourceName  string       `db:"resource_name"`
	ResourceID    *string      `db:"resource_id"`
	RequesterName string       `db:"requester_name"`
	Division      string       `db:"division"`
	Purpose       string       `db:"purpose"`
	Destination   string       `db:"destination"`
	StartTime     time.Time    `db:"start_time"`
	EndTime       time.Time    `db:"end_time"`
	DurationUnit  DurationUnit `db:"duration_unit"`
	Status        Status       `db:"status"`
	model.Metadata
}

// Ref returns the key the booking occupies for conflict purposes.
func (b Booking) Ref() ResourceRef {
	if b.ResourceID != nil && *b.ResourceID != "" {
		return ByID{ID: *b.ResourceID}
	}

	return ByName{Kind: b.ResourceKind, Name: b.ResourceName}
}

type DurationUnit string

const (
	DurationHours DurationUnit = "hours"
	DurationDays  DurationUnit = "days"
)

type ResourceKind string

const (
	ResourceVehicle        ResourceKind = "vehicle"
	ResourceMeetingRoom    ResourceKind = "meeting_room"
	ResourceTrainingCenter ResourceKind = "training_center"
)

var ResourceKinds = []ResourceKind{ResourceVehicle, ResourceMeetingRoom, ResourceTrainingCenter}

func ParseResourceKind(value string) (ResourceKind, error) {
	for _, kind := range ResourceKinds {
		if string(kind) == value {
			return kind, nil
		}
	}

	return "", ErrInvalidResourceKind
}
