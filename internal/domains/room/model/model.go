package model

import (
	"corpbooking/shared/failure"
	"corpbooking/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID       = "id"
	FieldName     = "name"
	FieldKind     = "kind"
	FieldLocation = "location"
	FieldCapacity = "capacity"
	FieldImageURL = "image_url"
	FieldIsActive = "is_active"
)

type Kind string

const (
	KindMeetingRoom    Kind = "meeting_room"
	KindTrainingCenter Kind = "training_center"
)

var (
	ErrNotFound      = failure.NotFound("room not found")
	ErrDuplicateName = failure.Conflict("room name already registered")
	ErrInUse         = failure.Conflict("room is referenced by bookings, deactivate it instead")
)

type Room struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Kind     Kind   `db:"kind"`
	Location string `db:"location"`
	Capacity int    `db:"capacity"`
	ImageURL string `db:"image_url"`
	IsActive bool   `db:"is_active"`
	model.Metadata
}
