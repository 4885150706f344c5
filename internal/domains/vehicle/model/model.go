package model

import (
	"corpbooking/shared/failure"
	"corpbooking/shared/model"
)

const (
	TableName  = "vehicles"
	EntityName = "vehicle"

	FieldID          = "id"
	FieldName        = "name"
	FieldVehicleType = "vehicle_type"
	FieldPlateNumber = "plate_number"
	FieldBrand       = "brand"
	FieldYear        = "year"
	FieldPhotoURL    = "photo_url"
	FieldIsActive    = "is_active"
)

var (
	ErrNotFound       = failure.NotFound("vehicle not found")
	ErrDuplicatePlate = failure.Conflict("plate number already registered")
	ErrInUse          = failure.Conflict("vehicle is referenced by bookings, deactivate it instead")
)

// Vehicle is a bookable fleet unit. Inactive vehicles stay listed but are hidden from booking forms.
type Vehicle struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	VehicleType string `db:"vehicle_type"`
	PlateNumber string `db:"plate_number"`
	Brand       string `db:"brand"`
	Year        *int   `db:"year"`
	PhotoURL    string `db:"photo_url"`
	IsActive    bool   `db:"is_active"`
	model.Metadata
}
