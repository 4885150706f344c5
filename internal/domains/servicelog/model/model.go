package model

import (
	"time"

	"corpbooking/shared/model"
)

const (
	TableName  = "vehicle_services"
	EntityName = "vehicle_service"

	FieldID              = "id"
	FieldVehicleID       = "vehicle_id"
	FieldServiceDate     = "service_date"
	FieldServiceType     = "service_type"
	FieldDescription     = "description"
	FieldCost            = "cost"
	FieldOdometerReading = "odometer_reading"
)

// ServiceLog is one maintenance entry. Entries are append-only.
type ServiceLog struct {
	ID              string    `db:"id"`
	VehicleID       string    `db:"vehicle_id"`
	ServiceDate     time.Time `db:"service_date"`
	ServiceType     string    `db:"service_type"`
	Description     string    `db:"description"`
	Cost            float64   `db:"cost"`
	OdometerReading *int      `db:"odometer_reading"`
	model.Metadata
}
