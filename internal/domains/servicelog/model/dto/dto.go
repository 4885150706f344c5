package dto

import (
	"strings"
	"time"

	"corpbooking/internal/domains/servicelog/model"
	vehicleDto "corpbooking/internal/domains/vehicle/model/dto"
	"corpbooking/shared/constant"
	"corpbooking/shared/failure"
	gModel "corpbooking/shared/model"
	"corpbooking/shared/timezone"

	"github.com/google/uuid"
)

type CreateServiceLogRequest struct {
	ServiceDate     string  `json:"service_date"     validate:"required"`
	ServiceType     string  `json:"service_type"     validate:"required,max=100"`
	Description     string  `json:"description"      validate:"omitempty,max=1000"`
	Cost            float64 `json:"cost"             validate:"gte=0"`
	OdometerReading *int    `json:"odometer_reading" validate:"omitempty,gte=0"`
}

func (c *CreateServiceLogRequest) ToModel(vehicleID, user string) (model.ServiceLog, error) {
	serviceDate, err := timezone.Parse(constant.DateOnlyFormat, strings.TrimSpace(c.ServiceDate))
	if err != nil {
		return model.ServiceLog{}, failure.BadRequestFromString("service_date must use the YYYY-MM-DD format")
	}

	now := timezone.Now()

	return model.ServiceLog{
		ID:              uuid.NewString(),
		VehicleID:       vehicleID,
		ServiceDate:     serviceDate,
		ServiceType:     strings.TrimSpace(c.ServiceType),
		Description:     c.Description,
		Cost:            c.Cost,
		OdometerReading: c.OdometerReading,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
			CreatedBy: user,
			UpdatedBy: user,
		},
	}, nil
}

type ServiceLogResponse struct {
	ID              string    `json:"id"`
	VehicleID       string    `json:"vehicle_id"`
	ServiceDate     string    `json:"service_date"`
	ServiceType     string    `json:"service_type"`
	Description     string    `json:"description"`
	Cost            float64   `json:"cost"`
	OdometerReading *int      `json:"odometer_reading,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	CreatedBy       string    `json:"created_by"`
}

func (r *ServiceLogResponse) FromModel(model model.ServiceLog) {
	r.ID = model.ID
	r.VehicleID = model.VehicleID
	r.ServiceDate = model.ServiceDate.Format(constant.DateOnlyFormat)
	r.ServiceType = model.ServiceType
	r.Description = model.Description
	r.Cost = model.Cost
	r.OdometerReading = model.OdometerReading
	r.CreatedAt = model.CreatedAt
	r.CreatedBy = model.CreatedBy
}

// VehicleServicesResponse carries the vehicle header with its history, newest service first.
type VehicleServicesResponse struct {
	Vehicle  vehicleDto.VehicleResponse `json:"vehicle"`
	Services []ServiceLogResponse       `json:"services"`
}

func (r *VehicleServicesResponse) FromModels(vehicle vehicleDto.VehicleResponse, models []model.ServiceLog) {
	r.Vehicle = vehicle

	r.Services = make([]ServiceLogResponse, len(models))
	for i, mod := range models {
		r.Services[i].FromModel(mod)
	}
}
