package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"

	"corpbooking/infras/otel"
	"corpbooking/internal/domains/servicelog/model"
	"corpbooking/internal/domains/servicelog/model/dto"
	"corpbooking/internal/domains/servicelog/repository"
	vehicleModel "corpbooking/internal/domains/vehicle/model"
	vehicleDto "corpbooking/internal/domains/vehicle/model/dto"
	vehicleRepo "corpbooking/internal/domains/vehicle/repository"
	"corpbooking/shared"
	"corpbooking/shared/constant"
	gDto "corpbooking/shared/dto"
	"corpbooking/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ServiceLog interface {
	List(ctx context.Context, vehicleID string) (dto.VehicleServicesResponse, error)
	Create(ctx context.Context, vehicleID string, req dto.CreateServiceLogRequest) (dto.ServiceLogResponse, error)
}

type serviceImpl struct {
	repo        repository.ServiceLog
	vehicleRepo vehicleRepo.Vehicle
	otel        otel.Otel
}

func New(repo repository.ServiceLog, vehicleRepo vehicleRepo.Vehicle, otel otel.Otel) ServiceLog {
	return &serviceImpl{
		repo:        repo,
		vehicleRepo: vehicleRepo,
		otel:        otel,
	}
}

func (s *serviceImpl) List(ctx context.Context, vehicleID string) (res dto.VehicleServicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".servicelog.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	vehicle, err := s.vehicle(ctx, vehicleID)
	if err != nil {
		return res, err
	}

	params := gDto.QueryParams{SortBy: model.FieldServiceDate + " DESC, " + model.TableName + "." + constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}

	logs, err := s.repo.GetAll(ctx, params, shared.FilterByID(vehicleID, model.FieldVehicleID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicle services")

		return res, failure.StorageUnavailable(err)
	}

	res.FromModels(vehicle, logs)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, vehicleID string, req dto.CreateServiceLogRequest) (res dto.ServiceLogResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".servicelog.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	if _, err = s.vehicle(ctx, vehicleID); err != nil {
		return res, err
	}

	entry, err := req.ToModel(vehicleID, user)
	if err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, entry); err != nil {
		log.Error().Err(err).Msg("failed to insert vehicle service")

		return res, failure.StorageUnavailable(err)
	}

	res.FromModel(entry)

	return res, nil
}

func (s *serviceImpl) vehicle(ctx context.Context, id string) (res vehicleDto.VehicleResponse, err error) {
	if uuid.Validate(id) != nil {
		return res, vehicleModel.ErrNotFound
	}

	vehicle, err := s.vehicleRepo.Get(ctx, shared.FilterByID(id, vehicleModel.FieldID, vehicleModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicle")

		return res, failure.StorageUnavailable(err)
	}

	if vehicle.ID == constant.Empty {
		return res, vehicleModel.ErrNotFound
	}

	res.FromModel(vehicle)

	return res, nil
}
