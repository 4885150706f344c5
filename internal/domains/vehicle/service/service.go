package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"corpbooking/config"
	"corpbooking/infras/otel"
	"corpbooking/infras/s3"
	bookingModel "corpbooking/internal/domains/booking/model"
	bookingRepo "corpbooking/internal/domains/booking/repository"
	"corpbooking/internal/domains/vehicle/model"
	"corpbooking/internal/domains/vehicle/model/dto"
	"corpbooking/internal/domains/vehicle/repository"
	"corpbooking/shared"
	"corpbooking/shared/base64"
	"corpbooking/shared/cache"
	"corpbooking/shared/constant"
	gDto "corpbooking/shared/dto"
	"corpbooking/shared/failure"
	gRepo "corpbooking/shared/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetVehicle    = "vehicle:get"
	cacheGetAllVehicle = "vehicle:gets"
	cacheCountVehicle  = "vehicle:count"
)

type Vehicle interface {
	Create(ctx context.Context, req dto.CreateVehicleRequest) (dto.VehicleResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetVehiclesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.VehicleResponse, error)
	Update(ctx context.Context, req dto.UpdateVehicleRequest, id string) (dto.VehicleResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo        repository.Vehicle
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	s3          s3.S3
}

func New(repo repository.Vehicle, bookingRepo bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Vehicle {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		s3:          s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateVehicleRequest) (res dto.VehicleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	photoURL := constant.Empty
	if req.HasUpload() {
		if photoURL, err = s.uploadPhoto(ctx, req.Photo, req.PhotoFile, req.PhotoData); err != nil {
			return res, err
		}
	}

	vehicle := req.ToModel(user, photoURL)

	if err = s.repo.Insert(ctx, vehicle); err != nil {
		if photoURL != constant.Empty {
			s.removePhoto(ctx, photoURL)
		}

		if gRepo.IsUniqueViolation(err) {
			return res, model.ErrDuplicatePlate
		}

		log.Error().Err(err).Msg("failed to create vehicle")

		return res, failure.StorageUnavailable(err)
	}

	s.invalidate(ctx, constant.Empty)

	res.FromModel(vehicle)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetVehiclesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllVehicle, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for vehicles")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicles")

		return res, failure.StorageUnavailable(err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save vehicles to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountVehicle, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count vehicles")

		return res, failure.StorageUnavailable(err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save vehicle count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.VehicleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetVehicle, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for vehicle")

		return res, nil
	}

	vehicle, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(vehicle)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save vehicle to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Vehicle, error) {
	if uuid.Validate(id) != nil {
		return model.Vehicle{}, model.ErrNotFound
	}

	vehicle, err := s.repo.Get(ctx, repository.ByID(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicle")

		return vehicle, failure.StorageUnavailable(err)
	}

	if vehicle.ID == constant.Empty {
		return vehicle, model.ErrNotFound
	}

	return vehicle, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateVehicleRequest, id string) (res dto.VehicleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	photoURL := constant.Empty
	if req.HasUpload() {
		if photoURL, err = s.uploadPhoto(ctx, req.Photo, req.PhotoFile, req.PhotoData); err != nil {
			return res, err
		}
	}

	updatedFields := shared.TransformFields(req, user)
	if photoURL != constant.Empty {
		updatedFields[model.FieldPhotoURL] = photoURL
	}

	filter := repository.ByID(id)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		if photoURL != constant.Empty {
			s.removePhoto(ctx, photoURL)
		}

		if gRepo.IsUniqueViolation(err) {
			return res, model.ErrDuplicatePlate
		}

		log.Error().Err(err).Msg("failed to update vehicle")

		return res, failure.StorageUnavailable(err)
	}

	if photoURL != constant.Empty && current.PhotoURL != constant.Empty {
		s.removePhoto(ctx, current.PhotoURL)
	}

	s.invalidate(ctx, id)

	updated, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(updated)

	return res, nil
}

// Delete removes a vehicle that no booking references. Its service logs go with it.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	referenced, err := s.bookingRepo.Exist(ctx, shared.FilterByID(id, bookingModel.FieldResourceID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check vehicle bookings")

		return failure.StorageUnavailable(err)
	}

	if referenced {
		return model.ErrInUse
	}

	if err = s.repo.Delete(ctx, repository.ByID(id)); err != nil {
		if gRepo.IsForeignKeyViolation(err) {
			return model.ErrInUse
		}

		log.Error().Err(err).Msg("failed to delete vehicle")

		return failure.StorageUnavailable(err)
	}

	if current.PhotoURL != constant.Empty {
		s.removePhoto(ctx, current.PhotoURL)
	}

	s.invalidate(ctx, id)

	return nil
}

// uploadPhoto stores a multipart photo or a base64 data url and returns its public url.
func (s *serviceImpl) uploadPhoto(ctx context.Context, header *multipart.FileHeader, file multipart.File, data string) (string, error) {
	if header != nil {
		url, err := s.s3.UploadFile(ctx, model.EntityName, uuid.NewString()+path.Ext(header.Filename), file, header)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload vehicle photo")

			return "", fmt.Errorf("failed to upload vehicle photo: %w", err)
		}

		return url, nil
	}

	contentType, raw, err := base64.Decode(data)
	if err != nil {
		return "", failure.BadRequest(err)
	}

	fileName := uuid.NewString()
	if _, ext, ok := strings.Cut(contentType, "/"); ok {
		fileName += "." + ext
	}

	url, err := s.s3.UploadFileBytes(ctx, model.EntityName, fileName, contentType, raw)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload vehicle photo")

		return "", fmt.Errorf("failed to upload vehicle photo: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) removePhoto(ctx context.Context, url string) {
	go func() {
		if err := s.s3.DeleteFile(context.WithoutCancel(ctx), url); err != nil {
			log.Warn().Err(err).Str("url", url).Msg("failed to delete vehicle photo")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetVehicle, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete vehicle from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllVehicle)
		shared.InvalidateCaches(c, s.cache, cacheCountVehicle)
	}()
}
