package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"corpbooking/config"
	"corpbooking/infras/metrics"
	"corpbooking/infras/otel"
	"corpbooking/internal/domains/booking/conflict"
	"corpbooking/internal/domains/booking/event"
	"corpbooking/internal/domains/booking/model"
	"corpbooking/internal/domains/booking/model/dto"
	"corpbooking/internal/domains/booking/repository"
	roomRepo "corpbooking/internal/domains/room/repository"
	vehicleRepo "corpbooking/internal/domains/vehicle/repository"
	"corpbooking/shared"
	"corpbooking/shared/cache"
	"corpbooking/shared/constant"
	gDto "corpbooking/shared/dto"
	"corpbooking/shared/failure"
	"corpbooking/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

const (
	operationCreate  = "create"
	operationApprove = "approve"
)

var ErrEmptyUpdate = failure.BadRequestFromString("update request cannot be empty")

// candidateParams orders conflict candidates by start so reported conflicts read chronologically.
var candidateParams = gDto.QueryParams{SortBy: model.FieldStartTime, SortDir: gDto.SortDirAsc}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetByRequester(ctx context.Context, name string) ([]dto.BookingResponse, error)
	SetStatus(ctx context.Context, id, status string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
	CheckConflict(ctx context.Context, ref model.ResourceRef, start, end time.Time) (conflict.Result, error)
	CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	Stats(ctx context.Context) (dto.StatsResponse, error)
	Export(ctx context.Context, filter gDto.FilterGroup) ([]byte, error)
}

type serviceImpl struct {
	repo        repository.Booking
	vehicleRepo vehicleRepo.Vehicle
	roomRepo    roomRepo.Room
	publisher   event.Publisher
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Booking,
	vehicleRepo vehicleRepo.Vehicle,
	roomRepo roomRepo.Room,
	publisher event.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:        repo,
		vehicleRepo: vehicleRepo,
		roomRepo:    roomRepo,
		publisher:   publisher,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func actor(ctx context.Context) string {
	if username, ok := ctx.Value(constant.ContextKeyUsername).(string); ok && username != "" {
		return username
	}

	return constant.ContextGuest
}

// storageErr keeps client-facing failures and maps everything else to StorageUnavailable.
func storageErr(err error) error {
	var fail *failure.Failure
	if err == nil || errors.As(err, &fail) {
		return err
	}

	return failure.StorageUnavailable(err)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := req.ToModel(actor(ctx))
	if err != nil {
		return res, err
	}

	if err = s.ensureResourceExists(ctx, booking); err != nil {
		return res, err
	}

	ref := booking.Ref()

	err = s.repo.WithResourceLock(ctx, ref.LockKey(), func(sqltx *sqlx.Tx) error {
		candidates, err := s.repo.GetAllTx(ctx, sqltx, candidateParams, repository.BlockingFilter(ref, booking.StartTime, booking.EndTime))
		if err != nil {
			return storageErr(err)
		}

		result, err := conflict.Detect(ref, booking.StartTime, booking.EndTime, candidates, "")
		if err != nil {
			return err
		}

		if result.HasConflict {
			return &model.ConflictError{Conflicts: result.Conflicts}
		}

		return storageErr(s.repo.InsertTx(ctx, sqltx, booking))
	})
	if err != nil {
		if _, ok := model.AsConflict(err); ok {
			metrics.IncBookingConflict(operationCreate)
		} else {
			log.Error().Err(err).Msg("failed to create booking")
		}

		return res, storageErr(err)
	}

	metrics.IncBookingCreated(string(booking.ResourceKind))

	s.afterWrite(ctx, "", newEvent(booking, model.EventCreated, "", booking.Status, booking.CreatedBy))

	res.FromModel(booking)

	return res, nil
}

// ensureResourceExists rejects a resource id that is not in the registry of its kind.
func (s *serviceImpl) ensureResourceExists(ctx context.Context, booking model.Booking) error {
	if booking.ResourceID == nil {
		return nil
	}

	var (
		exist bool
		err   error
	)

	switch booking.ResourceKind {
	case model.ResourceVehicle:
		exist, err = s.vehicleRepo.Exist(ctx, vehicleRepo.ByID(*booking.ResourceID))
	case model.ResourceMeetingRoom, model.ResourceTrainingCenter:
		exist, err = s.roomRepo.Exist(ctx, roomRepo.ByID(*booking.ResourceID))
	default:
		return model.ErrInvalidResourceKind
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to check if resource exists")

		return failure.StorageUnavailable(err)
	}

	if !exist {
		return failure.BadRequestFromString("resource does not exist")
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, failure.StorageUnavailable(err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, failure.StorageUnavailable(err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	if uuid.Validate(id) != nil {
		return model.Booking{}, model.ErrNotFound
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, failure.StorageUnavailable(err)
	}

	if booking.ID == constant.Empty {
		return booking, model.ErrNotFound
	}

	return booking, nil
}

func (s *serviceImpl) GetByRequester(ctx context.Context, name string) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByRequester")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if name == "" {
		return nil, failure.BadRequestFromString("name is required")
	}

	filter := dto.ListFilter{RequesterName: name}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldCreatedAt, SortDir: gDto.SortDirDesc}, filter.ToFilterGroup())
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings by requester")

		return nil, failure.StorageUnavailable(err)
	}

	return dto.FromModels(models), nil
}

// SetStatus moves a booking to status. Repeating the current status is a no-op.
func (s *serviceImpl) SetStatus(ctx context.Context, id, status string) (dto.BookingResponse, error) {
	if _, err := model.ParseStatus(status); err != nil {
		return dto.BookingResponse{}, err
	}

	return s.Update(ctx, dto.UpdateBookingRequest{Status: status}, id)
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Status == "" && !req.HasFields() {
		return res, ErrEmptyUpdate
	}

	var target model.Status

	if req.Status != "" {
		if target, err = model.ParseStatus(req.Status); err != nil {
			return res, err
		}
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	user := actor(ctx)

	fields := map[string]any{}
	if req.HasFields() {
		fields = shared.TransformFields(req, user)
	}

	statusChanged := false

	if target != "" {
		if statusChanged, err = model.Transition(current.Status, target); err != nil {
			return res, err
		}
	}

	if statusChanged {
		fields[model.FieldStatus] = string(target)
		fields[constant.FieldUpdatedAt] = timezone.Now()
		fields[constant.FieldUpdatedBy] = user
	}

	if len(fields) == 0 {
		res.FromModel(current)

		return res, nil
	}

	if err = s.write(ctx, current, fields, statusChanged && target == model.StatusApproved); err != nil {
		return res, err
	}

	updated, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	action := model.EventUpdated
	if statusChanged {
		action = model.EventStatusChanged

		metrics.IncBookingTransition(string(current.Status), string(target))
	}

	s.afterWrite(ctx, id, newEvent(updated, action, current.Status, updated.Status, user))

	res.FromModel(updated)

	return res, nil
}

// write persists fields. When approving with the re-check enabled, the
// conflict engine runs again under the resource lock, ignoring the booking itself.
func (s *serviceImpl) write(ctx context.Context, current model.Booking, fields map[string]any, approving bool) error {
	filter := shared.FilterByID(current.ID, model.FieldID, model.TableName)

	if !approving || !s.cfg.App.Booking.RecheckOnApprove {
		if err := s.repo.Update(ctx, fields, filter); err != nil {
			log.Error().Err(err).Msg("failed to update booking")

			return failure.StorageUnavailable(err)
		}

		return nil
	}

	ref := current.Ref()

	err := s.repo.WithResourceLock(ctx, ref.LockKey(), func(sqltx *sqlx.Tx) error {
		candidates, err := s.repo.GetAllTx(ctx, sqltx, candidateParams, repository.BlockingFilter(ref, current.StartTime, current.EndTime))
		if err != nil {
			return storageErr(err)
		}

		result, err := conflict.Detect(ref, current.StartTime, current.EndTime, candidates, current.ID)
		if err != nil {
			return err
		}

		if result.HasConflict {
			return &model.ConflictError{Conflicts: result.Conflicts}
		}

		return storageErr(s.repo.UpdateTx(ctx, sqltx, fields, filter))
	})
	if err != nil {
		if _, ok := model.AsConflict(err); ok {
			metrics.IncBookingConflict(operationApprove)
		} else {
			log.Error().Err(err).Msg("failed to approve booking")
		}

		return storageErr(err)
	}

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return failure.StorageUnavailable(err)
	}

	s.afterWrite(ctx, id, newEvent(current, model.EventDeleted, current.Status, "", actor(ctx)))

	return nil
}

// CheckConflict reports approved bookings on ref overlapping [start, end]. It never writes.
func (s *serviceImpl) CheckConflict(ctx context.Context, ref model.ResourceRef, start, end time.Time) (res conflict.Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckConflict")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = conflict.ValidateRange(start, end); err != nil {
		return res, err
	}

	candidates, err := s.repo.GetAll(ctx, candidateParams, repository.BlockingFilter(ref, start, end))
	if err != nil {
		log.Error().Err(err).Msg("failed to load conflict candidates")

		return res, failure.StorageUnavailable(err)
	}

	return conflict.Detect(ref, start, end, candidates, "")
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	result, err := s.CheckConflict(ctx, req.Ref, req.Start, req.End)
	if err != nil {
		return res, err
	}

	res.Available = !result.HasConflict
	res.Conflicts = dto.FromModels(result.Conflicts)
	res.Message = "resource is available for the requested time range"

	if !res.Available {
		res.Message = "resource is not available for the requested time range"
	}

	return res, nil
}

func (s *serviceImpl) Stats(ctx context.Context) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return res, failure.StorageUnavailable(err)
	}

	res.FromCounts(counts)

	return res, nil
}

// afterWrite drops cached reads before returning so the next read sees the write.
// The audit event is published off the request path.
func (s *serviceImpl) afterWrite(ctx context.Context, id string, bookingEvent model.BookingEvent) {
	c := context.WithoutCancel(ctx)

	if id != constant.Empty {
		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}
	}

	shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
	shared.InvalidateCaches(c, s.cache, cacheCountBooking)

	go func() {
		if err := s.publisher.Publish(c, bookingEvent); err != nil {
			metrics.IncEventPublishFailure()
			log.Error().Err(err).Str("booking_id", bookingEvent.BookingID).Msg("failed to publish booking event")
		}
	}()
}

func newEvent(booking model.Booking, action model.EventAction, from, to model.Status, user string) model.BookingEvent {
	return model.BookingEvent{
		EventID:      uuid.NewString(),
		BookingID:    booking.ID,
		Action:       action,
		FromStatus:   from,
		ToStatus:     to,
		ResourceKind: string(booking.ResourceKind),
		ResourceName: booking.ResourceName,
		Actor:        user,
		OccurredAt:   timezone.Now(),
	}
}
