package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"

	"corpbooking/infras/otel"
	"corpbooking/internal/domains/audit/model"
	"corpbooking/internal/domains/audit/model/dto"
	"corpbooking/internal/domains/audit/repository"
	bookingModel "corpbooking/internal/domains/booking/model"
	"corpbooking/shared"
	"corpbooking/shared/constant"
	gDto "corpbooking/shared/dto"
	"corpbooking/shared/failure"
	gRepo "corpbooking/shared/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrIncompleteEvent = errors.New("booking event without event or booking id")

type Audit interface {
	Record(ctx context.Context, event bookingModel.BookingEvent) error
	History(ctx context.Context, bookingID string) (dto.HistoryResponse, error)
}

type serviceImpl struct {
	repo repository.AuditLog
	otel otel.Otel
}

func New(repo repository.AuditLog, otel otel.Otel) Audit {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

// Record stores one event. A redelivered event is accepted without a second row.
func (s *serviceImpl) Record(ctx context.Context, event bookingModel.BookingEvent) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".audit.Record")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if event.EventID == constant.Empty || event.BookingID == constant.Empty {
		return ErrIncompleteEvent
	}

	if err = s.repo.Insert(ctx, dto.ToModel(event)); err != nil {
		if gRepo.IsUniqueViolation(err) {
			log.Debug().Str("event_id", event.EventID).Msg("booking event already recorded")

			return nil
		}

		log.Error().Err(err).Str("event_id", event.EventID).Msg("failed to record booking event")

		return failure.StorageUnavailable(err)
	}

	return nil
}

// History lists the audit rows of a booking, oldest first. Deleted bookings keep their history.
func (s *serviceImpl) History(ctx context.Context, bookingID string) (res dto.HistoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".audit.History")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if uuid.Validate(bookingID) != nil {
		return res, bookingModel.ErrNotFound
	}

	params := gDto.QueryParams{SortBy: model.FieldOccurredAt, SortDir: gDto.SortDirAsc}

	logs, err := s.repo.GetAll(ctx, params, shared.FilterByID(bookingID, model.FieldBookingID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking history")

		return res, failure.StorageUnavailable(err)
	}

	res.FromModels(bookingID, logs)

	return res, nil
}
