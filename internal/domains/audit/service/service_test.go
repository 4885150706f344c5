package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"corpbooking/infras/otel/mocks"
	auditMocks "corpbooking/internal/domains/audit/mocks"
	"corpbooking/internal/domains/audit/model"
	"corpbooking/internal/domains/audit/service"
	bookingModel "corpbooking/internal/domains/booking/model"
	"corpbooking/shared/constant"
	gDto "corpbooking/shared/dto"
	"corpbooking/shared/failure"
)

const bookingID = "3d9c6a2e-8b4f-4c1a-9e7d-5f2b1a0c9d8e"

func event() bookingModel.BookingEvent {
	return bookingModel.BookingEvent{
		EventID:      "7a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d",
		BookingID:    bookingID,
		Action:       bookingModel.EventStatusChanged,
		FromStatus:   bookingModel.StatusPending,
		ToStatus:     bookingModel.StatusApproved,
		ResourceKind: "vehicle",
		ResourceName: "Innova B 1234 XYZ",
		Actor:        "ga.admin",
		OccurredAt:   time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}
}

func TestAuditService_Record(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := auditMocks.NewMockAuditLog(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	tests := []struct {
		name      string
		event     bookingModel.BookingEvent
		setupMock func()
		wantErr   error
		wantCode  int
	}{
		{
			name:  "stored",
			event: event(),
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, log model.AuditLog) error {
						assert.Equal(t, bookingID, log.BookingID)
						assert.Equal(t, string(bookingModel.StatusPending), log.FromStatus)
						assert.Equal(t, string(bookingModel.StatusApproved), log.ToStatus)
						assert.False(t, log.RecordedAt.IsZero())

						return nil
					})
			},
		},
		{
			name:  "redelivered event",
			event: event(),
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
		},
		{
			name: "missing ids",
			event: func() bookingModel.BookingEvent {
				e := event()
				e.EventID = ""

				return e
			}(),
			setupMock: func() {},
			wantErr:   service.ErrIncompleteEvent,
		},
		{
			name:  "storage failure",
			event: event(),
			setupMock: func() {
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Record(context.Background(), tt.event)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantCode != 0:
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuditService_History(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := auditMocks.NewMockAuditLog(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantLen   int
		wantCode  int
	}{
		{
			name: "oldest first",
			id:   bookingID,
			setupMock: func() {
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.AuditLog, error) {
						assert.Equal(t, model.FieldOccurredAt, params.SortBy)
						assert.Equal(t, gDto.SortDirAsc, params.SortDir)

						return []model.AuditLog{{ID: "a", BookingID: bookingID}, {ID: "b", BookingID: bookingID}}, nil
					})
			},
			wantLen: 2,
		},
		{
			name: "no history yet",
			id:   bookingID,
			setupMock: func() {
				mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			wantLen: 0,
		},
		{
			name:      "malformed id",
			id:        "not-a-uuid",
			setupMock: func() {},
			wantCode:  http.StatusNotFound,
		},
		{
			name: "storage failure",
			id:   bookingID,
			setupMock: func() {
				mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.History(context.Background(), tt.id)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, res.Entries)
			assert.Len(t, res.Entries, tt.wantLen)
		})
	}
}
