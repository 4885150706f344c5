package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"corpbooking/infras/otel/mocks"
	logMocks "corpbooking/internal/domains/servicelog/mocks"
	"corpbooking/internal/domains/servicelog/model"
	"corpbooking/internal/domains/servicelog/model/dto"
	"corpbooking/internal/domains/servicelog/service"
	vehicleMocks "corpbooking/internal/domains/vehicle/mocks"
	vehicleModel "corpbooking/internal/domains/vehicle/model"
	"corpbooking/shared/constant"
	gDto "corpbooking/shared/dto"
	"corpbooking/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const vehicleID = "c9f0f895-fb98-4b91-9f0d-7d6e5b6b0c01"

func TestServiceLogService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := logMocks.NewMockServiceLog(ctrl)
	mockVehicles := vehicleMocks.NewMockVehicle(ctrl)
	svc := service.New(mockRepo, mockVehicles, mocks.NewOtel())

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
		wantLen   int
	}{
		{
			name: "newest service first",
			setupMock: func() {
				mockVehicles.EXPECT().Get(gomock.Any(), gomock.Any()).Return(vehicleModel.Vehicle{ID: vehicleID, Name: "Innova"}, nil)
				mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.ServiceLog, error) {
						assert.Contains(t, params.SortBy, model.FieldServiceDate+" DESC")

						return []model.ServiceLog{
							{ID: "2", ServiceDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
							{ID: "1", ServiceDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)},
						}, nil
					})
			},
			wantLen: 2,
		},
		{
			name: "unknown vehicle",
			setupMock: func() {
				mockVehicles.EXPECT().Get(gomock.Any(), gomock.Any()).Return(vehicleModel.Vehicle{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "storage failure",
			setupMock: func() {
				mockVehicles.EXPECT().Get(gomock.Any(), gomock.Any()).Return(vehicleModel.Vehicle{ID: vehicleID}, nil)
				mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.List(context.Background(), vehicleID)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Innova", res.Vehicle.Name)
			assert.Len(t, res.Services, tt.wantLen)
			assert.Equal(t, "2026-03-01", res.Services[0].ServiceDate)
		})
	}
}

func TestServiceLogService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := logMocks.NewMockServiceLog(ctrl)
	mockVehicles := vehicleMocks.NewMockVehicle(ctrl)
	svc := service.New(mockRepo, mockVehicles, mocks.NewOtel())

	odometer := 42000

	tests := []struct {
		name      string
		vehicleID string
		req       dto.CreateServiceLogRequest
		setupMock func()
		wantCode  int
	}{
		{
			name:      "appended",
			vehicleID: vehicleID,
			req:       dto.CreateServiceLogRequest{ServiceDate: "2026-10-01", ServiceType: "Oil change", Cost: 450000, OdometerReading: &odometer},
			setupMock: func() {
				mockVehicles.EXPECT().Get(gomock.Any(), gomock.Any()).Return(vehicleModel.Vehicle{ID: vehicleID}, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, entry model.ServiceLog) error {
					assert.Equal(t, vehicleID, entry.VehicleID)
					assert.Equal(t, "admin", entry.CreatedBy)

					return nil
				})
			},
		},
		{
			name:      "bad date",
			vehicleID: vehicleID,
			req:       dto.CreateServiceLogRequest{ServiceDate: "01/10/2026", ServiceType: "Oil change"},
			setupMock: func() {
				mockVehicles.EXPECT().Get(gomock.Any(), gomock.Any()).Return(vehicleModel.Vehicle{ID: vehicleID}, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "malformed vehicle id",
			vehicleID: "42",
			req:       dto.CreateServiceLogRequest{ServiceDate: "2026-10-01", ServiceType: "Oil change"},
			setupMock: func() {},
			wantCode:  http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUsername, "admin")
			res, err := svc.Create(ctx, tt.vehicleID, tt.req)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "2026-10-01", res.ServiceDate)
		})
	}
}
