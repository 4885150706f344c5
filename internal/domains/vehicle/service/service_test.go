package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"corpbooking/config"
	"corpbooking/infras/otel/mocks"
	s3Mocks "corpbooking/infras/s3/mocks"
	bookingMocks "corpbooking/internal/domains/booking/mocks"
	vehicleMocks "corpbooking/internal/domains/vehicle/mocks"
	"corpbooking/internal/domains/vehicle/model"
	"corpbooking/internal/domains/vehicle/model/dto"
	"corpbooking/internal/domains/vehicle/service"
	cacheMocks "corpbooking/shared/cache/mocks"
	"corpbooking/shared/constant"
	gDto "corpbooking/shared/dto"
	"corpbooking/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const vehicleID = "8f14e45f-ceea-467a-9575-3f1c2b9f6c11"

var errCacheMiss = errors.New("cache miss")

type fixture struct {
	repo    *vehicleMocks.MockVehicle
	booking *bookingMocks.MockBooking
	cache   *cacheMocks.MockRedisCache
	s3      *s3Mocks.MockS3
	svc     service.Vehicle
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:    vehicleMocks.NewMockVehicle(ctrl),
		booking: bookingMocks.NewMockBooking(ctrl),
		cache:   cacheMocks.NewMockRedisCache(ctrl),
		s3:      s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.svc = service.New(f.repo, f.booking, cfg, f.cache, mocks.NewOtel(), f.s3)

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func adminCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUsername, "admin")
}

func TestVehicleService_Create(t *testing.T) {
	year := 2021

	tests := []struct {
		name      string
		req       dto.CreateVehicleRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "plain json",
			req:  dto.CreateVehicleRequest{Name: "Innova", VehicleType: "MPV", PlateNumber: "b 1234  xyz", Year: &year},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, vehicle model.Vehicle) error {
					assert.Equal(t, "B 1234 XYZ", vehicle.PlateNumber)
					assert.True(t, vehicle.IsActive)
					assert.Equal(t, "admin", vehicle.CreatedBy)

					return nil
				})
			},
		},
		{
			name: "base64 photo is uploaded",
			req:  dto.CreateVehicleRequest{Name: "Hiace", VehicleType: "Van", PlateNumber: "B 9 AB", PhotoData: "data:image/png;base64,iVBORw0KGgo="},
			setupMock: func(f fixture) {
				f.s3.EXPECT().UploadFileBytes(gomock.Any(), model.EntityName, gomock.Any(), "image/png", gomock.Any()).Return("https://cdn.example.com/vehicle/a.png", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, vehicle model.Vehicle) error {
					assert.Equal(t, "https://cdn.example.com/vehicle/a.png", vehicle.PhotoURL)

					return nil
				})
			},
		},
		{
			name: "malformed photo",
			req:  dto.CreateVehicleRequest{Name: "Hiace", VehicleType: "Van", PlateNumber: "B 9 AB", PhotoData: "not a data url"},
			setupMock: func(fixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "duplicate plate removes uploaded photo",
			req:  dto.CreateVehicleRequest{Name: "Hiace", VehicleType: "Van", PlateNumber: "B 9 AB", PhotoData: "data:image/png;base64,iVBORw0KGgo="},
			setupMock: func(f fixture) {
				f.s3.EXPECT().UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn.example.com/vehicle/b.png", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(fmt.Errorf("failed to insert data (vehicle): %w", &pq.Error{Code: constant.PqErrorCodeUniqueViolation}))
				f.s3.EXPECT().DeleteFile(gomock.Any(), "https://cdn.example.com/vehicle/b.png").Return(nil).AnyTimes()
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "storage failure",
			req:  dto.CreateVehicleRequest{Name: "Innova", VehicleType: "MPV", PlateNumber: "B 1 A"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(adminCtx(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestVehicleService_Get(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "cache hit",
			id:   vehicleID,
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "found",
			id:   vehicleID,
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Vehicle{ID: vehicleID, Name: "Innova"}, nil)
			},
		},
		{
			name: "not found",
			id:   vehicleID,
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Vehicle{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "malformed id",
			id:   "abc",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			_, err := f.svc.Get(context.Background(), tt.id)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestVehicleService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Vehicle{{ID: "a", IsActive: true}, {ID: "b"}}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	assert.Len(t, res.Vehicles, 2)
}

func TestVehicleService_Update(t *testing.T) {
	active := false

	tests := []struct {
		name      string
		req       dto.UpdateVehicleRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "deactivate",
			req:  dto.UpdateVehicleRequest{IsActive: &active},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Vehicle{ID: vehicleID, IsActive: true}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, &active, fields[model.FieldIsActive])

					return nil
				})
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Vehicle{ID: vehicleID}, nil)
			},
		},
		{
			name: "new photo replaces the old one",
			req:  dto.UpdateVehicleRequest{PhotoData: "data:image/jpeg;base64,/9j/4AAQ"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Vehicle{ID: vehicleID, PhotoURL: "https://cdn.example.com/vehicle/old.jpg"}, nil)
				f.s3.EXPECT().UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), "image/jpeg", gomock.Any()).Return("https://cdn.example.com/vehicle/new.jpg", nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.s3.EXPECT().DeleteFile(gomock.Any(), "https://cdn.example.com/vehicle/old.jpg").Return(nil).AnyTimes()
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Vehicle{ID: vehicleID, PhotoURL: "https://cdn.example.com/vehicle/new.jpg"}, nil)
			},
		},
		{
			name: "unknown vehicle",
			req:  dto.UpdateVehicleRequest{Name: "Fortuner"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Vehicle{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "plate taken",
			req:  dto.UpdateVehicleRequest{PlateNumber: "B 1 A"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Vehicle{ID: vehicleID}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			_, err := f.svc.Update(adminCtx(), tt.req, vehicleID)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestVehicleService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   error
		wantCode  int
	}{
		{
			name: "unreferenced vehicle",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Vehicle{ID: vehicleID}, nil)
				f.booking.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "referenced by bookings",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Vehicle{ID: vehicleID}, nil)
				f.booking.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  model.ErrInUse,
			wantCode: http.StatusConflict,
		},
		{
			name: "booking inserted between check and delete",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Vehicle{ID: vehicleID}, nil)
				f.booking.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})
			},
			wantErr:  model.ErrInUse,
			wantCode: http.StatusConflict,
		},
		{
			name: "unknown vehicle",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Vehicle{}, nil)
			},
			wantErr:  model.ErrNotFound,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(adminCtx(), vehicleID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
