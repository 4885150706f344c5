package vehicle_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"corpbooking/infras/otel/mocks"
	serviceLogDto "corpbooking/internal/domains/servicelog/model/dto"
	serviceLogMocks "corpbooking/internal/domains/servicelog/service/mocks"
	"corpbooking/internal/domains/vehicle/model"
	"corpbooking/internal/domains/vehicle/model/dto"
	vehicleMocks "corpbooking/internal/domains/vehicle/service/mocks"
	"corpbooking/internal/handlers/vehicle"
	"corpbooking/shared/constant"
)

const vehicleID = "8f14e45f-ceea-467a-9575-3f1c2b9f6c11"

type fixture struct {
	svc        *vehicleMocks.MockVehicle
	serviceLog *serviceLogMocks.MockServiceLog
	router     chi.Router
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		svc:        vehicleMocks.NewMockVehicle(ctrl),
		serviceLog: serviceLogMocks.NewMockServiceLog(ctrl),
	}

	handler := vehicle.New(f.svc, f.serviceLog, mocks.NewOtel())

	f.router = chi.NewRouter()
	f.router.Route("/v1", handler.Router)

	return f
}

func (f fixture) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	return req
}

func TestHandler_CreateVehicle_JSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "created",
			body: `{"name": "Innova", "vehicle_type": "MPV", "plate_number": "B 1234 XYZ", "year": 2021}`,
			setupMock: func(f fixture) {
				f.svc.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req dto.CreateVehicleRequest) (dto.VehicleResponse, error) {
						assert.Equal(t, "B 1234 XYZ", req.PlateNumber)
						require.NotNil(t, req.Year)
						assert.Equal(t, 2021, *req.Year)

						return dto.VehicleResponse{ID: vehicleID}, nil
					})
			},
			wantCode: http.StatusCreated,
		},
		{
			name:      "missing plate",
			body:      `{"name": "Innova", "vehicle_type": "MPV"}`,
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "duplicate plate",
			body: `{"name": "Innova", "vehicle_type": "MPV", "plate_number": "B 1234 XYZ"}`,
			setupMock: func(f fixture) {
				f.svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.VehicleResponse{}, model.ErrDuplicatePlate)
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			rec := f.serve(jsonRequest(http.MethodPost, "/v1/vehicles", tt.body))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandler_CreateVehicle_Multipart(t *testing.T) {
	f := newFixture(t)

	var body bytes.Buffer

	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField(dto.FormName, "Hiace"))
	require.NoError(t, writer.WriteField(dto.FormVehicleType, "Van"))
	require.NoError(t, writer.WriteField(dto.FormPlateNumber, "B 9 GA"))
	require.NoError(t, writer.WriteField(dto.FormYear, "2019"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/vehicles", &body)
	req.Header.Set(constant.RequestHeaderContentType, writer.FormDataContentType())

	f.svc.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req dto.CreateVehicleRequest) (dto.VehicleResponse, error) {
			assert.Equal(t, "Hiace", req.Name)
			assert.Nil(t, req.Photo)
			require.NotNil(t, req.Year)
			assert.Equal(t, 2019, *req.Year)

			return dto.VehicleResponse{ID: vehicleID}, nil
		})

	rec := f.serve(req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestHandler_GetVehicles(t *testing.T) {
	f := newFixture(t)

	f.svc.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(dto.GetVehiclesResponse{Vehicles: []dto.VehicleResponse{{ID: vehicleID}}, TotalData: 1, TotalPage: 1}, nil)

	rec := f.serve(httptest.NewRequest(http.MethodGet, "/v1/vehicles?is_active=true", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_UpdateVehicle(t *testing.T) {
	f := newFixture(t)

	f.svc.EXPECT().
		Update(gomock.Any(), gomock.Any(), vehicleID).
		DoAndReturn(func(_ context.Context, req dto.UpdateVehicleRequest, _ string) (dto.VehicleResponse, error) {
			require.NotNil(t, req.IsActive)
			assert.False(t, *req.IsActive)

			return dto.VehicleResponse{ID: vehicleID}, nil
		})

	rec := f.serve(jsonRequest(http.MethodPatch, "/v1/vehicles/"+vehicleID, `{"is_active": false}`))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_DeleteVehicle(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "deleted", wantCode: http.StatusOK},
		{name: "referenced by bookings", err: model.ErrInUse, wantCode: http.StatusConflict},
		{name: "unknown vehicle", err: model.ErrNotFound, wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.svc.EXPECT().Delete(gomock.Any(), vehicleID).Return(tt.err)

			rec := f.serve(httptest.NewRequest(http.MethodDelete, "/v1/vehicles/"+vehicleID, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHandler_VehicleServices(t *testing.T) {
	f := newFixture(t)

	f.serviceLog.EXPECT().
		List(gomock.Any(), vehicleID).
		Return(serviceLogDto.VehicleServicesResponse{Services: []serviceLogDto.ServiceLogResponse{}}, nil)
	f.serviceLog.EXPECT().
		Create(gomock.Any(), vehicleID, gomock.Any()).
		Return(serviceLogDto.ServiceLogResponse{ID: "s1"}, nil)
	f.serviceLog.EXPECT().
		Create(gomock.Any(), "missing", gomock.Any()).
		Return(serviceLogDto.ServiceLogResponse{}, model.ErrNotFound)

	body := `{"service_date": "2026-02-10", "service_type": "Oil change", "cost": 450000}`

	assert.Equal(t, http.StatusOK, f.serve(httptest.NewRequest(http.MethodGet, "/v1/vehicles/"+vehicleID+"/services", nil)).Code)
	assert.Equal(t, http.StatusCreated, f.serve(jsonRequest(http.MethodPost, "/v1/vehicles/"+vehicleID+"/services", body)).Code)
	assert.Equal(t, http.StatusNotFound, f.serve(jsonRequest(http.MethodPost, "/v1/vehicles/missing/services", body)).Code)
	assert.Equal(t, http.StatusBadRequest, f.serve(jsonRequest(http.MethodPost, "/v1/vehicles/"+vehicleID+"/services", `{"cost": 1}`)).Code)
}
