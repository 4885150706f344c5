package room_test

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
	"corpbooking/internal/domains/room/model"
	"corpbooking/internal/domains/room/model/dto"
	roomMocks "corpbooking/internal/domains/room/service/mocks"
	"corpbooking/internal/handlers/room"
	"corpbooking/shared/constant"
)

const roomID = "5b2c7d1e-9f3a-4b6c-8d2e-1a0f9e8d7c6b"

func newRouter(t *testing.T) (*roomMocks.MockRoom, chi.Router) {
	t.Helper()

	svc := roomMocks.NewMockRoom(gomock.NewController(t))
	handler := room.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/v1", handler.Router)

	return svc, router
}

func serve(router chi.Router, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_CreateRoom(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(svc *roomMocks.MockRoom)
		wantCode  int
	}{
		{
			name: "training center",
			body: `{"name": "Training Center", "kind": "training_center", "capacity": 40}`,
			setupMock: func(svc *roomMocks.MockRoom) {
				svc.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error) {
						assert.Equal(t, string(model.KindTrainingCenter), req.Kind)
						assert.Equal(t, 40, req.Capacity)

						return dto.RoomResponse{ID: roomID}, nil
					})
			},
			wantCode: http.StatusCreated,
		},
		{
			name:      "unknown kind",
			body:      `{"name": "Garage", "kind": "parking"}`,
			setupMock: func(*roomMocks.MockRoom) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "duplicate name",
			body: `{"name": "Ruang Rapat A", "kind": "meeting_room"}`,
			setupMock: func(svc *roomMocks.MockRoom) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.RoomResponse{}, model.ErrDuplicateName)
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/v1/rooms", strings.NewReader(tt.body))
			req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

			assert.Equal(t, tt.wantCode, serve(router, req).Code)
		})
	}
}

func TestHandler_UpdateRoom_Multipart(t *testing.T) {
	svc, router := newRouter(t)

	var body bytes.Buffer

	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField(dto.FormCapacity, "12"))
	require.NoError(t, writer.WriteField(dto.FormIsActive, "false"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPatch, "/v1/rooms/"+roomID, &body)
	req.Header.Set(constant.RequestHeaderContentType, writer.FormDataContentType())

	svc.EXPECT().
		Update(gomock.Any(), gomock.Any(), roomID).
		DoAndReturn(func(_ context.Context, req dto.UpdateRoomRequest, _ string) (dto.RoomResponse, error) {
			require.NotNil(t, req.Capacity)
			assert.Equal(t, 12, *req.Capacity)
			require.NotNil(t, req.IsActive)
			assert.False(t, *req.IsActive)

			return dto.RoomResponse{ID: roomID}, nil
		})

	assert.Equal(t, http.StatusOK, serve(router, req).Code)
}

func TestHandler_GetAndDeleteRoom(t *testing.T) {
	svc := roomMocks.NewMockRoom(gomock.NewController(t))
	tracer := mocks.NewRecorder()
	handler := room.New(svc, tracer)

	router := chi.NewRouter()
	router.Route("/v1", handler.Router)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(dto.GetRoomsResponse{}, nil)
	svc.EXPECT().Get(gomock.Any(), roomID).Return(dto.RoomResponse{ID: roomID}, nil)
	svc.EXPECT().Get(gomock.Any(), "missing").Return(dto.RoomResponse{}, model.ErrNotFound)
	svc.EXPECT().Delete(gomock.Any(), roomID).Return(model.ErrInUse)

	assert.Equal(t, http.StatusOK, serve(router, httptest.NewRequest(http.MethodGet, "/v1/rooms?kind=meeting_room", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(router, httptest.NewRequest(http.MethodGet, "/v1/rooms/"+roomID, nil)).Code)
	assert.Equal(t, http.StatusNotFound, serve(router, httptest.NewRequest(http.MethodGet, "/v1/rooms/missing", nil)).Code)
	assert.Equal(t, http.StatusConflict, serve(router, httptest.NewRequest(http.MethodDelete, "/v1/rooms/"+roomID, nil)).Code)

	scope := tracer.Scope(constant.OtelHandlerScopeName + ".DeleteRoom")
	require.NotNil(t, scope)
	assert.True(t, scope.Ended)
	require.Len(t, scope.Errors, 1)
	assert.ErrorIs(t, scope.Errors[0], model.ErrInUse)
}
