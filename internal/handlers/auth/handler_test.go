package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"corpbooking/config"
	"corpbooking/infras/otel/mocks"
	adminDto "corpbooking/internal/domains/admin/model/dto"
	"corpbooking/internal/domains/auth/model/dto"
	authMocks "corpbooking/internal/domains/auth/service/mocks"
	"corpbooking/internal/handlers/auth"
	"corpbooking/shared/constant"
	"corpbooking/shared/failure"
)

func newRouter(t *testing.T, env string) (*authMocks.MockAuth, chi.Router) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Env = env
	cfg.App.Session.CookieName = "admin_session"
	cfg.App.Session.ExpireHours = 24

	svc := authMocks.NewMockAuth(gomock.NewController(t))
	handler := auth.New(svc, cfg, mocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/v1", handler.Router)

	return svc, router
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "admin_session" {
			return cookie
		}
	}

	return nil
}

func TestHandler_Login(t *testing.T) {
	expiresAt := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name       string
		env        string
		body       string
		setupMock  func(svc *authMocks.MockAuth)
		wantCode   int
		wantCookie bool
		wantSecure bool
	}{
		{
			name: "success sets http only cookie",
			env:  "development",
			body: `{"username": "admin", "password": "secret-pass"}`,
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().Login(gomock.Any(), dto.LoginRequest{Username: "admin", Password: "secret-pass"}).
					Return(dto.LoginResponse{Admin: adminDto.AdminResponse{Username: "admin"}, ExpiresAt: expiresAt, Token: "session-token"}, nil)
			},
			wantCode:   http.StatusOK,
			wantCookie: true,
		},
		{
			name: "production cookie is secure",
			env:  "production",
			body: `{"username": "admin", "password": "secret-pass"}`,
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().Login(gomock.Any(), gomock.Any()).
					Return(dto.LoginResponse{ExpiresAt: expiresAt, Token: "session-token"}, nil)
			},
			wantCode:   http.StatusOK,
			wantCookie: true,
			wantSecure: true,
		},
		{
			name: "wrong credentials",
			env:  "development",
			body: `{"username": "admin", "password": "nope"}`,
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().Login(gomock.Any(), gomock.Any()).
					Return(dto.LoginResponse{}, failure.Unauthorized("invalid username or password"))
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:      "missing password",
			env:       "development",
			body:      `{"username": "admin"}`,
			setupMock: func(*authMocks.MockAuth) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t, tt.env)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/v1/admin/login", strings.NewReader(tt.body))
			req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			cookie := sessionCookie(rec)
			if !tt.wantCookie {
				assert.Nil(t, cookie)

				return
			}

			require.NotNil(t, cookie)
			assert.Equal(t, "session-token", cookie.Value)
			assert.True(t, cookie.HttpOnly)
			assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
			assert.Equal(t, "/", cookie.Path)
			assert.Equal(t, 24*60*60, cookie.MaxAge)
			assert.Equal(t, tt.wantSecure, cookie.Secure)
			assert.NotContains(t, rec.Body.String(), "session-token")
		})
	}
}

func TestHandler_Logout(t *testing.T) {
	_, router := newRouter(t, "development")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/admin/logout", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestHandler_MeAndChangePassword(t *testing.T) {
	svc, router := newRouter(t, "development")

	svc.EXPECT().Me(gomock.Any()).Return(adminDto.AdminResponse{Username: "admin"}, nil)
	svc.EXPECT().ChangePassword(gomock.Any(), dto.ChangePasswordRequest{CurrentPassword: "old-secret", NewPassword: "new-secret"}).
		Return(failure.Unauthorized("current password is incorrect"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/admin/me", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"admin"`)

	req := httptest.NewRequest(http.MethodPatch, "/v1/admin/password", strings.NewReader(`{"current_password": "old-secret", "new_password": "new-secret"}`))
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPatch, "/v1/admin/password", strings.NewReader(`{"current_password": "same-secret", "new_password": "same-secret"}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
