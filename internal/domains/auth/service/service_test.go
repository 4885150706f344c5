package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"corpbooking/config"
	"corpbooking/infras/jwt"
	jwtMocks "corpbooking/infras/jwt/mocks"
	"corpbooking/infras/otel/mocks"
	adminMocks "corpbooking/internal/domains/admin/mocks"
	adminModel "corpbooking/internal/domains/admin/model"
	"corpbooking/internal/domains/auth/model/dto"
	"corpbooking/internal/domains/auth/service"
	gDto "corpbooking/shared/dto"
	"corpbooking/shared/constant"
	"corpbooking/shared/failure"
	"corpbooking/shared/password"
	"corpbooking/shared/timezone"
)

const adminID = "0b8f5a7e-3c1d-4e2f-9a6b-7c8d9e0f1a2b"

func newAdmin(t *testing.T, plain string) adminModel.Admin {
	t.Helper()

	hash, err := password.Hash(plain)
	require.NoError(t, err)

	return adminModel.Admin{
		ID:           adminID,
		Username:     "ga.admin",
		PasswordHash: hash,
		Name:         "General Affairs",
		Role:         constant.RoleAdmin,
	}
}

func sessionCtx() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, adminID)

	return context.WithValue(ctx, constant.ContextKeyUsername, "ga.admin")
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdminRepo := adminMocks.NewMockAdmin(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(mockAdminRepo, &config.Config{}, mocks.NewOtel(), mockJWT)

	validAdmin := newAdmin(t, "s3cret-admin")

	legacyHash, err := bcrypt.GenerateFromPassword([]byte("s3cret-admin"), bcrypt.MinCost)
	require.NoError(t, err)

	legacyAdmin := validAdmin
	legacyAdmin.PasswordHash = string(legacyHash)

	expires := timezone.Now().Add(24 * time.Hour)

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantCode  int
		wantToken string
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Username: " GA.Admin ", Password: "s3cret-admin"},
			setupMock: func() {
				mockAdminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validAdmin, nil)
				mockJWT.EXPECT().
					GenerateSessionToken(validAdmin.ID, validAdmin.Username, validAdmin.Role).
					Return(&jwt.SessionToken{Token: "signed", TokenID: "tid", ExpiresAt: expires}, nil)
				mockAdminRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantToken: "signed",
		},
		{
			name: "outdated hash cost is upgraded",
			req:  dto.LoginRequest{Username: "ga.admin", Password: "s3cret-admin"},
			setupMock: func() {
				mockAdminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(legacyAdmin, nil)
				mockJWT.EXPECT().
					GenerateSessionToken(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&jwt.SessionToken{Token: "signed", ExpiresAt: expires}, nil)
				mockAdminRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						hash, ok := fields[adminModel.FieldPasswordHash].(string)
						require.True(t, ok)
						assert.False(t, password.NeedsRehash(hash))
						assert.NoError(t, password.Verify("s3cret-admin", hash))

						return nil
					})
			},
			wantToken: "signed",
		},
		{
			name: "last login bookkeeping failure does not fail login",
			req:  dto.LoginRequest{Username: "ga.admin", Password: "s3cret-admin"},
			setupMock: func() {
				mockAdminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validAdmin, nil)
				mockJWT.EXPECT().
					GenerateSessionToken(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&jwt.SessionToken{Token: "signed", ExpiresAt: expires}, nil)
				mockAdminRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantToken: "signed",
		},
		{
			name: "unknown username",
			req:  dto.LoginRequest{Username: "nobody", Password: "s3cret-admin"},
			setupMock: func() {
				mockAdminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(adminModel.Admin{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Username: "ga.admin", Password: "not-it"},
			setupMock: func() {
				mockAdminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validAdmin, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "storage failure",
			req:  dto.LoginRequest{Username: "ga.admin", Password: "s3cret-admin"},
			setupMock: func() {
				mockAdminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(adminModel.Admin{}, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Empty(t, res.Token)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, res.Token)
			assert.Equal(t, expires, res.ExpiresAt)
			assert.Equal(t, validAdmin.ID, res.Admin.ID)
		})
	}
}

func TestAuthService_Login_SameMessageForUnknownUserAndWrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdminRepo := adminMocks.NewMockAdmin(ctrl)
	svc := service.New(mockAdminRepo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

	validAdmin := newAdmin(t, "s3cret-admin")

	mockAdminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(adminModel.Admin{}, nil)
	mockAdminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validAdmin, nil)

	_, unknownErr := svc.Login(context.Background(), dto.LoginRequest{Username: "nobody", Password: "x"})
	_, wrongErr := svc.Login(context.Background(), dto.LoginRequest{Username: "ga.admin", Password: "x"})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestAuthService_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdminRepo := adminMocks.NewMockAdmin(ctrl)
	svc := service.New(mockAdminRepo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

	validAdmin := newAdmin(t, "s3cret-admin")

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantCode  int
	}{
		{
			name: "current admin",
			ctx:  sessionCtx(),
			setupMock: func() {
				mockAdminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validAdmin, nil)
			},
		},
		{
			name:      "no principal on context",
			ctx:       context.Background(),
			setupMock: func() {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "admin removed after login",
			ctx:  sessionCtx(),
			setupMock: func() {
				mockAdminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(adminModel.Admin{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Me(tt.ctx)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "ga.admin", res.Username)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdminRepo := adminMocks.NewMockAdmin(ctrl)
	svc := service.New(mockAdminRepo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

	validAdmin := newAdmin(t, "s3cret-admin")

	tests := []struct {
		name      string
		req       dto.ChangePasswordRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "password changed",
			req:  dto.ChangePasswordRequest{CurrentPassword: "s3cret-admin", NewPassword: "n3w-s3cret"},
			setupMock: func() {
				mockAdminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validAdmin, nil)
				mockAdminRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						hash, ok := fields[adminModel.FieldPasswordHash].(string)
						require.True(t, ok)
						assert.NoError(t, password.Verify("n3w-s3cret", hash))

						return nil
					})
			},
		},
		{
			name: "current password incorrect",
			req:  dto.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "n3w-s3cret"},
			setupMock: func() {
				mockAdminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validAdmin, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "update failure",
			req:  dto.ChangePasswordRequest{CurrentPassword: "s3cret-admin", NewPassword: "n3w-s3cret"},
			setupMock: func() {
				mockAdminRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validAdmin, nil)
				mockAdminRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.ChangePassword(sessionCtx(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}
