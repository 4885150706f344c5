package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"corpbooking/config"
	"corpbooking/infras/jwt"
	"corpbooking/infras/otel"
	adminModel "corpbooking/internal/domains/admin/model"
	adminDto "corpbooking/internal/domains/admin/model/dto"
	adminRepo "corpbooking/internal/domains/admin/repository"
	"corpbooking/internal/domains/auth/model/dto"
	"corpbooking/shared"
	"corpbooking/shared/constant"
	"corpbooking/shared/failure"
	"corpbooking/shared/password"
	"corpbooking/shared/timezone"

	"github.com/rs/zerolog/log"
)

const msgInvalidCredentials = "invalid username or password"

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Me(ctx context.Context) (adminDto.AdminResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	adminRepo  adminRepo.Admin
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(adminRepo adminRepo.Admin, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		adminRepo:  adminRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	username := req.NormalizedUsername()
	filter := adminRepo.ByUsername(username)

	admin, err := s.adminRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return res, failure.StorageUnavailable(err)
	}

	if admin.ID == constant.Empty {
		log.Warn().Str("username", username).Msg("login attempt with unknown username")

		return res, failure.Unauthorized(msgInvalidCredentials)
	}

	if err = password.Verify(req.Password, admin.PasswordHash); err != nil {
		if !errors.Is(err, password.ErrInvalidPassword) {
			log.Error().Err(err).Str("username", username).Msg("failed to verify password")
		} else {
			log.Warn().Str("username", username).Msg("login attempt with wrong password")
		}

		return res, failure.Unauthorized(msgInvalidCredentials)
	}

	token, err := s.jwtService.GenerateSessionToken(admin.ID, admin.Username, admin.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session token")

		return res, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := timezone.Now()
	loginUpdate := dto.UpdateLastLoginRequest{LastLoginAt: now}

	if password.NeedsRehash(admin.PasswordHash) {
		if loginUpdate.PasswordHash, err = password.Hash(req.Password); err != nil {
			log.Warn().Err(err).Str("admin_id", admin.ID).Msg("failed to rehash password")
		}
	}

	updatedFields := shared.TransformFields(loginUpdate, admin.Username)

	if err := s.adminRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Warn().Err(err).Str("admin_id", admin.ID).Msg("failed to update last login")
	} else {
		admin.LastLoginAt = &now
	}

	res.Admin.FromModel(admin)
	res.FromSessionToken(token)

	return res, nil
}

func (s *serviceImpl) Me(ctx context.Context) (res adminDto.AdminResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Me")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	admin, err := s.current(ctx)
	if err != nil {
		return res, err
	}

	res.FromModel(admin)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	admin, err := s.current(ctx)
	if err != nil {
		return err
	}

	if err = password.Verify(req.CurrentPassword, admin.PasswordHash); err != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return failure.BadRequest(err)
	}

	updatedFields := shared.TransformFields(dto.UpdatePasswordRequest{PasswordHash: hashedPassword}, admin.Username)

	if err = s.adminRepo.Update(ctx, updatedFields, shared.FilterByID(admin.ID, adminModel.FieldID, adminModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return failure.StorageUnavailable(err)
	}

	return nil
}

// current loads the admin placed on the context by the auth middleware.
func (s *serviceImpl) current(ctx context.Context) (adminModel.Admin, error) {
	adminID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if adminID == constant.Empty {
		return adminModel.Admin{}, failure.Unauthorized("authentication required")
	}

	admin, err := s.adminRepo.Get(ctx, shared.FilterByID(adminID, adminModel.FieldID, adminModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return admin, failure.StorageUnavailable(err)
	}

	if admin.ID == constant.Empty {
		return admin, failure.Unauthorized("session no longer valid")
	}

	return admin, nil
}
