package auth

import (
	"net/http"
	"time"

	"corpbooking/config"
	"corpbooking/infras/otel"
	adminDto "corpbooking/internal/domains/admin/model/dto"
	"corpbooking/internal/domains/auth/model/dto"
	"corpbooking/internal/domains/auth/service"
	"corpbooking/shared/constant"
	"corpbooking/shared/validator"
	"corpbooking/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Auth, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

// Router registers the admin routes one by one; /admin also hosts booking stats and export.
func (handler *Handler) Router(r chi.Router) {
	r.Post("/admin/login", handler.Login)
	r.Post("/admin/logout", handler.Logout)
	r.Get("/admin/me", handler.Me)
	r.Patch("/admin/password", handler.ChangePassword)
}

// Login handles admin login
// @Summary Admin login
// @Description Verify admin credentials and start a session carried in an HttpOnly cookie.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Data[dto.LoginResponse] "Logged in, session cookie set"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("username", req.NormalizedUsername()).Msg("admin login failed")

		response.WithError(w, err)

		return
	}

	http.SetCookie(w, handler.sessionCookie(res.Token, res.ExpiresAt))

	scope.AddEvent("Admin logged in")

	response.WithJSON(w, http.StatusOK, res)
}

// Logout ends the admin session
// @Summary Admin logout
// @Description Clear the session cookie.
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Message "Logged out"
// @Router /v1/admin/logout [post]
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	cookie := handler.sessionCookie("", time.Unix(0, 0))
	cookie.MaxAge = -1

	http.SetCookie(w, cookie)

	response.WithMessage(w, http.StatusOK, "Logged out")
}

// Me returns the logged in admin
// @Summary Current admin
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[adminDto.AdminResponse] "Current admin"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/me [get]
// @Security CookieAuth
func (handler *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Me")
	defer scope.End()

	var admin adminDto.AdminResponse

	admin, err := handler.service.Me(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get current admin")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, admin)
}

// ChangePassword changes the password of the logged in admin
// @Summary Change admin password
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} response.Message "Password changed"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/password [patch]
// @Security CookieAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangePassword")
	defer scope.End()

	req := dto.ChangePasswordRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.ChangePassword(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to change password")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Admin password changed")

	response.WithMessage(w, http.StatusOK, "Password changed")
}

func (handler *Handler) sessionCookie(value string, expiresAt time.Time) *http.Cookie {
	session := handler.cfg.App.Session

	return &http.Cookie{
		Name:     session.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int((time.Duration(session.ExpireHours) * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   handler.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
}
