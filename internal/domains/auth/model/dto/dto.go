package dto

import (
	"strings"
	"time"

	"corpbooking/infras/jwt"
	adminDto "corpbooking/internal/domains/admin/model/dto"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required"`
}

// NormalizedUsername is the form stored in the admins table.
func (l *LoginRequest) NormalizedUsername() string {
	return strings.ToLower(strings.TrimSpace(l.Username))
}

// UpdateLastLoginRequest is written after a successful login. PasswordHash is
// only set when the stored hash used an outdated cost.
type UpdateLastLoginRequest struct {
	LastLoginAt  time.Time `db:"last_login_at"`
	PasswordHash string    `db:"password_hash"`
}

// LoginResponse carries the session token for the cookie only; it is never serialized.
type LoginResponse struct {
	Admin     adminDto.AdminResponse `json:"admin"`
	ExpiresAt time.Time              `json:"expires_at"`
	Token     string                 `json:"-"`
}

func (l *LoginResponse) FromSessionToken(token *jwt.SessionToken) {
	l.Token = token.Token
	l.ExpiresAt = token.ExpiresAt
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	PasswordHash string `db:"password_hash"`
}
