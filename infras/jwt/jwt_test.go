package jwt_test

import (
	"testing"
	"time"

	"corpbooking/config"
	"corpbooking/infras/jwt"
	"corpbooking/shared/constant"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "corpbooking"
	cfg.App.Session.ExpireHours = 24
	cfg.JWT.SessionSecret = secret

	return cfg
}

func TestGenerateAndValidate(t *testing.T) {
	service := jwt.New(newConfig("s3cret"))

	token, err := service.GenerateSessionToken("admin-1", "ops", constant.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, token.TokenID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), token.ExpiresAt, time.Minute)

	claims, err := service.ValidateToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)
	assert.Equal(t, "ops", claims.Username)
	assert.Equal(t, constant.RoleAdmin, claims.Role)
	assert.Equal(t, token.TokenID, claims.ID)
}

func TestValidateToken_Failures(t *testing.T) {
	service := jwt.New(newConfig("s3cret"))

	other, err := jwt.New(newConfig("another")).GenerateSessionToken("admin-1", "ops", constant.RoleAdmin)
	require.NoError(t, err)

	expired, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, jwt.Claims{
		AdminID: "admin-1",
		Role:    constant.RoleAdmin,
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	noRole, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, jwt.Claims{
		AdminID: "admin-1",
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "garbage", token: "not-a-token", wantErr: jwt.ErrInvalidToken},
		{name: "wrong secret", token: other.Token, wantErr: jwt.ErrInvalidToken},
		{name: "expired", token: expired, wantErr: jwt.ErrExpiredToken},
		{name: "missing role", token: noRole, wantErr: jwt.ErrInvalidClaim},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ValidateToken(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMissingSecret(t *testing.T) {
	service := jwt.New(newConfig(""))

	_, err := service.GenerateSessionToken("admin-1", "ops", constant.RoleAdmin)
	assert.ErrorIs(t, err, jwt.ErrMissingSecret)

	_, err = service.ValidateToken("anything")
	assert.ErrorIs(t, err, jwt.ErrMissingSecret)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.ErrorIs(t, err, jwt.ErrMissingHeader)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	assert.ErrorIs(t, err, jwt.ErrMalformedBearer)
}
