package dto

import (
	"strings"
	"time"

	"corpbooking/internal/domains/admin/model"
	"corpbooking/shared/constant"
	gModel "corpbooking/shared/model"
	"corpbooking/shared/timezone"

	"github.com/google/uuid"
)

type CreateAdminRequest struct {
	Username string `json:"username" yaml:"username" validate:"required,max=50"`
	Password string `json:"password" yaml:"password" validate:"required,min=8"`
	Name     string `json:"name"     yaml:"name"     validate:"required,max=100"`
}

func (c *CreateAdminRequest) ToModel(user, passwordHash string) model.Admin {
	now := timezone.Now()

	return model.Admin{
		ID:           uuid.NewString(),
		Username:     strings.ToLower(strings.TrimSpace(c.Username)),
		PasswordHash: passwordHash,
		Name:         c.Name,
		Role:         constant.RoleAdmin,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
			CreatedBy: user,
			UpdatedBy: user,
		},
	}
}

type AdminResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func (r *AdminResponse) FromModel(model model.Admin) {
	r.ID = model.ID
	r.Username = model.Username
	r.Name = model.Name
	r.Role = model.Role
	r.LastLoginAt = model.LastLoginAt
}
