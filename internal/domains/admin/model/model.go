package model

import (
	"time"

	"corpbooking/shared/model"
)

const (
	TableName  = "admins"
	EntityName = "admin"

	FieldID           = "id"
	FieldUsername     = "username"
	FieldPasswordHash = "password_hash"
	FieldName         = "name"
	FieldRole         = "role"
	FieldLastLoginAt  = "last_login_at"
)

type Admin struct {
	ID           string     `db:"id"`
	Username     string     `db:"username"`
	PasswordHash string     `db:"password_hash"`
	Name         string     `db:"name"`
	Role         string     `db:"role"`
	LastLoginAt  *time.Time `db:"last_login_at"`
	model.Metadata
}
