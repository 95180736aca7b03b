package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles.
const (
	RoleAdmin = "Admin"
	RoleStaff = "Staff"
)

// User is an authenticated operator of a clinic. Users live in the public
// schema so login can resolve the tenant before any schema is bound.
type User struct {
	ID               int64     `json:"id" db:"id"`
	ClinicID         uuid.UUID `json:"clinic_id" db:"clinic_id"`
	FullName         string    `json:"full_name" db:"full_name" binding:"required"`
	Email            string    `json:"email" db:"email" binding:"required"`
	PasswordHash     string    `json:"-" db:"password_hash"`
	Role             string    `json:"role" db:"role"`
	TwoFactorSecret  *string   `json:"-" db:"two_factor_secret"`
	TwoFactorEnabled bool      `json:"two_factor_enabled" db:"two_factor_enabled"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}
