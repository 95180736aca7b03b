package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Clinic statuses, flipped by billing webhooks.
const (
	ClinicStatusActive    = "active"
	ClinicStatusSuspended = "suspended"
	ClinicStatusCanceled  = "canceled"
)

// Subscription plans.
const (
	PlanBasico  = "basico"
	PlanPremium = "premium"
)

// Clinic represents a tenant. All business data lives in the clinic's own
// database schema; the clinics table itself lives in the public schema.
type Clinic struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Name            string    `json:"name" db:"name" binding:"required"`
	Document        string    `json:"document" db:"document" binding:"required"`
	Plan            string    `json:"plan" db:"plan" binding:"required"`
	AsaasCustomerID *string   `json:"asaas_customer_id,omitempty" db:"asaas_customer_id"`
	Status          string    `json:"status" db:"status"`
	RenewalDate     time.Time `json:"renewal_date" db:"renewal_date"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// SchemaName returns the per-tenant PostgreSQL schema for this clinic.
func (c *Clinic) SchemaName() string {
	return "clinica_" + strings.ReplaceAll(c.ID.String(), "-", "_")
}
