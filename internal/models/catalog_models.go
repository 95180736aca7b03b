package models

import "time"

// Category groups products and services. Deletion is blocked while any
// product or service references it.
type Category struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" binding:"required"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Service is a bookable salon service (haircut, manicure, ...).
type Service struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes" binding:"required,gt=0"`
	Price           float64   `json:"price" db:"price" binding:"required,gt=0"`
	CategoryID      *int64    `json:"category_id,omitempty" db:"category_id"`
	Description     *string   `json:"description,omitempty" db:"description"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`

	Category *Category `json:"category,omitempty"`
}
