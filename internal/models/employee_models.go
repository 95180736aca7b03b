package models

import "time"

// Employee is a member of the clinic team who performs appointments.
type Employee struct {
	ID          int64     `json:"id" db:"id"`
	FullName    string    `json:"full_name" db:"full_name" binding:"required"`
	Email       string    `json:"email" db:"email" binding:"required"`
	PhoneNumber *string   `json:"phone_number,omitempty" db:"phone_number"`
	Role        *string   `json:"role,omitempty" db:"role"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
