package models

import "time"

// Appointment statuses.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
)

// Appointment is a booked time slot. Date and Time are stored as discrete
// YYYY-MM-DD / HH:MM values; a slot is unique per date+time.
type Appointment struct {
	ID         int64     `json:"id" db:"id"`
	ClientID   int64     `json:"client_id" db:"client_id" binding:"required"`
	ServiceID  int64     `json:"service_id" db:"service_id" binding:"required"`
	EmployeeID int64     `json:"employee_id" db:"employee_id" binding:"required"`
	Date       string    `json:"date" db:"date" binding:"required"` // YYYY-MM-DD
	Time       string    `json:"time" db:"time" binding:"required"` // HH:MM
	Status     string    `json:"status" db:"status"`
	Notes      *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`

	// Joined display fields.
	ClientName   string `json:"client_name,omitempty" db:"-"`
	ClientPhone  string `json:"client_phone,omitempty" db:"-"`
	ServiceName  string `json:"service_name,omitempty" db:"-"`
	EmployeeName string `json:"employee_name,omitempty" db:"-"`
}

// AppointmentFilters narrows appointment listings.
type AppointmentFilters struct {
	StartDate  *string
	EndDate    *string
	Service    *string
	Status     *string
	ClientName *string
}
