package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"salao_backend/internal/models"
)

// AppointmentRepository defines appointment database operations. Listings
// join the client, service and employee display names; the client name and
// phone come back encrypted and are opened by the service layer's codec-aware
// client repository, so this repository returns raw ciphertext in those
// joined fields and the service swaps them for plaintext.
type AppointmentRepository interface {
	CreateAppointment(executor SQLExecutor, appointment *models.Appointment) (int64, error)
	GetAppointmentByID(executor SQLExecutor, id int64) (*models.Appointment, error)
	GetAppointments(executor SQLExecutor, filters models.AppointmentFilters) ([]models.Appointment, error)
	GetAppointmentsByDateAndStatus(executor SQLExecutor, date, status string) ([]models.Appointment, error)
	ExistsAtSlot(executor SQLExecutor, date, timeSlot string, excludeID int64) (bool, error)
	UpdateAppointment(executor SQLExecutor, appointment *models.Appointment) error
	DeleteAppointment(executor SQLExecutor, id int64) error
}

type appointmentRepository struct{}

// NewAppointmentRepository creates a new instance of AppointmentRepository.
func NewAppointmentRepository() AppointmentRepository {
	return &appointmentRepository{}
}

const appointmentColumns = `a.id, a.client_id, a.service_id, a.employee_id, a.date, a.time, a.status,
	a.notes, a.created_at, a.updated_at, s.name, f.full_name`

func scanAppointment(row interface {
	Scan(dest ...interface{}) error
}) (*models.Appointment, error) {
	appointment := &models.Appointment{}
	err := row.Scan(
		&appointment.ID, &appointment.ClientID, &appointment.ServiceID, &appointment.EmployeeID,
		&appointment.Date, &appointment.Time, &appointment.Status, &appointment.Notes,
		&appointment.CreatedAt, &appointment.UpdatedAt,
		&appointment.ServiceName, &appointment.EmployeeName,
	)
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

func (r *appointmentRepository) CreateAppointment(executor SQLExecutor, appointment *models.Appointment) (int64, error) {
	now := time.Now()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	query := `INSERT INTO agendamentos (client_id, service_id, employee_id, date, time, status, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id`
	err := executor.QueryRow(query,
		appointment.ClientID, appointment.ServiceID, appointment.EmployeeID,
		appointment.Date, appointment.Time, appointment.Status, appointment.Notes,
		appointment.CreatedAt, appointment.UpdatedAt,
	).Scan(&appointment.ID)
	if err != nil {
		return 0, mapWriteError(err, "creating appointment")
	}
	return appointment.ID, nil
}

func (r *appointmentRepository) GetAppointmentByID(executor SQLExecutor, id int64) (*models.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
	          FROM agendamentos a
	          JOIN servicos s ON s.id = a.service_id
	          JOIN funcionarios f ON f.id = a.employee_id
	          WHERE a.id = $1`
	appointment, err := scanAppointment(executor.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting appointment by ID %d: %v", ErrDatabaseError, id, err)
	}
	return appointment, nil
}

func (r *appointmentRepository) GetAppointments(executor SQLExecutor, filters models.AppointmentFilters) ([]models.Appointment, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + appointmentColumns + `
	          FROM agendamentos a
	          JOIN servicos s ON s.id = a.service_id
	          JOIN funcionarios f ON f.id = a.employee_id`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.StartDate != nil && *filters.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", argCount))
		args = append(args, *filters.StartDate)
		argCount++
	}
	if filters.EndDate != nil && *filters.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", argCount))
		args = append(args, *filters.EndDate)
		argCount++
	}
	if filters.Service != nil && *filters.Service != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(s.name) = LOWER($%d)", argCount))
		args = append(args, *filters.Service)
		argCount++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argCount))
		args = append(args, *filters.Status)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY a.date ASC, a.time ASC")

	rows, err := executor.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying appointments: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	appointments := []models.Appointment{}
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning appointment: %v", ErrDatabaseError, err)
		}
		appointments = append(appointments, *appointment)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating appointment rows: %v", ErrDatabaseError, err)
	}
	return appointments, nil
}

// GetAppointmentsByDateAndStatus backs the daily reminder job.
func (r *appointmentRepository) GetAppointmentsByDateAndStatus(executor SQLExecutor, date, status string) ([]models.Appointment, error) {
	return r.GetAppointments(executor, models.AppointmentFilters{
		StartDate: &date,
		EndDate:   &date,
		Status:    &status,
	})
}

// ExistsAtSlot reports whether another appointment already occupies the exact
// date+time slot. excludeID lets an update keep its own slot.
func (r *appointmentRepository) ExistsAtSlot(executor SQLExecutor, date, timeSlot string, excludeID int64) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM agendamentos
	          WHERE date = $1 AND time = $2 AND status <> $3 AND id <> $4`
	err := executor.QueryRow(query, date, timeSlot, models.AppointmentCancelled, excludeID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("%w: checking slot availability: %v", ErrDatabaseError, err)
	}
	return count > 0, nil
}

func (r *appointmentRepository) UpdateAppointment(executor SQLExecutor, appointment *models.Appointment) error {
	appointment.UpdatedAt = time.Now()
	query := `UPDATE agendamentos SET
	            client_id = $1, service_id = $2, employee_id = $3, date = $4, time = $5,
	            status = $6, notes = $7, updated_at = $8
	          WHERE id = $9`
	result, err := executor.Exec(query,
		appointment.ClientID, appointment.ServiceID, appointment.EmployeeID,
		appointment.Date, appointment.Time, appointment.Status, appointment.Notes,
		appointment.UpdatedAt, appointment.ID,
	)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating appointment ID %d", appointment.ID))
	}
	return requireRowsAffected(result, "updating appointment")
}

func (r *appointmentRepository) DeleteAppointment(executor SQLExecutor, id int64) error {
	result, err := executor.Exec(`DELETE FROM agendamentos WHERE id = $1`, id)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("deleting appointment ID %d", id))
	}
	return requireRowsAffected(result, "deleting appointment")
}
