package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salao_backend/internal/models"
)

func newAppointmentRepoFixture(t *testing.T) (AppointmentRepository, sqlmock.Sqlmock, SQLExecutor) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAppointmentRepository(), mock, db
}

func TestExistsAtSlotIgnoresCancelledAndSelf(t *testing.T) {
	repo, mock, db := newAppointmentRepoFixture(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM agendamentos`).
		WithArgs("2026-09-01", "10:00", models.AppointmentCancelled, int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	taken, err := repo.ExistsAtSlot(db, "2026-09-01", "10:00", 4)
	require.NoError(t, err)
	assert.False(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsAtSlotReportsConflict(t *testing.T) {
	repo, mock, db := newAppointmentRepoFixture(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM agendamentos`).
		WithArgs("2026-09-01", "10:00", models.AppointmentCancelled, int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	taken, err := repo.ExistsAtSlot(db, "2026-09-01", "10:00", 0)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestCreateAppointmentSlotIndexViolation(t *testing.T) {
	repo, mock, db := newAppointmentRepoFixture(t)

	mock.ExpectQuery("INSERT INTO agendamentos").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "idx_agendamentos_slot"})

	_, err := repo.CreateAppointment(db, &models.Appointment{
		ClientID: 1, ServiceID: 1, EmployeeID: 1,
		Date: "2026-09-01", Time: "10:00", Status: models.AppointmentPending,
	})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestGetAppointmentsBuildsFilters(t *testing.T) {
	repo, mock, db := newAppointmentRepoFixture(t)

	start := "2026-09-01"
	status := models.AppointmentConfirmed
	rows := sqlmock.NewRows([]string{
		"id", "client_id", "service_id", "employee_id", "date", "time", "status",
		"notes", "created_at", "updated_at", "service_name", "employee_name",
	})
	mock.ExpectQuery(`a\.date >= \$1 AND a\.status = \$2`).
		WithArgs(start, status).
		WillReturnRows(rows)

	list, err := repo.GetAppointments(db, models.AppointmentFilters{StartDate: &start, Status: &status})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}
