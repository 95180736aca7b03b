package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salao_backend/internal/models"
)

type appointmentFixture struct {
	service    AppointmentService
	repo       *fakeAppointmentRepository
	notifier   *fakeNotifier
	clientID   int64
	serviceID  int64
	employeeID int64
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()
	clientRepo := newFakeClientRepository()
	serviceRepo := newFakeServiceRepository()
	employeeRepo := newFakeEmployeeRepository()
	appointmentRepo := newFakeAppointmentRepository()
	notifier := &fakeNotifier{}

	clientID, err := clientRepo.CreateClient(nil, &models.Client{
		FullName: "Joana Lima", Email: "joana@example.com", PhoneNumber: "11988887777",
	})
	require.NoError(t, err)
	serviceID, err := serviceRepo.CreateService(nil, &models.Service{Name: "Corte", DurationMinutes: 30, Price: 50, IsActive: true})
	require.NoError(t, err)
	employeeID, err := employeeRepo.CreateEmployee(nil, &models.Employee{FullName: "Carla Dias", Email: "carla@example.com"})
	require.NoError(t, err)

	return &appointmentFixture{
		service:    NewAppointmentService(appointmentRepo, clientRepo, serviceRepo, employeeRepo, notifier),
		repo:       appointmentRepo,
		notifier:   notifier,
		clientID:   clientID,
		serviceID:  serviceID,
		employeeID: employeeID,
	}
}

func (f *appointmentFixture) newAppointment(date, timeSlot string) *models.Appointment {
	return &models.Appointment{
		ClientID:   f.clientID,
		ServiceID:  f.serviceID,
		EmployeeID: f.employeeID,
		Date:       date,
		Time:       timeSlot,
	}
}

func TestCreateAppointmentDefaultsToPending(t *testing.T) {
	f := newAppointmentFixture(t)

	appointment := f.newAppointment("2026-09-01", "10:00")
	require.NoError(t, f.service.CreateAppointment(nil, appointment))

	assert.Equal(t, models.AppointmentPending, appointment.Status)
	assert.Equal(t, "Joana Lima", appointment.ClientName)
	assert.Equal(t, []int64{appointment.ID}, f.notifier.created)
}

func TestCreateAppointmentRejectsTakenSlot(t *testing.T) {
	f := newAppointmentFixture(t)

	require.NoError(t, f.service.CreateAppointment(nil, f.newAppointment("2026-09-01", "10:00")))
	err := f.service.CreateAppointment(nil, f.newAppointment("2026-09-01", "10:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestCreateAppointmentAllowsCancelledSlot(t *testing.T) {
	f := newAppointmentFixture(t)

	first := f.newAppointment("2026-09-01", "10:00")
	require.NoError(t, f.service.CreateAppointment(nil, first))
	_, err := f.service.UpdateStatus(nil, first.ID, models.AppointmentCancelled)
	require.NoError(t, err)

	assert.NoError(t, f.service.CreateAppointment(nil, f.newAppointment("2026-09-01", "10:00")))
}

func TestCreateAppointmentValidatesSlotFormat(t *testing.T) {
	f := newAppointmentFixture(t)

	err := f.service.CreateAppointment(nil, f.newAppointment("01/09/2026", "10:00"))
	assert.ErrorIs(t, err, ErrValidation)
	err = f.service.CreateAppointment(nil, f.newAppointment("2026-09-01", "10h00"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateAppointmentValidatesReferences(t *testing.T) {
	f := newAppointmentFixture(t)

	appointment := f.newAppointment("2026-09-01", "10:00")
	appointment.ClientID = 999
	assert.ErrorIs(t, f.service.CreateAppointment(nil, appointment), ErrValidation)
}

func TestUpdateAppointmentKeepsOwnSlot(t *testing.T) {
	f := newAppointmentFixture(t)

	appointment := f.newAppointment("2026-09-01", "10:00")
	require.NoError(t, f.service.CreateAppointment(nil, appointment))

	// Rescheduling onto its own slot must not conflict with itself.
	appointment.Status = models.AppointmentPending
	appointment.Notes = strPtr("trazer referência")
	assert.NoError(t, f.service.UpdateAppointment(nil, appointment))
}

func strPtr(s string) *string { return &s }

func TestUpdateAppointmentRejectsOtherSlot(t *testing.T) {
	f := newAppointmentFixture(t)

	first := f.newAppointment("2026-09-01", "10:00")
	require.NoError(t, f.service.CreateAppointment(nil, first))
	second := f.newAppointment("2026-09-01", "11:00")
	require.NoError(t, f.service.CreateAppointment(nil, second))

	second.Time = "10:00"
	second.Status = models.AppointmentPending
	assert.ErrorIs(t, f.service.UpdateAppointment(nil, second), ErrSlotTaken)
}

func TestStatusTransitionNotifications(t *testing.T) {
	f := newAppointmentFixture(t)

	appointment := f.newAppointment("2026-09-01", "10:00")
	require.NoError(t, f.service.CreateAppointment(nil, appointment))

	_, err := f.service.UpdateStatus(nil, appointment.ID, models.AppointmentConfirmed)
	require.NoError(t, err)
	assert.Equal(t, []int64{appointment.ID}, f.notifier.confirmed)

	// Same status again is a no-op for notifications.
	_, err = f.service.UpdateStatus(nil, appointment.ID, models.AppointmentConfirmed)
	require.NoError(t, err)
	assert.Len(t, f.notifier.confirmed, 1)

	_, err = f.service.UpdateStatus(nil, appointment.ID, models.AppointmentCancelled)
	require.NoError(t, err)
	assert.Equal(t, []int64{appointment.ID}, f.notifier.cancelled)
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	f := newAppointmentFixture(t)

	appointment := f.newAppointment("2026-09-01", "10:00")
	require.NoError(t, f.service.CreateAppointment(nil, appointment))

	_, err := f.service.UpdateStatus(nil, appointment.ID, "done")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetAppointmentsFiltersByClientName(t *testing.T) {
	f := newAppointmentFixture(t)
	require.NoError(t, f.service.CreateAppointment(nil, f.newAppointment("2026-09-01", "10:00")))

	name := "joana"
	list, err := f.service.GetAppointments(nil, models.AppointmentFilters{ClientName: &name})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Joana Lima", list[0].ClientName)

	name = "ninguem"
	list, err = f.service.GetAppointments(nil, models.AppointmentFilters{ClientName: &name})
	require.NoError(t, err)
	assert.Empty(t, list)
}
