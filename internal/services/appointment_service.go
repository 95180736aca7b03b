package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"salao_backend/internal/models"
	"salao_backend/internal/repositories"
)

// AppointmentService books and manages time slots. A slot is an exact
// date+time pair; two non-cancelled appointments can never share one.
type AppointmentService interface {
	CreateAppointment(executor repositories.SQLExecutor, appointment *models.Appointment) error
	GetAppointmentByID(executor repositories.SQLExecutor, id int64) (*models.Appointment, error)
	GetAppointments(executor repositories.SQLExecutor, filters models.AppointmentFilters) ([]models.Appointment, error)
	UpdateAppointment(executor repositories.SQLExecutor, appointment *models.Appointment) error
	UpdateStatus(executor repositories.SQLExecutor, id int64, status string) (*models.Appointment, error)
	DeleteAppointment(executor repositories.SQLExecutor, id int64) error
}

type appointmentService struct {
	appointmentRepo repositories.AppointmentRepository
	clientRepo      repositories.ClientRepository
	serviceRepo     repositories.ServiceRepository
	employeeRepo    repositories.EmployeeRepository
	notifications   NotificationService
}

// NewAppointmentService creates a new instance of AppointmentService.
func NewAppointmentService(
	appointmentRepo repositories.AppointmentRepository,
	clientRepo repositories.ClientRepository,
	serviceRepo repositories.ServiceRepository,
	employeeRepo repositories.EmployeeRepository,
	notifications NotificationService,
) AppointmentService {
	return &appointmentService{
		appointmentRepo: appointmentRepo,
		clientRepo:      clientRepo,
		serviceRepo:     serviceRepo,
		employeeRepo:    employeeRepo,
		notifications:   notifications,
	}
}

func validAppointmentStatus(status string) bool {
	switch status {
	case models.AppointmentPending, models.AppointmentConfirmed, models.AppointmentCancelled:
		return true
	}
	return false
}

func validateSlot(date, timeSlot string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if _, err := time.Parse("15:04", timeSlot); err != nil {
		return fmt.Errorf("%w: time must be HH:MM", ErrValidation)
	}
	return nil
}

// hydrateClient fills the decrypted client display fields.
func (s *appointmentService) hydrateClient(executor repositories.SQLExecutor, appointment *models.Appointment) error {
	client, err := s.clientRepo.GetClientByID(executor, appointment.ClientID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}
	appointment.ClientName = client.FullName
	appointment.ClientPhone = client.PhoneNumber
	return nil
}

func (s *appointmentService) checkReferences(executor repositories.SQLExecutor, appointment *models.Appointment) error {
	if _, err := s.clientRepo.GetClientByID(executor, appointment.ClientID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: client does not exist", ErrValidation)
		}
		return err
	}
	if _, err := s.serviceRepo.GetServiceByID(executor, appointment.ServiceID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: service does not exist", ErrValidation)
		}
		return err
	}
	if _, err := s.employeeRepo.GetEmployeeByID(executor, appointment.EmployeeID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: employee does not exist", ErrValidation)
		}
		return err
	}
	return nil
}

func (s *appointmentService) CreateAppointment(executor repositories.SQLExecutor, appointment *models.Appointment) error {
	if err := validateSlot(appointment.Date, appointment.Time); err != nil {
		return err
	}
	if err := s.checkReferences(executor, appointment); err != nil {
		return err
	}

	taken, err := s.appointmentRepo.ExistsAtSlot(executor, appointment.Date, appointment.Time, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlotTaken
	}

	if appointment.Status == "" {
		appointment.Status = models.AppointmentPending
	}
	if !validAppointmentStatus(appointment.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, appointment.Status)
	}

	if _, err := s.appointmentRepo.CreateAppointment(executor, appointment); err != nil {
		return err
	}

	created, err := s.appointmentRepo.GetAppointmentByID(executor, appointment.ID)
	if err == nil {
		appointment.ServiceName = created.ServiceName
		appointment.EmployeeName = created.EmployeeName
	}
	if err := s.hydrateClient(executor, appointment); err != nil {
		return err
	}
	s.notifications.SendAppointmentCreated(appointment)
	return nil
}

func (s *appointmentService) GetAppointmentByID(executor repositories.SQLExecutor, id int64) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetAppointmentByID(executor, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.hydrateClient(executor, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// GetAppointments lists with filters. Client-name matching happens here
// after decryption; the other filters are pushed down to SQL.
func (s *appointmentService) GetAppointments(executor repositories.SQLExecutor, filters models.AppointmentFilters) ([]models.Appointment, error) {
	appointments, err := s.appointmentRepo.GetAppointments(executor, filters)
	if err != nil {
		return nil, err
	}

	clients, err := s.clientRepo.GetAllClients(executor)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*models.Client, len(clients))
	for i := range clients {
		byID[clients[i].ID] = &clients[i]
	}
	for i := range appointments {
		if client, ok := byID[appointments[i].ClientID]; ok {
			appointments[i].ClientName = client.FullName
			appointments[i].ClientPhone = client.PhoneNumber
		}
	}

	if filters.ClientName != nil && *filters.ClientName != "" {
		needle := strings.ToLower(*filters.ClientName)
		filtered := appointments[:0]
		for _, appointment := range appointments {
			if strings.Contains(strings.ToLower(appointment.ClientName), needle) {
				filtered = append(filtered, appointment)
			}
		}
		appointments = filtered
	}
	return appointments, nil
}

func (s *appointmentService) UpdateAppointment(executor repositories.SQLExecutor, appointment *models.Appointment) error {
	if err := validateSlot(appointment.Date, appointment.Time); err != nil {
		return err
	}
	if !validAppointmentStatus(appointment.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, appointment.Status)
	}
	if err := s.checkReferences(executor, appointment); err != nil {
		return err
	}

	existing, err := s.appointmentRepo.GetAppointmentByID(executor, appointment.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	// An appointment keeps its own slot; only other bookings conflict.
	if appointment.Status != models.AppointmentCancelled {
		taken, err := s.appointmentRepo.ExistsAtSlot(executor, appointment.Date, appointment.Time, appointment.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlotTaken
		}
	}

	if err := s.appointmentRepo.UpdateAppointment(executor, appointment); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	updated, err := s.appointmentRepo.GetAppointmentByID(executor, appointment.ID)
	if err == nil {
		appointment.ServiceName = updated.ServiceName
		appointment.EmployeeName = updated.EmployeeName
	}
	if err := s.hydrateClient(executor, appointment); err != nil {
		return err
	}
	s.notifyTransition(existing.Status, appointment)
	return nil
}

// UpdateStatus flips only the status, keeping every other field.
func (s *appointmentService) UpdateStatus(executor repositories.SQLExecutor, id int64, status string) (*models.Appointment, error) {
	if !validAppointmentStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	appointment, err := s.appointmentRepo.GetAppointmentByID(executor, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	previous := appointment.Status
	appointment.Status = status
	if err := s.appointmentRepo.UpdateAppointment(executor, appointment); err != nil {
		return nil, err
	}
	if err := s.hydrateClient(executor, appointment); err != nil {
		return nil, err
	}
	s.notifyTransition(previous, appointment)
	return appointment, nil
}

func (s *appointmentService) notifyTransition(previous string, appointment *models.Appointment) {
	if previous == appointment.Status {
		return
	}
	switch appointment.Status {
	case models.AppointmentConfirmed:
		s.notifications.SendAppointmentConfirmed(appointment)
	case models.AppointmentCancelled:
		s.notifications.SendAppointmentCancelled(appointment)
	}
}

// DeleteAppointment removes a booking outright and tells the client it was
// cancelled, unless it already was.
func (s *appointmentService) DeleteAppointment(executor repositories.SQLExecutor, id int64) error {
	appointment, err := s.appointmentRepo.GetAppointmentByID(executor, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := s.appointmentRepo.DeleteAppointment(executor, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if appointment.Status != models.AppointmentCancelled {
		if err := s.hydrateClient(executor, appointment); err != nil {
			return err
		}
		s.notifications.SendAppointmentCancelled(appointment)
	}
	return nil
}
