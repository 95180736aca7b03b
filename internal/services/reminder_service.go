package services

import (
	"fmt"
	"time"

	"salao_backend/internal/models"
	"salao_backend/internal/repositories"
	"salao_backend/internal/tenantdb"
	"salao_backend/pkg/utils"
)

// ReminderService walks every active tenant each day and sends WhatsApp
// reminders for tomorrow's confirmed appointments.
type ReminderService struct {
	clinicRepo      repositories.ClinicRepository
	appointmentRepo repositories.AppointmentRepository
	clientRepo      repositories.ClientRepository
	registry        *tenantdb.Registry
	notifications   NotificationService
}

// NewReminderService creates a new instance of ReminderService.
func NewReminderService(
	clinicRepo repositories.ClinicRepository,
	appointmentRepo repositories.AppointmentRepository,
	clientRepo repositories.ClientRepository,
	registry *tenantdb.Registry,
	notifications NotificationService,
) *ReminderService {
	return &ReminderService{
		clinicRepo:      clinicRepo,
		appointmentRepo: appointmentRepo,
		clientRepo:      clientRepo,
		registry:        registry,
		notifications:   notifications,
	}
}

// SendDailyReminders runs once per day from the cron scheduler. A failing
// tenant never blocks the rest.
func (s *ReminderService) SendDailyReminders() {
	clinics, err := s.clinicRepo.GetActiveClinics()
	if err != nil {
		utils.LogError(fmt.Errorf("loading clinics for reminders: %w", err))
		return
	}

	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	total := 0
	for i := range clinics {
		sent, err := s.remindClinic(&clinics[i], tomorrow)
		if err != nil {
			utils.LogError(fmt.Errorf("reminders for clinic %s: %w", clinics[i].ID, err))
			continue
		}
		total += sent
	}
	utils.LogInfo(fmt.Sprintf("reminder run finished, %d messages for %s", total, tomorrow))
}

func (s *ReminderService) remindClinic(clinic *models.Clinic, date string) (int, error) {
	db, err := s.registry.Get(clinic.SchemaName())
	if err != nil {
		return 0, err
	}

	appointments, err := s.appointmentRepo.GetAppointmentsByDateAndStatus(db, date, models.AppointmentConfirmed)
	if err != nil {
		return 0, err
	}
	if len(appointments) == 0 {
		return 0, nil
	}

	clients, err := s.clientRepo.GetAllClients(db)
	if err != nil {
		return 0, err
	}
	byID := make(map[int64]*models.Client, len(clients))
	for i := range clients {
		byID[clients[i].ID] = &clients[i]
	}

	sent := 0
	for i := range appointments {
		if client, ok := byID[appointments[i].ClientID]; ok {
			appointments[i].ClientName = client.FullName
			appointments[i].ClientPhone = client.PhoneNumber
		}
		s.notifications.SendAppointmentReminder(&appointments[i])
		sent++
	}
	return sent, nil
}
