package services

import (
	"fmt"

	"salao_backend/internal/models"
	"salao_backend/internal/providers"
	"salao_backend/pkg/utils"
)

// NotificationService sends WhatsApp messages for appointment lifecycle
// events. Delivery failures are logged and never surface to the caller; a
// booking must not fail because the gateway is down.
type NotificationService interface {
	SendAppointmentCreated(appointment *models.Appointment)
	SendAppointmentConfirmed(appointment *models.Appointment)
	SendAppointmentCancelled(appointment *models.Appointment)
	SendAppointmentReminder(appointment *models.Appointment)
}

type notificationService struct {
	sender      providers.MessageSender
	salonName   string
	activityLog *ActivityLogService
}

// NewNotificationService creates a new instance of NotificationService.
func NewNotificationService(sender providers.MessageSender, salonName string, activityLog *ActivityLogService) NotificationService {
	return &notificationService{sender: sender, salonName: salonName, activityLog: activityLog}
}

func (s *notificationService) deliver(appointment *models.Appointment, action, body string) {
	if appointment.ClientPhone == "" {
		utils.LogWarn(fmt.Sprintf("appointment %d has no client phone, skipping %s notification", appointment.ID, action))
		return
	}
	if err := s.sender.SendMessage(appointment.ClientPhone, body); err != nil {
		utils.LogError(fmt.Errorf("sending %s notification for appointment %d: %w", action, appointment.ID, err))
		s.activityLog.Error(action, fmt.Sprintf("Falha ao enviar WhatsApp para %s", appointment.ClientName), nil)
		return
	}
	s.activityLog.Info(action, fmt.Sprintf("WhatsApp enviado para %s", appointment.ClientName), nil)
}

func (s *notificationService) SendAppointmentCreated(appointment *models.Appointment) {
	body := fmt.Sprintf(
		"Olá %s! Seu agendamento de %s foi registrado para %s às %s. Aguarde a confirmação. %s",
		appointment.ClientName, appointment.ServiceName, appointment.Date, appointment.Time, s.salonName,
	)
	s.deliver(appointment, "appointment_created", body)
}

func (s *notificationService) SendAppointmentConfirmed(appointment *models.Appointment) {
	body := fmt.Sprintf(
		"Olá %s! Seu agendamento de %s foi confirmado para %s às %s com %s. Até lá! %s",
		appointment.ClientName, appointment.ServiceName, appointment.Date, appointment.Time,
		appointment.EmployeeName, s.salonName,
	)
	s.deliver(appointment, "appointment_confirmed", body)
}

func (s *notificationService) SendAppointmentCancelled(appointment *models.Appointment) {
	body := fmt.Sprintf(
		"Olá %s, seu agendamento de %s em %s às %s foi cancelado. Entre em contato para reagendar. %s",
		appointment.ClientName, appointment.ServiceName, appointment.Date, appointment.Time, s.salonName,
	)
	s.deliver(appointment, "appointment_cancelled", body)
}

func (s *notificationService) SendAppointmentReminder(appointment *models.Appointment) {
	body := fmt.Sprintf(
		"Olá %s! Lembrete: você tem %s amanhã (%s) às %s com %s. Contamos com você! %s",
		appointment.ClientName, appointment.ServiceName, appointment.Date, appointment.Time,
		appointment.EmployeeName, s.salonName,
	)
	s.deliver(appointment, "appointment_reminder", body)
}
