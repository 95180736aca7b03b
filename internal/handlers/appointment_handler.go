package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salao_backend/internal/middleware"
	"salao_backend/internal/models"
	"salao_backend/internal/services"
	"salao_backend/pkg/utils"
)

// AppointmentHandler exposes booking endpoints.
type AppointmentHandler struct {
	appointmentService services.AppointmentService
	recorder           recorder
}

// NewAppointmentHandler creates a new instance of AppointmentHandler.
func NewAppointmentHandler(appointmentService services.AppointmentService, audit *services.AuditService, activityLog *services.ActivityLogService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService, recorder: newRecorder(audit, activityLog)}
}

// CreateAppointment books a slot.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var appointment models.Appointment
	if err := c.ShouldBindJSON(&appointment); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	if err := h.appointmentService.CreateAppointment(middleware.TenantDB(c), &appointment); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditCreate, models.ResourceAppointment, strconv.FormatInt(appointment.ID, 10),
		"Agendamento criado para "+appointment.Date+" "+appointment.Time, nil)
	c.JSON(http.StatusCreated, appointment)
}

// GetAppointment fetches one booking.
func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	appointment, err := h.appointmentService.GetAppointmentByID(middleware.TenantDB(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

func queryPtr(c *gin.Context, name string) *string {
	if value := c.Query(name); value != "" {
		return &value
	}
	return nil
}

// ListAppointments lists bookings with optional filters.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	filters := models.AppointmentFilters{
		StartDate:  queryPtr(c, "start_date"),
		EndDate:    queryPtr(c, "end_date"),
		Service:    queryPtr(c, "service"),
		Status:     queryPtr(c, "status"),
		ClientName: queryPtr(c, "client"),
	}

	list, err := h.appointmentService.GetAppointments(middleware.TenantDB(c), filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// UpdateAppointment edits a booking, re-checking the slot.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var appointment models.Appointment
	if err := c.ShouldBindJSON(&appointment); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	appointment.ID = id

	if err := h.appointmentService.UpdateAppointment(middleware.TenantDB(c), &appointment); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditUpdate, models.ResourceAppointment, strconv.FormatInt(id, 10),
		"Agendamento atualizado para "+appointment.Date+" "+appointment.Time, nil)
	c.JSON(http.StatusOK, appointment)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus flips only the booking status and triggers the matching
// notification.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var request statusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	appointment, err := h.appointmentService.UpdateStatus(middleware.TenantDB(c), id, request.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditUpdate, models.ResourceAppointment, strconv.FormatInt(id, 10),
		"Status do agendamento alterado para "+request.Status, nil)
	c.JSON(http.StatusOK, appointment)
}

// DeleteAppointment removes a booking.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.appointmentService.DeleteAppointment(middleware.TenantDB(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditDelete, models.ResourceAppointment, strconv.FormatInt(id, 10), "Agendamento removido", nil)
	c.JSON(http.StatusOK, gin.H{"message": "Agendamento removido com sucesso"})
}
