package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salao_backend/internal/services"
	"salao_backend/pkg/utils"
)

// ReminderHandler lets an external scheduler trigger the daily reminder run
// in addition to the in-process cron job.
type ReminderHandler struct {
	reminders *services.ReminderService
	secret    string
}

// NewReminderHandler creates a new instance of ReminderHandler.
func NewReminderHandler(reminders *services.ReminderService, secret string) *ReminderHandler {
	return &ReminderHandler{reminders: reminders, secret: secret}
}

// Trigger runs the reminder sweep. When a secret is configured the caller
// must present it in the X-Cron-Secret header.
func (h *ReminderHandler) Trigger(c *gin.Context) {
	if h.secret != "" && c.GetHeader("X-Cron-Secret") != h.secret {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid cron secret", ""))
		return
	}
	h.reminders.SendDailyReminders()
	c.JSON(http.StatusOK, gin.H{"message": "Lembretes processados"})
}
