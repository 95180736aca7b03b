package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salao_backend/internal/services"
	"salao_backend/pkg/utils"
)

// BillingHandler receives payment webhooks from Asaas.
type BillingHandler struct {
	clinicService services.ClinicService
	webhookToken  string
}

// NewBillingHandler creates a new instance of BillingHandler.
func NewBillingHandler(clinicService services.ClinicService, webhookToken string) *BillingHandler {
	return &BillingHandler{clinicService: clinicService, webhookToken: webhookToken}
}

type webhookPayload struct {
	Event   string `json:"event" binding:"required"`
	Payment struct {
		Customer string `json:"customer"`
	} `json:"payment"`
}

// Webhook flips the clinic status on payment events. Asaas retries on
// non-2xx, so unknown customers still answer 200.
func (h *BillingHandler) Webhook(c *gin.Context) {
	if h.webhookToken != "" && c.GetHeader("asaas-access-token") != h.webhookToken {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid webhook token", ""))
		return
	}

	var payload webhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	if err := h.clinicService.ProcessBillingWebhook(payload.Event, payload.Payment.Customer); err != nil {
		utils.LogError(err)
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
