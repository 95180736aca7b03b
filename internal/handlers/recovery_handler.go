package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salao_backend/internal/services"
	"salao_backend/pkg/utils"
)

// RecoveryHandler exposes the forgot-password flow.
type RecoveryHandler struct {
	recoveryService services.PasswordRecoveryService
	resetBaseURL    string
}

// NewRecoveryHandler creates a new instance of RecoveryHandler.
func NewRecoveryHandler(recoveryService services.PasswordRecoveryService, resetBaseURL string) *RecoveryHandler {
	return &RecoveryHandler{recoveryService: recoveryService, resetBaseURL: resetBaseURL}
}

type recoveryRequest struct {
	Email string `json:"email" binding:"required"`
}

// RequestRecovery always answers 200 so the endpoint cannot confirm which
// emails are registered.
func (h *RecoveryHandler) RequestRecovery(c *gin.Context) {
	var request recoveryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	if err := h.recoveryService.RequestRecovery(request.Email, h.resetBaseURL); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Se o email estiver cadastrado, você receberá as instruções de recuperação"})
}

type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ResetPassword redeems the recovery token.
func (h *RecoveryHandler) ResetPassword(c *gin.Context) {
	var request resetPasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	if err := h.recoveryService.ResetPassword(request.Token, request.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Senha redefinida com sucesso"})
}
