package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salao_backend/internal/services"
	"salao_backend/pkg/utils"
)

// TwoFactorHandler exposes TOTP enrollment and login verification.
type TwoFactorHandler struct {
	twoFactorService services.TwoFactorService
}

// NewTwoFactorHandler creates a new instance of TwoFactorHandler.
func NewTwoFactorHandler(twoFactorService services.TwoFactorService) *TwoFactorHandler {
	return &TwoFactorHandler{twoFactorService: twoFactorService}
}

// BeginSetup generates a secret and QR code for the caller.
func (h *TwoFactorHandler) BeginSetup(c *gin.Context) {
	setup, err := h.twoFactorService.BeginSetup(c.GetInt64("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, setup)
}

type totpCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// ConfirmSetup activates 2FA after a valid code.
func (h *TwoFactorHandler) ConfirmSetup(c *gin.Context) {
	var request totpCodeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	if err := h.twoFactorService.ConfirmSetup(c.GetInt64("user_id"), request.Code); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verificação em duas etapas ativada"})
}

// Disable turns 2FA off after a final code check.
func (h *TwoFactorHandler) Disable(c *gin.Context) {
	var request totpCodeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	if err := h.twoFactorService.Disable(c.GetInt64("user_id"), request.Code); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Verificação em duas etapas desativada"})
}

type verifyLoginRequest struct {
	SessionToken string `json:"session_token" binding:"required"`
	Code         string `json:"code" binding:"required"`
}

// VerifyLogin completes a 2FA login with the session token plus TOTP code.
func (h *TwoFactorHandler) VerifyLogin(c *gin.Context) {
	var request verifyLoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	result, err := h.twoFactorService.VerifyLogin(request.SessionToken, request.Code)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
