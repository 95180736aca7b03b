package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salao_backend/internal/middleware"
	"salao_backend/internal/models"
	"salao_backend/internal/services"
	"salao_backend/pkg/utils"
)

// AuthHandler exposes signup, login and session endpoints.
type AuthHandler struct {
	authService  services.AuthService
	recorder     recorder
	cookieSecure bool
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(authService services.AuthService, audit *services.AuditService, activityLog *services.ActivityLogService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		recorder:     newRecorder(audit, activityLog),
		cookieSecure: cookieSecure,
	}
}

func (h *AuthHandler) setAuthCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.AuthCookieName, token, int(utils.AccessTokenTTL.Seconds()), "/", "", h.cookieSecure, true)
}

// Signup registers a clinic and its admin account.
func (h *AuthHandler) Signup(c *gin.Context) {
	var registration services.ClinicRegistration
	if err := c.ShouldBindJSON(&registration); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	clinic, user, paymentURL, err := h.authService.Signup(registration)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"clinic":      clinic,
		"user":        user,
		"payment_url": paymentURL,
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and either issues tokens or asks for a 2FA
// code.
func (h *AuthHandler) Login(c *gin.Context) {
	var request loginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	result, err := h.authService.Login(request.Email, request.Password, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if result.RequiresTwoFactor {
		c.JSON(http.StatusOK, gin.H{
			"requires_two_factor": true,
			"session_token":       result.SessionToken,
		})
		return
	}

	h.setAuthCookie(c, result.AccessToken)
	h.recorder.record(c, models.AuditLogin, models.ResourceUser, "", "Login de "+result.User.Email, nil)
	c.JSON(http.StatusOK, result)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh trades a refresh token for a new pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var request refreshRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	result, err := h.authService.Refresh(request.RefreshToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.setAuthCookie(c, result.AccessToken)
	c.JSON(http.StatusOK, result)
}

// Logout clears the auth cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", h.cookieSecure, true)
	h.recorder.record(c, models.AuditLogout, models.ResourceUser, "", "Logout", nil)
	c.JSON(http.StatusOK, gin.H{"message": "Sessão encerrada"})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.GetUser(c.GetInt64("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// ChangePassword updates the caller's password after re-checking the
// current one.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var request changePasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	if err := h.authService.ChangePassword(c.GetInt64("user_id"), request.CurrentPassword, request.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditPasswordChange, models.ResourceUser, "", "Senha alterada", nil)
	c.JSON(http.StatusOK, gin.H{"message": "Senha alterada com sucesso"})
}
