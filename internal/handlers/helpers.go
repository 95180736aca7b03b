package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salao_backend/internal/models"
	"salao_backend/internal/services"
	"salao_backend/pkg/utils"
)

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid ID", ""))
		return 0, false
	}
	return id, true
}

// respondServiceError maps service sentinel errors onto the HTTP error
// envelope. Messages for business-rule violations are user-facing and
// localized.
func respondServiceError(c *gin.Context, err error) {
	var blocked *services.BlockedError
	switch {
	case errors.As(err, &blocked):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusTooManyRequests, utils.ErrCodeTooManyRequests,
			fmt.Sprintf("Muitas tentativas falhas. Tente novamente em %d minutos.", blocked.Minutes), ""))
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Registro não encontrado", ""))
	case errors.Is(err, services.ErrCategoryExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Categoria já existe", ""))
	case errors.Is(err, services.ErrCategoryInUse):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Categoria em uso por produtos ou serviços", ""))
	case errors.Is(err, services.ErrSlotTaken):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Horário não disponível", ""))
	case errors.Is(err, services.ErrInvalidQuantity):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Quantidade inválida", ""))
	case errors.Is(err, services.ErrEmailExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Email já cadastrado", ""))
	case errors.Is(err, services.ErrDocumentExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Documento já cadastrado", ""))
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Email ou senha inválidos", ""))
	case errors.Is(err, services.ErrInvalidTwoFactor):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Código de verificação inválido", ""))
	case errors.Is(err, services.ErrInvalidToken):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Token inválido ou expirado", ""))
	case errors.Is(err, services.ErrBackupInProgress):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Backup já em andamento", ""))
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Input validation failed", err.Error()))
	default:
		utils.LogError(err)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal server error", ""))
	}
}

// recorder captures audit and activity entries for mutating handlers.
type recorder struct {
	audit       *services.AuditService
	activityLog *services.ActivityLogService
}

func newRecorder(audit *services.AuditService, activityLog *services.ActivityLogService) recorder {
	return recorder{audit: audit, activityLog: activityLog}
}

func strPtr(s string) *string {
	return &s
}

// record writes one audit entry plus one activity-log line for the request.
func (r recorder) record(c *gin.Context, action models.AuditAction, resource models.AuditResource, resourceID, details string, changes *models.AuditChanges) {
	userID := c.GetInt64("user_id")
	var resourceIDPtr *string
	if resourceID != "" {
		resourceIDPtr = &resourceID
	}
	r.audit.Record(services.RecordInput{
		UserID:     userID,
		UserName:   c.GetString("email"),
		UserRole:   c.GetString("role"),
		Action:     action,
		Resource:   resource,
		ResourceID: resourceIDPtr,
		Details:    details,
		IPAddress:  strPtr(c.ClientIP()),
		UserAgent:  strPtr(c.GetHeader("User-Agent")),
		Changes:    changes,
	})
	r.activityLog.Info(string(resource)+"_"+string(action), details, &userID)
}
