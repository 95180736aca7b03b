package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"salao_backend/internal/models"
	"salao_backend/internal/services"
	"salao_backend/pkg/utils"
)

// AuditHandler exposes the audit trail and activity feed.
type AuditHandler struct {
	audit       *services.AuditService
	activityLog *services.ActivityLogService
}

// NewAuditHandler creates a new instance of AuditHandler.
func NewAuditHandler(audit *services.AuditService, activityLog *services.ActivityLogService) *AuditHandler {
	return &AuditHandler{audit: audit, activityLog: activityLog}
}

func parseTimeQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		if parsed, err = time.Parse("2006-01-02", raw); err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid "+name, ""))
			return nil, false
		}
	}
	return &parsed, true
}

func auditFiltersFromQuery(c *gin.Context) (models.AuditFilters, bool) {
	filters := models.AuditFilters{}
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid user_id", ""))
			return filters, false
		}
		filters.UserID = &id
	}
	if raw := c.Query("action"); raw != "" {
		action := models.AuditAction(raw)
		filters.Action = &action
	}
	if raw := c.Query("resource"); raw != "" {
		resource := models.AuditResource(raw)
		filters.Resource = &resource
	}
	var ok bool
	if filters.StartDate, ok = parseTimeQuery(c, "start_date"); !ok {
		return filters, false
	}
	if filters.EndDate, ok = parseTimeQuery(c, "end_date"); !ok {
		return filters, false
	}
	return filters, true
}

type auditEntryRequest struct {
	Action     models.AuditAction   `json:"action" binding:"required"`
	Resource   models.AuditResource `json:"resource" binding:"required"`
	ResourceID *string              `json:"resource_id"`
	Details    string               `json:"details"`
	Changes    *models.AuditChanges `json:"changes"`
}

// CreateEntry accepts an entry forwarded by the front end. The user fields
// come from the verified token, never from the body.
func (h *AuditHandler) CreateEntry(c *gin.Context) {
	var req auditEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	h.audit.Record(services.RecordInput{
		UserID:     c.GetInt64("user_id"),
		UserName:   c.GetString("email"),
		UserRole:   c.GetString("role"),
		Action:     req.Action,
		Resource:   req.Resource,
		ResourceID: req.ResourceID,
		Details:    req.Details,
		IPAddress:  strPtr(c.ClientIP()),
		UserAgent:  strPtr(c.GetHeader("User-Agent")),
		Changes:    req.Changes,
	})
	c.JSON(http.StatusCreated, gin.H{"message": "Registro de auditoria criado"})
}

// ListEntries returns the filtered audit trail.
func (h *AuditHandler) ListEntries(c *gin.Context) {
	filters, ok := auditFiltersFromQuery(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	c.JSON(http.StatusOK, h.audit.GetEntries(filters, limit))
}

// Stats summarizes the trail.
func (h *AuditHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.audit.Stats())
}

// Export streams the trail as JSON or CSV.
func (h *AuditHandler) Export(c *gin.Context) {
	filters, ok := auditFiltersFromQuery(c)
	if !ok {
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "csv":
		payload, err := h.audit.ExportCSV(filters)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="audit.csv"`)
		c.Data(http.StatusOK, "text/csv", payload)
	case "json":
		payload, err := h.audit.ExportJSON(filters)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="audit.json"`)
		c.Data(http.StatusOK, "application/json", payload)
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Unknown export format", ""))
	}
}

// ListActivity returns the filtered activity feed.
func (h *AuditHandler) ListActivity(c *gin.Context) {
	filters := models.LogFilters{
		Level:    queryPtr(c, "level"),
		Category: queryPtr(c, "category"),
	}
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid user_id", ""))
			return
		}
		filters.UserID = &id
	}
	var ok bool
	if filters.StartDate, ok = parseTimeQuery(c, "start_date"); !ok {
		return
	}
	if filters.EndDate, ok = parseTimeQuery(c, "end_date"); !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	c.JSON(http.StatusOK, h.activityLog.GetEntries(filters, limit))
}

// ClearActivity drops the activity feed.
func (h *AuditHandler) ClearActivity(c *gin.Context) {
	h.activityLog.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Registros de atividade limpos"})
}
