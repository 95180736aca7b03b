package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salao_backend/internal/middleware"
	"salao_backend/internal/models"
	"salao_backend/internal/services"
)

// ReportHandler serves booking and revenue aggregates.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new instance of ReportHandler.
func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary aggregates appointments and confirmed revenue over the requested
// period (?period=week|month|year, or explicit ?start_date and ?end_date).
func (h *ReportHandler) Summary(c *gin.Context) {
	params := models.ReportParams{
		Period:    c.Query("period"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}

	summary, err := h.reportService.Summary(middleware.TenantDB(c), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
