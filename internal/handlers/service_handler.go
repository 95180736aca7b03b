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

// ServiceHandler exposes the bookable service catalog endpoints.
type ServiceHandler struct {
	catalogService services.CatalogService
	recorder       recorder
}

// NewServiceHandler creates a new instance of ServiceHandler.
func NewServiceHandler(catalogService services.CatalogService, audit *services.AuditService, activityLog *services.ActivityLogService) *ServiceHandler {
	return &ServiceHandler{catalogService: catalogService, recorder: newRecorder(audit, activityLog)}
}

// CreateService adds a catalog entry.
func (h *ServiceHandler) CreateService(c *gin.Context) {
	var service models.Service
	if err := c.ShouldBindJSON(&service); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	if err := h.catalogService.CreateService(middleware.TenantDB(c), &service); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditCreate, models.ResourceService, strconv.FormatInt(service.ID, 10), "Serviço "+service.Name+" criado", nil)
	c.JSON(http.StatusCreated, service)
}

// GetService fetches one catalog entry.
func (h *ServiceHandler) GetService(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	service, err := h.catalogService.GetServiceByID(middleware.TenantDB(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

// ListServices lists the catalog; ?active=true narrows to active entries.
func (h *ServiceHandler) ListServices(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	list, err := h.catalogService.GetServices(middleware.TenantDB(c), activeOnly)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// UpdateService edits a catalog entry.
func (h *ServiceHandler) UpdateService(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var service models.Service
	if err := c.ShouldBindJSON(&service); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	service.ID = id

	if err := h.catalogService.UpdateService(middleware.TenantDB(c), &service); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditUpdate, models.ResourceService, strconv.FormatInt(id, 10), "Serviço "+service.Name+" atualizado", nil)
	c.JSON(http.StatusOK, service)
}

// DeleteService removes a catalog entry.
func (h *ServiceHandler) DeleteService(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteService(middleware.TenantDB(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditDelete, models.ResourceService, strconv.FormatInt(id, 10), "Serviço removido", nil)
	c.JSON(http.StatusOK, gin.H{"message": "Serviço removido com sucesso"})
}
