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

// ClientHandler exposes the customer CRUD endpoints.
type ClientHandler struct {
	clientService services.ClientService
	recorder      recorder
}

// NewClientHandler creates a new instance of ClientHandler.
func NewClientHandler(clientService services.ClientService, audit *services.AuditService, activityLog *services.ActivityLogService) *ClientHandler {
	return &ClientHandler{clientService: clientService, recorder: newRecorder(audit, activityLog)}
}

// CreateClient registers a new customer.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	if err := h.clientService.CreateClient(middleware.TenantDB(c), &client); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditCreate, models.ResourceClient, strconv.FormatInt(client.ID, 10), "Cliente "+client.FullName+" cadastrado", nil)
	c.JSON(http.StatusCreated, client)
}

// GetClient fetches one customer by ID.
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	client, err := h.clientService.GetClientByID(middleware.TenantDB(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// ListClients lists customers with optional search and pagination.
func (h *ClientHandler) ListClients(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.clientService.ListClients(middleware.TenantDB(c), c.Query("search"), page, pageSize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateClient edits a customer record.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	client.ID = id

	if err := h.clientService.UpdateClient(middleware.TenantDB(c), &client); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditUpdate, models.ResourceClient, strconv.FormatInt(id, 10), "Cliente "+client.FullName+" atualizado", nil)
	c.JSON(http.StatusOK, client)
}

// DeleteClient removes a customer.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.clientService.DeleteClient(middleware.TenantDB(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditDelete, models.ResourceClient, strconv.FormatInt(id, 10), "Cliente removido", nil)
	c.JSON(http.StatusOK, gin.H{"message": "Cliente removido com sucesso"})
}
