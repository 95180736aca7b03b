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

// EmployeeHandler exposes team roster endpoints.
type EmployeeHandler struct {
	employeeService services.EmployeeService
	recorder        recorder
}

// NewEmployeeHandler creates a new instance of EmployeeHandler.
func NewEmployeeHandler(employeeService services.EmployeeService, audit *services.AuditService, activityLog *services.ActivityLogService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService, recorder: newRecorder(audit, activityLog)}
}

// CreateEmployee adds a team member.
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var employee models.Employee
	if err := c.ShouldBindJSON(&employee); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	if err := h.employeeService.CreateEmployee(middleware.TenantDB(c), &employee); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditCreate, models.ResourceUser, strconv.FormatInt(employee.ID, 10), "Funcionário "+employee.FullName+" cadastrado", nil)
	c.JSON(http.StatusCreated, employee)
}

// GetEmployee fetches one team member.
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	employee, err := h.employeeService.GetEmployeeByID(middleware.TenantDB(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

// ListEmployees lists the roster.
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	list, err := h.employeeService.GetEmployees(middleware.TenantDB(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// UpdateEmployee edits a team member.
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var employee models.Employee
	if err := c.ShouldBindJSON(&employee); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	employee.ID = id

	if err := h.employeeService.UpdateEmployee(middleware.TenantDB(c), &employee); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditUpdate, models.ResourceUser, strconv.FormatInt(id, 10), "Funcionário "+employee.FullName+" atualizado", nil)
	c.JSON(http.StatusOK, employee)
}

// DeleteEmployee removes a team member.
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.employeeService.DeleteEmployee(middleware.TenantDB(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditDelete, models.ResourceUser, strconv.FormatInt(id, 10), "Funcionário removido", nil)
	c.JSON(http.StatusOK, gin.H{"message": "Funcionário removido com sucesso"})
}
