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

// LoyaltyHandler exposes loyalty program and reward endpoints.
type LoyaltyHandler struct {
	loyaltyService services.LoyaltyService
	recorder       recorder
}

// NewLoyaltyHandler creates a new instance of LoyaltyHandler.
func NewLoyaltyHandler(loyaltyService services.LoyaltyService, audit *services.AuditService, activityLog *services.ActivityLogService) *LoyaltyHandler {
	return &LoyaltyHandler{loyaltyService: loyaltyService, recorder: newRecorder(audit, activityLog)}
}

// GetProgram returns the loyalty overview of every client.
func (h *LoyaltyHandler) GetProgram(c *gin.Context) {
	programs, err := h.loyaltyService.GetProgram(middleware.TenantDB(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, programs)
}

// GetClientProgram returns one client's loyalty standing.
func (h *LoyaltyHandler) GetClientProgram(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	program, err := h.loyaltyService.GetClientProgram(middleware.TenantDB(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, program)
}

type addPointsRequest struct {
	Points int `json:"points" binding:"required"`
}

// AddPoints credits loyalty points, promoting the tier when a threshold is
// crossed.
func (h *LoyaltyHandler) AddPoints(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var request addPointsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	client, err := h.loyaltyService.AddPoints(middleware.TenantDB(c), id, request.Points)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditUpdate, models.ResourceClient, strconv.FormatInt(id, 10),
		strconv.Itoa(request.Points)+" pontos creditados para "+client.FullName, nil)
	c.JSON(http.StatusOK, client)
}

type redeemRequest struct {
	RewardID int64 `json:"reward_id" binding:"required"`
}

// RedeemReward spends points on a reward.
func (h *LoyaltyHandler) RedeemReward(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var request redeemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	client, err := h.loyaltyService.RedeemReward(middleware.TenantDB(c), id, request.RewardID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditUpdate, models.ResourceClient, strconv.FormatInt(id, 10),
		"Recompensa resgatada por "+client.FullName, nil)
	c.JSON(http.StatusOK, client)
}

// ListRewards lists rewards; ?active=true narrows to active ones.
func (h *LoyaltyHandler) ListRewards(c *gin.Context) {
	rewards, err := h.loyaltyService.GetRewards(middleware.TenantDB(c), c.Query("active") == "true")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rewards)
}

// CreateReward adds a reward.
func (h *LoyaltyHandler) CreateReward(c *gin.Context) {
	var reward models.Reward
	if err := c.ShouldBindJSON(&reward); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	if err := h.loyaltyService.CreateReward(middleware.TenantDB(c), &reward); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditCreate, models.ResourceSettings, strconv.FormatInt(reward.ID, 10), "Recompensa "+reward.Name+" criada", nil)
	c.JSON(http.StatusCreated, reward)
}

// UpdateReward edits a reward.
func (h *LoyaltyHandler) UpdateReward(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var reward models.Reward
	if err := c.ShouldBindJSON(&reward); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	reward.ID = id

	if err := h.loyaltyService.UpdateReward(middleware.TenantDB(c), &reward); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditUpdate, models.ResourceSettings, strconv.FormatInt(id, 10), "Recompensa "+reward.Name+" atualizada", nil)
	c.JSON(http.StatusOK, reward)
}

// DeleteReward removes a reward.
func (h *LoyaltyHandler) DeleteReward(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.loyaltyService.DeleteReward(middleware.TenantDB(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditDelete, models.ResourceSettings, strconv.FormatInt(id, 10), "Recompensa removida", nil)
	c.JSON(http.StatusOK, gin.H{"message": "Recompensa removida com sucesso"})
}
