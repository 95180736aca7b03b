package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salao_backend/internal/services"
	"salao_backend/pkg/utils"
)

// NotificationHandler exposes the per-user in-app notification feed.
type NotificationHandler struct {
	feed *services.NotificationFeedService
}

// NewNotificationHandler creates a new instance of NotificationHandler.
func NewNotificationHandler(feed *services.NotificationFeedService) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.feed.GetForUser(c.GetInt64("user_id")))
}

// Create pushes a notification. Without an explicit user it lands in the
// caller's own feed.
func (h *NotificationHandler) Create(c *gin.Context) {
	var input services.NotificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	if input.UserID == 0 {
		input.UserID = c.GetInt64("user_id")
	}
	c.JSON(http.StatusCreated, h.feed.Create(input))
}

type notificationActionRequest struct {
	NotificationID string `json:"notification_id"`
	Action         string `json:"action" binding:"required"`
}

// Update applies a feed action: markAsRead, markAllAsRead or delete.
func (h *NotificationHandler) Update(c *gin.Context) {
	var request notificationActionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	userID := c.GetInt64("user_id")
	switch request.Action {
	case "markAsRead":
		if err := h.feed.MarkRead(request.NotificationID, userID); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Notificação marcada como lida"})
	case "markAllAsRead":
		h.feed.MarkAllRead(userID)
		c.JSON(http.StatusOK, gin.H{"message": "Notificações marcadas como lidas"})
	case "delete":
		if err := h.feed.Delete(request.NotificationID, userID); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Notificação removida"})
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Ação inválida", ""))
	}
}
