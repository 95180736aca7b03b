package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salao_backend/internal/models"
	"salao_backend/internal/services"
)

func newNotificationRouter(t *testing.T) (*gin.Engine, *services.NotificationFeedService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	feed := services.NewNotificationFeedService()
	handler := NewNotificationHandler(feed)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", int64(7))
		c.Set("email", "dona@example.com")
		c.Set("role", "Admin")
	})
	router.GET("/notifications", handler.List)
	router.POST("/notifications", handler.Create)
	router.PATCH("/notifications", handler.Update)
	return router, feed
}

func TestNotificationsCreateAndList(t *testing.T) {
	router, feed := newNotificationRouter(t)

	w := httptest.NewRecorder()
	body := `{"title":"Estoque baixo","message":"Shampoo abaixo do mínimo","category":"inventory"}`
	request := httptest.NewRequest(http.MethodPost, "/notifications", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, request)
	require.Equal(t, http.StatusCreated, w.Code)

	// Without an explicit user the entry lands in the caller's feed.
	require.Len(t, feed.GetForUser(7), 1)

	w = httptest.NewRecorder()
	request = httptest.NewRequest(http.MethodGet, "/notifications", nil)
	router.ServeHTTP(w, request)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []models.Notification
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Estoque baixo", entries[0].Title)
	assert.Equal(t, int64(7), entries[0].UserID)
}

func TestNotificationsMarkAsRead(t *testing.T) {
	router, feed := newNotificationRouter(t)
	entry := feed.Create(services.NotificationInput{UserID: 7, Title: "Aviso", Message: "x"})

	w := httptest.NewRecorder()
	body := `{"notification_id":"` + entry.ID + `","action":"markAsRead"}`
	request := httptest.NewRequest(http.MethodPatch, "/notifications", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, request)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, feed.GetForUser(7)[0].Read)
}

func TestNotificationsRejectUnknownAction(t *testing.T) {
	router, _ := newNotificationRouter(t)

	w := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPatch, "/notifications", strings.NewReader(`{"action":"archive"}`))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, request)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Ação inválida")
}

func TestNotificationsMarkAsReadUnknownID(t *testing.T) {
	router, _ := newNotificationRouter(t)

	w := httptest.NewRecorder()
	body := `{"notification_id":"nope","action":"markAsRead"}`
	request := httptest.NewRequest(http.MethodPatch, "/notifications", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, request)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Registro não encontrado")
}
