package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"salao_backend/internal/models"
)

const maxFeedEntries = 1000

// NotificationInput is what callers provide when pushing a feed entry.
type NotificationInput struct {
	UserID   int64                  `json:"user_id"`
	Type     string                 `json:"type"`
	Priority string                 `json:"priority"`
	Category string                 `json:"category"`
	Title    string                 `json:"title" binding:"required"`
	Message  string                 `json:"message" binding:"required"`
	Metadata map[string]interface{} `json:"metadata"`
}

// NotificationFeedService keeps a small in-memory feed of per-user
// notifications, newest first, same shape as the activity log ring.
type NotificationFeedService struct {
	mu      sync.RWMutex
	entries []models.Notification
}

// NewNotificationFeedService creates a new instance of NotificationFeedService.
func NewNotificationFeedService() *NotificationFeedService {
	return &NotificationFeedService{entries: make([]models.Notification, 0, 128)}
}

// Create appends a notification, evicting the oldest past the cap.
func (s *NotificationFeedService) Create(input NotificationInput) models.Notification {
	entry := models.Notification{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		UserID:    input.UserID,
		Type:      input.Type,
		Priority:  input.Priority,
		Category:  input.Category,
		Title:     input.Title,
		Message:   input.Message,
		Metadata:  input.Metadata,
	}
	if entry.Type == "" {
		entry.Type = models.NotificationInfo
	}
	if entry.Priority == "" {
		entry.Priority = models.PriorityLow
	}

	s.mu.Lock()
	s.entries = append([]models.Notification{entry}, s.entries...)
	if len(s.entries) > maxFeedEntries {
		s.entries = s.entries[:maxFeedEntries]
	}
	s.mu.Unlock()
	return entry
}

// GetForUser returns the user's notifications, newest first.
func (s *NotificationFeedService) GetForUser(userID int64) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.Notification{}
	for i := range s.entries {
		if s.entries[i].UserID == userID {
			result = append(result, s.entries[i])
		}
	}
	return result
}

// MarkRead flags one of the user's notifications as read.
func (s *NotificationFeedService) MarkRead(id string, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id && s.entries[i].UserID == userID {
			s.entries[i].Read = true
			return nil
		}
	}
	return ErrNotFound
}

// MarkAllRead flags every notification of the user as read.
func (s *NotificationFeedService) MarkAllRead(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].UserID == userID {
			s.entries[i].Read = true
		}
	}
}

// Delete removes one of the user's notifications.
func (s *NotificationFeedService) Delete(id string, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == id && s.entries[i].UserID == userID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
