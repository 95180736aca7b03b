package services

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"salao_backend/internal/models"
)

const maxLogEntries = 1000

// ActivityLogService keeps a small in-memory feed of operational events,
// newest first.
type ActivityLogService struct {
	mu      sync.RWMutex
	entries []models.LogEntry
}

// NewActivityLogService creates a new instance of ActivityLogService.
func NewActivityLogService() *ActivityLogService {
	return &ActivityLogService{entries: make([]models.LogEntry, 0, 128)}
}

// categoryForAction derives the feed category from the action name prefix.
func categoryForAction(action string) string {
	prefixes := map[string]string{
		"login":       "auth",
		"logout":      "auth",
		"password":    "auth",
		"backup":      "backup",
		"restore":     "backup",
		"appointment": "appointments",
		"client":      "clients",
		"product":     "inventory",
		"stock":       "inventory",
		"category":    "inventory",
		"service":     "services",
		"employee":    "team",
		"reward":      "loyalty",
		"loyalty":     "loyalty",
	}
	for prefix, category := range prefixes {
		if strings.HasPrefix(action, prefix) {
			return category
		}
	}
	return "system"
}

// Log appends an entry, evicting the oldest past the cap.
func (s *ActivityLogService) Log(level, action, description, status string, userID *int64, metadata map[string]interface{}) models.LogEntry {
	entry := models.LogEntry{
		ID:          uuid.NewString(),
		Timestamp:   time.Now(),
		Level:       level,
		Category:    categoryForAction(action),
		Action:      action,
		Description: description,
		Status:      status,
		UserID:      userID,
		Metadata:    metadata,
	}

	s.mu.Lock()
	s.entries = append([]models.LogEntry{entry}, s.entries...)
	if len(s.entries) > maxLogEntries {
		s.entries = s.entries[:maxLogEntries]
	}
	s.mu.Unlock()
	return entry
}

// Info logs a successful event.
func (s *ActivityLogService) Info(action, description string, userID *int64) models.LogEntry {
	return s.Log(models.LogLevelInfo, action, description, models.LogStatusSuccess, userID, nil)
}

// Error logs a failed event.
func (s *ActivityLogService) Error(action, description string, userID *int64) models.LogEntry {
	return s.Log(models.LogLevelError, action, description, models.LogStatusFailure, userID, nil)
}

func matchesLog(entry *models.LogEntry, filters models.LogFilters) bool {
	if filters.Level != nil && entry.Level != *filters.Level {
		return false
	}
	if filters.Category != nil && entry.Category != *filters.Category {
		return false
	}
	if filters.UserID != nil {
		if entry.UserID == nil || *entry.UserID != *filters.UserID {
			return false
		}
	}
	if filters.StartDate != nil && entry.Timestamp.Before(*filters.StartDate) {
		return false
	}
	if filters.EndDate != nil && entry.Timestamp.After(*filters.EndDate) {
		return false
	}
	return true
}

// GetEntries returns entries matching the filters, newest first, capped at
// limit when limit > 0.
func (s *ActivityLogService) GetEntries(filters models.LogFilters, limit int) []models.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.LogEntry{}
	for i := range s.entries {
		if !matchesLog(&s.entries[i], filters) {
			continue
		}
		result = append(result, s.entries[i])
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result
}

// Clear drops all entries.
func (s *ActivityLogService) Clear() {
	s.mu.Lock()
	s.entries = s.entries[:0]
	s.mu.Unlock()
}
