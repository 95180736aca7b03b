package models

import "time"

// Notification levels and priorities used by the in-app feed.
const (
	NotificationInfo    = "info"
	NotificationWarning = "warning"
	NotificationError   = "error"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Notification is one entry in a user's in-app feed.
type Notification struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	UserID    int64                  `json:"user_id"`
	Type      string                 `json:"type"`
	Priority  string                 `json:"priority"`
	Category  string                 `json:"category"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Read      bool                   `json:"read"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}
