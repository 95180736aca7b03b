package models

import "time"

// AuditAction enumerates the recordable actions.
type AuditAction string

const (
	AuditCreate           AuditAction = "create"
	AuditUpdate           AuditAction = "update"
	AuditDelete           AuditAction = "delete"
	AuditLogin            AuditAction = "login"
	AuditLogout           AuditAction = "logout"
	AuditPasswordChange   AuditAction = "password_change"
	AuditPermissionChange AuditAction = "permission_change"
	AuditBackup           AuditAction = "backup"
	AuditRestore          AuditAction = "restore"
	AuditExport           AuditAction = "export"
	AuditImport           AuditAction = "import"
)

// AuditResource enumerates the resources an action can target.
type AuditResource string

const (
	ResourceUser        AuditResource = "user"
	ResourceAppointment AuditResource = "appointment"
	ResourceService     AuditResource = "service"
	ResourceProduct     AuditResource = "product"
	ResourceClient      AuditResource = "client"
	ResourcePayment     AuditResource = "payment"
	ResourceSettings    AuditResource = "settings"
	ResourceBackup      AuditResource = "backup"
	ResourceSystem      AuditResource = "system"
)

// AuditChanges carries an optional before/after diff.
type AuditChanges struct {
	Before interface{} `json:"before"`
	After  interface{} `json:"after"`
}

// AuditEntry records who did what to which resource.
type AuditEntry struct {
	ID         string        `json:"id"`
	Timestamp  time.Time     `json:"timestamp"`
	UserID     int64         `json:"user_id"`
	UserName   string        `json:"user_name"`
	UserRole   string        `json:"user_role"`
	Action     AuditAction   `json:"action"`
	Resource   AuditResource `json:"resource"`
	ResourceID *string       `json:"resource_id,omitempty"`
	Details    string        `json:"details"`
	IPAddress  *string       `json:"ip_address,omitempty"`
	UserAgent  *string       `json:"user_agent,omitempty"`
	Changes    *AuditChanges `json:"changes,omitempty"`
}

// AuditFilters narrows audit retrieval.
type AuditFilters struct {
	UserID    *int64
	Action    *AuditAction
	Resource  *AuditResource
	StartDate *time.Time
	EndDate   *time.Time
}

// Activity log levels and statuses.
const (
	LogLevelInfo    = "info"
	LogLevelWarning = "warning"
	LogLevelError   = "error"

	LogStatusSuccess = "success"
	LogStatusFailure = "failure"
	LogStatusPending = "pending"
)

// LogEntry is a lightweight activity-log record.
type LogEntry struct {
	ID          string                 `json:"id"`
	Timestamp   time.Time              `json:"timestamp"`
	Level       string                 `json:"level"`
	Category    string                 `json:"category"`
	Action      string                 `json:"action"`
	Description string                 `json:"description"`
	Status      string                 `json:"status"`
	UserID      *int64                 `json:"user_id,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// LogFilters narrows activity-log retrieval.
type LogFilters struct {
	Level     *string
	Category  *string
	UserID    *int64
	StartDate *time.Time
	EndDate   *time.Time
}
