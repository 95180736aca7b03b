package models

import "time"

// Backup statuses.
const (
	BackupSuccess = "success"
	BackupFailed  = "failed"
)

// BackupMetadata describes one backup artifact on disk.
type BackupMetadata struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Size       int64     `json:"size"`
	Status     string    `json:"status"`
	Error      *string   `json:"error,omitempty"`
	Compressed bool      `json:"compressed"`
}

// BackupConfig controls scheduling, retention and compression.
type BackupConfig struct {
	Schedule      string `json:"schedule"` // cron expression
	RetentionDays int    `json:"retention_days"`
	Compression   bool   `json:"compression"`
	StoragePath   string `json:"storage_path"`
}
