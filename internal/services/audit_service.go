package services

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"salao_backend/internal/models"
	"salao_backend/pkg/utils"
)

const maxAuditEntries = 10000

// AuditService keeps a bounded in-memory trail of who changed what. The
// newest entry sits at index 0; when the buffer is full the oldest entry is
// dropped.
type AuditService struct {
	mu      sync.RWMutex
	entries []models.AuditEntry
}

// NewAuditService creates a new instance of AuditService.
func NewAuditService() *AuditService {
	return &AuditService{entries: make([]models.AuditEntry, 0, 256)}
}

// RecordInput carries the caller-supplied fields of an audit entry.
type RecordInput struct {
	UserID     int64
	UserName   string
	UserRole   string
	Action     models.AuditAction
	Resource   models.AuditResource
	ResourceID *string
	Details    string
	IPAddress  *string
	UserAgent  *string
	Changes    *models.AuditChanges
}

// Record appends an entry, evicting the oldest when the buffer is full.
func (s *AuditService) Record(input RecordInput) models.AuditEntry {
	entry := models.AuditEntry{
		ID:         uuid.NewString(),
		Timestamp:  time.Now(),
		UserID:     input.UserID,
		UserName:   input.UserName,
		UserRole:   input.UserRole,
		Action:     input.Action,
		Resource:   input.Resource,
		ResourceID: input.ResourceID,
		Details:    input.Details,
		IPAddress:  input.IPAddress,
		UserAgent:  input.UserAgent,
		Changes:    input.Changes,
	}

	s.mu.Lock()
	s.entries = append([]models.AuditEntry{entry}, s.entries...)
	if len(s.entries) > maxAuditEntries {
		s.entries = s.entries[:maxAuditEntries]
	}
	s.mu.Unlock()

	utils.LogDebug(fmt.Sprintf("audit: %s %s by user %d", input.Action, input.Resource, input.UserID))
	return entry
}

func matchesAudit(entry *models.AuditEntry, filters models.AuditFilters) bool {
	if filters.UserID != nil && entry.UserID != *filters.UserID {
		return false
	}
	if filters.Action != nil && entry.Action != *filters.Action {
		return false
	}
	if filters.Resource != nil && entry.Resource != *filters.Resource {
		return false
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
func (s *AuditService) GetEntries(filters models.AuditFilters, limit int) []models.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []models.AuditEntry{}
	for i := range s.entries {
		if !matchesAudit(&s.entries[i], filters) {
			continue
		}
		result = append(result, s.entries[i])
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result
}

// Stats summarizes the trail by action and resource.
func (s *AuditService) Stats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byAction := map[string]int{}
	byResource := map[string]int{}
	for i := range s.entries {
		byAction[string(s.entries[i].Action)]++
		byResource[string(s.entries[i].Resource)]++
	}
	return map[string]interface{}{
		"total":       len(s.entries),
		"by_action":   byAction,
		"by_resource": byResource,
	}
}

// ExportJSON serializes the filtered trail.
func (s *AuditService) ExportJSON(filters models.AuditFilters) ([]byte, error) {
	return json.MarshalIndent(s.GetEntries(filters, 0), "", "  ")
}

// ExportCSV serializes the filtered trail as CSV with a header row.
func (s *AuditService) ExportCSV(filters models.AuditFilters) ([]byte, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)

	header := []string{"id", "timestamp", "user_id", "user_name", "user_role", "action", "resource", "resource_id", "details", "ip_address"}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}
	for _, entry := range s.GetEntries(filters, 0) {
		resourceID := ""
		if entry.ResourceID != nil {
			resourceID = *entry.ResourceID
		}
		ip := ""
		if entry.IPAddress != nil {
			ip = *entry.IPAddress
		}
		record := []string{
			entry.ID,
			entry.Timestamp.Format(time.RFC3339),
			strconv.FormatInt(entry.UserID, 10),
			entry.UserName,
			entry.UserRole,
			string(entry.Action),
			string(entry.Resource),
			resourceID,
			entry.Details,
			ip,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("writing CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return []byte(builder.String()), nil
}
