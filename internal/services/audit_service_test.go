package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salao_backend/internal/models"
)

func TestAuditRecordNewestFirst(t *testing.T) {
	audit := NewAuditService()
	audit.Record(RecordInput{UserID: 1, Action: models.AuditCreate, Resource: models.ResourceClient, Details: "first"})
	audit.Record(RecordInput{UserID: 1, Action: models.AuditUpdate, Resource: models.ResourceClient, Details: "second"})

	entries := audit.GetEntries(models.AuditFilters{}, 0)
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Details)
	assert.Equal(t, "first", entries[1].Details)
	assert.NotEmpty(t, entries[0].ID)
}

func TestAuditEvictsOldestPastCap(t *testing.T) {
	audit := NewAuditService()
	for i := 0; i < maxAuditEntries+5; i++ {
		audit.Record(RecordInput{UserID: int64(i), Action: models.AuditCreate, Resource: models.ResourceSystem})
	}

	entries := audit.GetEntries(models.AuditFilters{}, 0)
	require.Len(t, entries, maxAuditEntries)
	// The newest entry survives, the very first ones are gone.
	assert.Equal(t, int64(maxAuditEntries+4), entries[0].UserID)
	assert.Equal(t, int64(5), entries[len(entries)-1].UserID)
}

func TestAuditFilters(t *testing.T) {
	audit := NewAuditService()
	audit.Record(RecordInput{UserID: 1, Action: models.AuditCreate, Resource: models.ResourceClient})
	audit.Record(RecordInput{UserID: 2, Action: models.AuditDelete, Resource: models.ResourceProduct})
	audit.Record(RecordInput{UserID: 1, Action: models.AuditDelete, Resource: models.ResourceClient})

	userID := int64(1)
	entries := audit.GetEntries(models.AuditFilters{UserID: &userID}, 0)
	assert.Len(t, entries, 2)

	action := models.AuditDelete
	entries = audit.GetEntries(models.AuditFilters{UserID: &userID, Action: &action}, 0)
	assert.Len(t, entries, 1)

	resource := models.ResourceProduct
	entries = audit.GetEntries(models.AuditFilters{Resource: &resource}, 0)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].UserID)

	future := time.Now().Add(time.Hour)
	entries = audit.GetEntries(models.AuditFilters{StartDate: &future}, 0)
	assert.Empty(t, entries)
}

func TestAuditGetEntriesLimit(t *testing.T) {
	audit := NewAuditService()
	for i := 0; i < 10; i++ {
		audit.Record(RecordInput{UserID: int64(i), Action: models.AuditCreate, Resource: models.ResourceSystem})
	}
	assert.Len(t, audit.GetEntries(models.AuditFilters{}, 3), 3)
}

func TestAuditExportCSV(t *testing.T) {
	audit := NewAuditService()
	resourceID := "42"
	audit.Record(RecordInput{
		UserID:     7,
		UserName:   "admin@example.com",
		UserRole:   models.RoleAdmin,
		Action:     models.AuditDelete,
		Resource:   models.ResourceProduct,
		ResourceID: &resourceID,
		Details:    "Produto removido",
	})

	payload, err := audit.ExportCSV(models.AuditFilters{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,timestamp,user_id"))
	assert.Contains(t, lines[1], "admin@example.com")
	assert.Contains(t, lines[1], "delete")
	assert.Contains(t, lines[1], "42")
}

func TestAuditStats(t *testing.T) {
	audit := NewAuditService()
	audit.Record(RecordInput{Action: models.AuditCreate, Resource: models.ResourceClient})
	audit.Record(RecordInput{Action: models.AuditCreate, Resource: models.ResourceProduct})
	audit.Record(RecordInput{Action: models.AuditDelete, Resource: models.ResourceClient})

	stats := audit.Stats()
	assert.Equal(t, 3, stats["total"])
	byAction := stats["by_action"].(map[string]int)
	assert.Equal(t, 2, byAction["create"])
	byResource := stats["by_resource"].(map[string]int)
	assert.Equal(t, 2, byResource["client"])
}
