package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salao_backend/internal/models"
)

func TestCategoryForAction(t *testing.T) {
	tests := []struct {
		action   string
		category string
	}{
		{"login_success", "auth"},
		{"logout", "auth"},
		{"password_change", "auth"},
		{"backup_run", "backup"},
		{"restore_run", "backup"},
		{"appointment_created", "appointments"},
		{"client_update", "clients"},
		{"product_delete", "inventory"},
		{"stock_adjust", "inventory"},
		{"category_create", "inventory"},
		{"service_update", "services"},
		{"employee_create", "team"},
		{"reward_redeem", "loyalty"},
		{"something_else", "system"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.category, categoryForAction(tc.action), "action=%s", tc.action)
	}
}

func TestActivityLogCapsEntries(t *testing.T) {
	feed := NewActivityLogService()
	for i := 0; i < maxLogEntries+10; i++ {
		feed.Info("client_update", "update", nil)
	}
	assert.Len(t, feed.GetEntries(models.LogFilters{}, 0), maxLogEntries)
}

func TestActivityLogFilters(t *testing.T) {
	feed := NewActivityLogService()
	userID := int64(3)
	feed.Info("login_success", "Login", &userID)
	feed.Error("backup_run", "Falhou", nil)

	level := models.LogLevelError
	entries := feed.GetEntries(models.LogFilters{Level: &level}, 0)
	require.Len(t, entries, 1)
	assert.Equal(t, models.LogStatusFailure, entries[0].Status)
	assert.Equal(t, "backup", entries[0].Category)

	entries = feed.GetEntries(models.LogFilters{UserID: &userID}, 0)
	require.Len(t, entries, 1)
	assert.Equal(t, "auth", entries[0].Category)
}

func TestActivityLogClear(t *testing.T) {
	feed := NewActivityLogService()
	feed.Info("client_update", "x", nil)
	feed.Clear()
	assert.Empty(t, feed.GetEntries(models.LogFilters{}, 0))
}
