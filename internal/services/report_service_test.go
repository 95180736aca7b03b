package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"salao_backend/internal/models"
)

func TestResolveReportRange(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		params models.ReportParams
		start  string
		end    string
	}{
		{"default month", models.ReportParams{}, "2026-07-31", "2026-08-31"},
		{"week", models.ReportParams{Period: models.ReportPeriodWeek}, "2026-08-24", "2026-08-31"},
		{"year", models.ReportParams{Period: models.ReportPeriodYear}, "2025-08-31", "2026-08-31"},
		{
			"explicit dates win",
			models.ReportParams{Period: models.ReportPeriodWeek, StartDate: "2026-01-01", EndDate: "2026-01-31"},
			"2026-01-01", "2026-01-31",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := resolveReportRange(tt.params, now)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}
