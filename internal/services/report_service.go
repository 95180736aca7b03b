package services

import (
	"time"

	"salao_backend/internal/models"
	"salao_backend/internal/repositories"
)

// ReportService aggregates bookings and confirmed revenue for a period.
type ReportService interface {
	Summary(executor repositories.SQLExecutor, params models.ReportParams) (*models.ReportSummary, error)
}

type reportService struct {
	reportRepo repositories.ReportRepository
	now        func() time.Time
}

// NewReportService creates a new instance of ReportService.
func NewReportService(reportRepo repositories.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo, now: time.Now}
}

// resolveReportRange turns the request into an inclusive date range.
// Explicit dates win; otherwise the named period counts back from today,
// defaulting to a month.
func resolveReportRange(params models.ReportParams, now time.Time) (string, string) {
	if params.StartDate != "" && params.EndDate != "" {
		return params.StartDate, params.EndDate
	}

	end := now
	var start time.Time
	switch params.Period {
	case models.ReportPeriodWeek:
		start = end.AddDate(0, 0, -7)
	case models.ReportPeriodYear:
		start = end.AddDate(-1, 0, 0)
	default:
		start = end.AddDate(0, -1, 0)
	}
	return start.Format("2006-01-02"), end.Format("2006-01-02")
}

func (s *reportService) Summary(executor repositories.SQLExecutor, params models.ReportParams) (*models.ReportSummary, error) {
	startDate, endDate := resolveReportRange(params, s.now())

	byStatus, err := s.reportRepo.CountAppointmentsByStatus(executor, startDate, endDate)
	if err != nil {
		return nil, err
	}
	byService, err := s.reportRepo.RevenueByService(executor, startDate, endDate)
	if err != nil {
		return nil, err
	}
	byMonth, err := s.reportRepo.RevenueByMonth(executor, startDate, endDate)
	if err != nil {
		return nil, err
	}

	summary := &models.ReportSummary{
		StartDate:            startDate,
		EndDate:              endDate,
		AppointmentsByStatus: byStatus,
		RevenueByService:     byService,
		RevenueByMonth:       byMonth,
	}
	for _, count := range byStatus {
		summary.TotalAppointments += count.Count
	}
	for _, revenue := range byService {
		summary.TotalRevenue += revenue.Revenue
	}
	return summary, nil
}
