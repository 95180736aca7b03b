package repositories

import (
	"fmt"

	"salao_backend/internal/models"
)

// ReportRepository aggregates appointment and revenue figures for the
// reporting endpoint. All ranges are inclusive YYYY-MM-DD strings.
type ReportRepository interface {
	CountAppointmentsByStatus(executor SQLExecutor, startDate, endDate string) ([]models.StatusCount, error)
	RevenueByService(executor SQLExecutor, startDate, endDate string) ([]models.ServiceRevenue, error)
	RevenueByMonth(executor SQLExecutor, startDate, endDate string) ([]models.MonthRevenue, error)
}

type reportRepository struct{}

// NewReportRepository creates a new instance of ReportRepository.
func NewReportRepository() ReportRepository {
	return &reportRepository{}
}

func (r *reportRepository) CountAppointmentsByStatus(executor SQLExecutor, startDate, endDate string) ([]models.StatusCount, error) {
	query := `SELECT a.status, COUNT(*)
	          FROM agendamentos a
	          WHERE a.date >= $1 AND a.date <= $2
	          GROUP BY a.status
	          ORDER BY a.status`
	rows, err := executor.Query(query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: counting appointments by status: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	counts := []models.StatusCount{}
	for rows.Next() {
		var count models.StatusCount
		if err := rows.Scan(&count.Status, &count.Count); err != nil {
			return nil, fmt.Errorf("%w: scanning status count: %v", ErrDatabaseError, err)
		}
		counts = append(counts, count)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating status counts: %v", ErrDatabaseError, err)
	}
	return counts, nil
}

func (r *reportRepository) RevenueByService(executor SQLExecutor, startDate, endDate string) ([]models.ServiceRevenue, error) {
	query := `SELECT s.name, COALESCE(SUM(s.price), 0)
	          FROM agendamentos a
	          JOIN servicos s ON s.id = a.service_id
	          WHERE a.status = $1 AND a.date >= $2 AND a.date <= $3
	          GROUP BY s.name
	          ORDER BY SUM(s.price) DESC`
	rows, err := executor.Query(query, models.AppointmentConfirmed, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: aggregating revenue by service: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	revenues := []models.ServiceRevenue{}
	for rows.Next() {
		var revenue models.ServiceRevenue
		if err := rows.Scan(&revenue.Service, &revenue.Revenue); err != nil {
			return nil, fmt.Errorf("%w: scanning service revenue: %v", ErrDatabaseError, err)
		}
		revenues = append(revenues, revenue)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating service revenue: %v", ErrDatabaseError, err)
	}
	return revenues, nil
}

func (r *reportRepository) RevenueByMonth(executor SQLExecutor, startDate, endDate string) ([]models.MonthRevenue, error) {
	// Dates are stored as YYYY-MM-DD text, so the first seven characters
	// are the month bucket.
	query := `SELECT LEFT(a.date, 7) AS month, COALESCE(SUM(s.price), 0)
	          FROM agendamentos a
	          JOIN servicos s ON s.id = a.service_id
	          WHERE a.status = $1 AND a.date >= $2 AND a.date <= $3
	          GROUP BY LEFT(a.date, 7)
	          ORDER BY month`
	rows, err := executor.Query(query, models.AppointmentConfirmed, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: aggregating revenue by month: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	revenues := []models.MonthRevenue{}
	for rows.Next() {
		var revenue models.MonthRevenue
		if err := rows.Scan(&revenue.Month, &revenue.Revenue); err != nil {
			return nil, fmt.Errorf("%w: scanning month revenue: %v", ErrDatabaseError, err)
		}
		revenues = append(revenues, revenue)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating month revenue: %v", ErrDatabaseError, err)
	}
	return revenues, nil
}
