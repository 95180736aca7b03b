package models

// Report periods accepted by the summary endpoint.
const (
	ReportPeriodWeek  = "week"
	ReportPeriodMonth = "month"
	ReportPeriodYear  = "year"
)

// ReportParams narrows the reporting range. Explicit dates win over the
// named period.
type ReportParams struct {
	Period    string
	StartDate string
	EndDate   string
}

// StatusCount is one slice of the appointments-by-status breakdown.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ServiceRevenue is confirmed revenue attributed to one service.
type ServiceRevenue struct {
	Service string  `json:"service"`
	Revenue float64 `json:"revenue"`
}

// MonthRevenue is confirmed revenue attributed to one YYYY-MM month.
type MonthRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// ReportSummary aggregates bookings and revenue over a date range. Only
// confirmed appointments count toward revenue.
type ReportSummary struct {
	StartDate            string           `json:"start_date"`
	EndDate              string           `json:"end_date"`
	TotalAppointments    int              `json:"total_appointments"`
	TotalRevenue         float64          `json:"total_revenue"`
	AppointmentsByStatus []StatusCount    `json:"appointments_by_status"`
	RevenueByService     []ServiceRevenue `json:"revenue_by_service"`
	RevenueByMonth       []MonthRevenue   `json:"revenue_by_month"`
}
