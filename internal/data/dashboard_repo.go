package data

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/meridianbi/meridian-api/internal/domain/model"
)

// Dashboard roll-up windows. Financial facts are grouped by day over the
// last 90 days capped at the 30 most recent groups; sales and metrics use a
// 30 day window.
const (
	financialWindowDays  = 90
	financialGroupCap    = 30
	financialGrowthSplit = 15
	salesWindowDays      = 30
	metricsWindowDays    = 30
)

// DashboardRepo provides the tenant-scoped aggregation queries behind the
// business dashboard. Each roll-up is one grouped query; derived figures are
// computed in Go from the grouped rows.
type DashboardRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
	logger       *slog.Logger
}

// NewDashboardRepo creates a new DashboardRepo instance.
func NewDashboardRepo(db *sql.DB, cfg RepoConfig) *DashboardRepo {
	tp := cfg.TimeProvider
	if tp == nil {
		tp = &RealTimeProvider{}
	}

	return &DashboardRepo{
		DB:           db,
		timeProvider: tp,
		logger:       cfg.Logger,
	}
}

// FinancialSummary rolls up the tenant's financial facts grouped by day,
// newest group first.
func (r *DashboardRepo) FinancialSummary(ctx context.Context, tenantID string) (*model.FinancialSummary, error) {
	since := r.timeProvider.Now().UTC().AddDate(0, 0, -financialWindowDays)

	rows, err := r.DB.QueryContext(ctx, `
		SELECT
			to_char(record_date, 'YYYY-MM-DD') AS day,
			COALESCE(SUM(revenue), 0)  AS total_revenue,
			COALESCE(SUM(expenses), 0) AS total_expenses,
			COALESCE(SUM(cash_flow), 0) AS cash_flow,
			COALESCE(AVG(revenue), 0)  AS avg_revenue,
			COALESCE(AVG(expenses), 0) AS avg_expenses,
			COALESCE(AVG(cash_flow), 0) AS avg_cash_flow
		FROM financial_records
		WHERE tenant_id = $1 AND record_date >= $2
		GROUP BY record_date
		ORDER BY record_date DESC
		LIMIT $3
	`, tenantID, since, financialGroupCap)
	if err != nil {
		return nil, fmt.Errorf("query financial summary: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	summary := &model.FinancialSummary{Days: []model.FinancialDay{}}
	for rows.Next() {
		var d model.FinancialDay
		if scanErr := rows.Scan(&d.Date, &d.TotalRevenue, &d.TotalExpenses, &d.CashFlow, &d.AvgRevenue, &d.AvgExpenses, &d.AvgCashFlow); scanErr != nil {
			return nil, fmt.Errorf("scan financial day: %w", scanErr)
		}
		d.NetProfit = d.TotalRevenue - d.TotalExpenses
		d.AvgNetProfit = d.AvgRevenue - d.AvgExpenses
		summary.Days = append(summary.Days, d)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate financial days: %w", rowsErr)
	}

	var recentRevenue, priorRevenue float64
	for i, d := range summary.Days {
		summary.TotalRevenue += d.TotalRevenue
		summary.TotalExpenses += d.TotalExpenses
		if i < financialGrowthSplit {
			recentRevenue += d.TotalRevenue
		} else if i < 2*financialGrowthSplit {
			priorRevenue += d.TotalRevenue
		}
	}
	summary.NetProfit = summary.TotalRevenue - summary.TotalExpenses
	summary.ProfitMargin = model.ProfitMargin(summary.NetProfit, summary.TotalRevenue)
	summary.RevenueGrowth = model.RevenueGrowth(recentRevenue, priorRevenue)

	return summary, nil
}

// SalesSummary rolls up the tenant's sales leads grouped by (stage, status).
func (r *DashboardRepo) SalesSummary(ctx context.Context, tenantID string) (*model.SalesSummary, error) {
	since := r.timeProvider.Now().UTC().AddDate(0, 0, -salesWindowDays)

	rows, err := r.DB.QueryContext(ctx, `
		SELECT
			stage,
			status,
			COUNT(*) AS lead_count,
			COALESCE(SUM(potential_value), 0) AS potential_value
		FROM sales_leads
		WHERE tenant_id = $1 AND created_at >= $2
		GROUP BY stage, status
		ORDER BY stage, status
	`, tenantID, since)
	if err != nil {
		return nil, fmt.Errorf("query sales summary: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	summary := &model.SalesSummary{Groups: []model.PipelineStageGroup{}}
	for rows.Next() {
		var g model.PipelineStageGroup
		if scanErr := rows.Scan(&g.Stage, &g.Status, &g.LeadCount, &g.PotentialValue); scanErr != nil {
			return nil, fmt.Errorf("scan sales group: %w", scanErr)
		}
		summary.Groups = append(summary.Groups, g)

		summary.PotentialValue += g.PotentialValue
		if g.Status == "active" {
			summary.ActiveLeads += g.LeadCount
			if g.Stage == "closed-won" {
				summary.ClosedWonValue += g.PotentialValue
			}
		}
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate sales groups: %w", rowsErr)
	}

	return summary, nil
}

// MetricsSummary rolls up avg/max/min of each distinct custom metric name.
func (r *DashboardRepo) MetricsSummary(ctx context.Context, tenantID string) ([]model.MetricSummary, error) {
	since := r.timeProvider.Now().UTC().AddDate(0, 0, -metricsWindowDays)

	rows, err := r.DB.QueryContext(ctx, `
		SELECT
			name,
			COALESCE(AVG(value), 0) AS avg_value,
			COALESCE(MAX(value), 0) AS max_value,
			COALESCE(MIN(value), 0) AS min_value
		FROM business_metrics
		WHERE tenant_id = $1 AND recorded_at >= $2
		GROUP BY name
		ORDER BY name
	`, tenantID, since)
	if err != nil {
		return nil, fmt.Errorf("query metrics summary: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	metrics := []model.MetricSummary{}
	for rows.Next() {
		var m model.MetricSummary
		if scanErr := rows.Scan(&m.Name, &m.Avg, &m.Max, &m.Min); scanErr != nil {
			return nil, fmt.Errorf("scan metric summary: %w", scanErr)
		}
		metrics = append(metrics, m)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("iterate metric summaries: %w", rowsErr)
	}

	return metrics, nil
}
