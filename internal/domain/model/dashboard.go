package model

// FinancialDay is one grouped day of financial facts for a tenant.
type FinancialDay struct {
	Date          string  `json:"date"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalExpenses float64 `json:"total_expenses"`
	NetProfit     float64 `json:"net_profit"`
	CashFlow      float64 `json:"cash_flow"`
	AvgRevenue    float64 `json:"avg_revenue"`
	AvgExpenses   float64 `json:"avg_expenses"`
	AvgNetProfit  float64 `json:"avg_net_profit"`
	AvgCashFlow   float64 `json:"avg_cash_flow"`
}

// FinancialSummary is the financial roll-up over the dashboard window.
type FinancialSummary struct {
	Days          []FinancialDay `json:"days"`
	TotalRevenue  float64        `json:"total_revenue"`
	TotalExpenses float64        `json:"total_expenses"`
	NetProfit     float64        `json:"net_profit"`
	ProfitMargin  float64        `json:"profit_margin"`
	RevenueGrowth float64        `json:"revenue_growth"`
}

// PipelineStageGroup is one (stage, status) group of sales leads.
type PipelineStageGroup struct {
	Stage          string  `json:"stage"`
	Status         string  `json:"status"`
	LeadCount      int     `json:"lead_count"`
	PotentialValue float64 `json:"potential_value"`
}

// SalesSummary is the sales pipeline roll-up over the dashboard window.
type SalesSummary struct {
	Groups         []PipelineStageGroup `json:"groups"`
	ActiveLeads    int                  `json:"active_leads"`
	PotentialValue float64              `json:"potential_value"`
	ClosedWonValue float64              `json:"closed_won_value"`
}

// MetricSummary is the avg/max/min roll-up of one named custom metric.
type MetricSummary struct {
	Name string  `json:"name"`
	Avg  float64 `json:"avg"`
	Max  float64 `json:"max"`
	Min  float64 `json:"min"`
}

// DashboardResponse combines the three independent roll-ups into one payload.
type DashboardResponse struct {
	Financial FinancialSummary `json:"financial"`
	Sales     SalesSummary     `json:"sales"`
	Metrics   []MetricSummary  `json:"metrics"`
}

// ProfitMargin derives net profit as a percentage of revenue.
// It returns 0 when revenue is 0 so an empty window never divides by zero.
func ProfitMargin(netProfit, totalRevenue float64) float64 {
	if totalRevenue == 0 {
		return 0
	}
	return netProfit / totalRevenue * 100
}

// RevenueGrowth compares the most recent half of grouped days against the
// prior half. It returns 0 when the prior period's revenue is 0.
func RevenueGrowth(recentRevenue, priorRevenue float64) float64 {
	if priorRevenue == 0 {
		return 0
	}
	return (recentRevenue - priorRevenue) / priorRevenue * 100
}
