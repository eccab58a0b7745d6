package model

import "time"

// TradingSweepResult is one parameter combination's computed performance
// record, child of a trading-sweep job. Rows are written once by the worker
// and are immutable afterwards. All performance fields are stored as NUMERIC
// and surfaced as float64 so callers never see stringified decimals.
type TradingSweepResult struct {
	ID               string    `json:"id"                 db:"id"`
	JobID            string    `json:"job_id"             db:"job_id"`
	SweepRunID       string    `json:"sweep_run_id"       db:"sweep_run_id"`
	Ticker           string    `json:"ticker"             db:"ticker"`
	StrategyType     string    `json:"strategy_type"      db:"strategy_type"`
	FastPeriod       int       `json:"fast_period"        db:"fast_period"`
	SlowPeriod       int       `json:"slow_period"        db:"slow_period"`
	Score            float64   `json:"score"              db:"score"`
	SharpeRatio      float64   `json:"sharpe_ratio"       db:"sharpe_ratio"`
	SortinoRatio     float64   `json:"sortino_ratio"      db:"sortino_ratio"`
	TotalReturnPct   float64   `json:"total_return_pct"   db:"total_return_pct"`
	AnnualizedReturn float64   `json:"annualized_return"  db:"annualized_return"`
	MaxDrawdownPct   float64   `json:"max_drawdown_pct"   db:"max_drawdown_pct"`
	WinRatePct       float64   `json:"win_rate_pct"       db:"win_rate_pct"`
	ProfitFactor     float64   `json:"profit_factor"      db:"profit_factor"`
	TotalTrades      int       `json:"total_trades"       db:"total_trades"`
	TradesPerMonth   float64   `json:"trades_per_month"   db:"trades_per_month"`
	AvgTradeDuration float64   `json:"avg_trade_duration" db:"avg_trade_duration"`
	CreatedAt        time.Time `json:"created_at"         db:"created_at"`
}

// DefaultSweepSortField is used when a caller supplies an unrecognized sort field.
const DefaultSweepSortField = "score"

// sweepSortColumns is the whitelist of sortable result columns. Sorting is
// interpolated into SQL, so only values from this map are ever used.
var sweepSortColumns = map[string]string{
	"score":             "score",
	"sharpe_ratio":      "sharpe_ratio",
	"sortino_ratio":     "sortino_ratio",
	"total_return_pct":  "total_return_pct",
	"annualized_return": "annualized_return",
	"max_drawdown_pct":  "max_drawdown_pct",
	"win_rate_pct":      "win_rate_pct",
	"profit_factor":     "profit_factor",
	"total_trades":      "total_trades",
}

// NormalizeSweepSort maps a caller-supplied sort field to a known column.
// Unrecognized values silently fall back to the score column.
func NormalizeSweepSort(sortBy string) string {
	if col, ok := sweepSortColumns[sortBy]; ok {
		return col
	}
	return sweepSortColumns[DefaultSweepSortField]
}

// NormalizeSortOrder is binary: anything other than exactly "asc" is descending.
func NormalizeSortOrder(order string) string {
	if order == "asc" {
		return "ASC"
	}
	return "DESC"
}

// SweepStatistics summarizes a returned page of sweep results.
// It is computed over the returned rows only, not the full underlying set.
type SweepStatistics struct {
	TotalResults   int     `json:"total_results"`
	BestSharpe     float64 `json:"best_sharpe_ratio"`
	BestReturn     float64 `json:"best_return"`
	LowestDrawdown float64 `json:"lowest_drawdown"`
	AvgSharpe      float64 `json:"avg_sharpe_ratio"`
	AvgReturn      float64 `json:"avg_return"`
}

// ComputeSweepStatistics derives summary statistics from a page of results.
// It returns nil for an empty page; callers surface that as a null statistics
// object rather than zero-filled fields.
func ComputeSweepStatistics(results []TradingSweepResult) *SweepStatistics {
	if len(results) == 0 {
		return nil
	}

	stats := &SweepStatistics{
		TotalResults:   len(results),
		BestSharpe:     results[0].SharpeRatio,
		BestReturn:     results[0].TotalReturnPct,
		LowestDrawdown: results[0].MaxDrawdownPct,
	}

	var sumSharpe, sumReturn float64
	for _, r := range results {
		if r.SharpeRatio > stats.BestSharpe {
			stats.BestSharpe = r.SharpeRatio
		}
		if r.TotalReturnPct > stats.BestReturn {
			stats.BestReturn = r.TotalReturnPct
		}
		if r.MaxDrawdownPct < stats.LowestDrawdown {
			stats.LowestDrawdown = r.MaxDrawdownPct
		}
		sumSharpe += r.SharpeRatio
		sumReturn += r.TotalReturnPct
	}
	stats.AvgSharpe = sumSharpe / float64(len(results))
	stats.AvgReturn = sumReturn / float64(len(results))

	return stats
}

// SweepResultInput is one result row reported by the worker on completion.
type SweepResultInput struct {
	SweepRunID       string  `json:"sweep_run_id"`
	Ticker           string  `json:"ticker"`
	StrategyType     string  `json:"strategy_type"`
	FastPeriod       int     `json:"fast_period"`
	SlowPeriod       int     `json:"slow_period"`
	Score            float64 `json:"score"`
	SharpeRatio      float64 `json:"sharpe_ratio"`
	SortinoRatio     float64 `json:"sortino_ratio"`
	TotalReturnPct   float64 `json:"total_return_pct"`
	AnnualizedReturn float64 `json:"annualized_return"`
	MaxDrawdownPct   float64 `json:"max_drawdown_pct"`
	WinRatePct       float64 `json:"win_rate_pct"`
	ProfitFactor     float64 `json:"profit_factor"`
	TotalTrades      int     `json:"total_trades"`
	TradesPerMonth   float64 `json:"trades_per_month"`
	AvgTradeDuration float64 `json:"avg_trade_duration"`
}
