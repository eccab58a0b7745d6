package data

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/meridianbi/meridian-api/internal/data/pgxutil"
	"github.com/meridianbi/meridian-api/internal/domain/model"
)

// SweepResultRepo provides database operations for trading sweep results.
// Result rows are written once by the worker and never updated.
type SweepResultRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
	logger       *slog.Logger
}

// NewSweepResultRepo creates a new SweepResultRepo instance.
func NewSweepResultRepo(db *sql.DB, cfg RepoConfig) *SweepResultRepo {
	tp := cfg.TimeProvider
	if tp == nil {
		tp = &RealTimeProvider{}
	}

	return &SweepResultRepo{
		DB:           db,
		timeProvider: tp,
		logger:       cfg.Logger,
	}
}

const sweepColumns = `
  id,
  job_id,
  sweep_run_id,
  ticker,
  strategy_type,
  fast_period,
  slow_period,
  score,
  sharpe_ratio,
  sortino_ratio,
  total_return_pct,
  annualized_return,
  max_drawdown_pct,
  win_rate_pct,
  profit_factor,
  total_trades,
  trades_per_month,
  avg_trade_duration,
  created_at
`

// ListByJob returns the job's sweep results ordered by the given column.
// sortColumn must come from model.NormalizeSweepSort and order from
// model.NormalizeSortOrder; they are interpolated into the statement.
func (r *SweepResultRepo) ListByJob(
	ctx context.Context,
	jobID string,
	sortColumn, order string,
	limit int,
) ([]model.TradingSweepResult, error) {
	if limit <= 0 {
		limit = 100
	}

	query := fmt.Sprintf(`
		SELECT `+sweepColumns+`
		FROM trading_sweep_results
		WHERE job_id = $1
		ORDER BY %s %s, id ASC
		LIMIT $2
	`, sortColumn, order)

	var results []model.TradingSweepResult
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, jobID, limit)
		if err != nil {
			return fmt.Errorf("query sweep results: %w", err)
		}
		defer rows.Close()

		vals, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.TradingSweepResult])
		if err != nil {
			return fmt.Errorf("collect sweep results: %w", err)
		}
		results = vals
		return nil
	}); err != nil {
		return nil, err
	}

	return results, nil
}

// PreviewByJobIDs returns up to perJob of each job's best results by score,
// keyed by job id. It backs the bounded preview on job listings.
func (r *SweepResultRepo) PreviewByJobIDs(
	ctx context.Context,
	jobIDs []string,
	perJob int,
) (map[string][]model.TradingSweepResult, error) {
	res := make(map[string][]model.TradingSweepResult, len(jobIDs))
	if len(jobIDs) == 0 {
		return res, nil
	}
	if perJob <= 0 {
		perJob = 5
	}

	query := `
		SELECT ` + sweepColumns + `
		FROM (
			SELECT *, ROW_NUMBER() OVER (PARTITION BY job_id ORDER BY score DESC, id ASC) AS rn
			FROM trading_sweep_results
			WHERE job_id = ANY($1)
		) ranked
		WHERE rn <= $2
		ORDER BY job_id, rn
	`

	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, jobIDs, perJob)
		if err != nil {
			return fmt.Errorf("query result previews: %w", err)
		}
		defer rows.Close()

		vals, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.TradingSweepResult])
		if err != nil {
			return fmt.Errorf("collect result previews: %w", err)
		}
		for _, v := range vals {
			res[v.JobID] = append(res[v.JobID], v)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return res, nil
}

// InsertBatch persists the worker's result rows for a job in one transaction.
func (r *SweepResultRepo) InsertBatch(
	ctx context.Context,
	jobID string,
	inputs []model.SweepResultInput,
) error {
	if len(inputs) == 0 {
		return nil
	}

	now := r.timeProvider.Now().UTC()

	return pgxutil.WithSQLTx(ctx, r.DB, pgxutil.SQLTxConfig{
		Fn: func(tx *sql.Tx) error {
			stmt, err := tx.PrepareContext(ctx, `
				INSERT INTO trading_sweep_results(
					id, job_id, sweep_run_id, ticker, strategy_type,
					fast_period, slow_period,
					score, sharpe_ratio, sortino_ratio, total_return_pct,
					annualized_return, max_drawdown_pct, win_rate_pct, profit_factor,
					total_trades, trades_per_month, avg_trade_duration, created_at
				)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
			`)
			if err != nil {
				return fmt.Errorf("prepare insert: %w", err)
			}
			defer func() {
				if closeErr := stmt.Close(); closeErr != nil {
					_ = closeErr
				}
			}()

			for i := range inputs {
				in := &inputs[i]
				if _, execErr := stmt.ExecContext(ctx,
					uuid.NewString(), jobID, in.SweepRunID, in.Ticker, in.StrategyType,
					in.FastPeriod, in.SlowPeriod,
					in.Score, in.SharpeRatio, in.SortinoRatio, in.TotalReturnPct,
					in.AnnualizedReturn, in.MaxDrawdownPct, in.WinRatePct, in.ProfitFactor,
					in.TotalTrades, in.TradesPerMonth, in.AvgTradeDuration, now,
				); execErr != nil {
					return fmt.Errorf("insert sweep result %d: %w", i, execErr)
				}
			}
			return nil
		},
	})
}
