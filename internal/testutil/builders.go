// Package testutil provides testing utilities and helpers for the meridian pipeline system.
package testutil

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/meridianbi/meridian-api/internal/domain/model"
)

// JobRequestBuilder provides a fluent interface for building CreateJobRequest objects for testing.
type JobRequestBuilder struct {
	req *model.CreateJobRequest
}

// NewJobRequest creates a new JobRequestBuilder with sensible defaults.
func NewJobRequest() *JobRequestBuilder {
	return &JobRequestBuilder{
		req: &model.CreateJobRequest{
			JobType: model.JobTypeTradingSweep,
			Ticker:  "AAPL",
			Config:  json.RawMessage(`{"strategy_type": "sma_crossover"}`),
		},
	}
}

// WithType sets the job type.
func (b *JobRequestBuilder) WithType(jobType model.JobType) *JobRequestBuilder {
	b.req.JobType = jobType
	return b
}

// WithTicker sets the ticker merged into the job parameters.
func (b *JobRequestBuilder) WithTicker(ticker string) *JobRequestBuilder {
	b.req.Ticker = ticker
	return b
}

// WithConfig sets the config blob.
func (b *JobRequestBuilder) WithConfig(config json.RawMessage) *JobRequestBuilder {
	b.req.Config = config
	return b
}

// WithConfigString sets the config blob from a string.
func (b *JobRequestBuilder) WithConfigString(config string) *JobRequestBuilder {
	b.req.Config = json.RawMessage(config)
	return b
}

// Build returns the constructed CreateJobRequest.
func (b *JobRequestBuilder) Build() *model.CreateJobRequest {
	return b.req
}

// Common test job request presets

// TradingSweepJobRequest creates a trading-sweep job request with default values.
func TradingSweepJobRequest() *model.CreateJobRequest {
	return NewJobRequest().
		WithType(model.JobTypeTradingSweep).
		WithConfigString(`{"strategy_type": "sma_crossover", "fast_periods": [5, 10], "slow_periods": [20, 50]}`).
		Build()
}

// DataETLJobRequest creates a data-etl job request with default values.
func DataETLJobRequest() *model.CreateJobRequest {
	return NewJobRequest().
		WithType(model.JobTypeDataETL).
		WithTicker("").
		WithConfigString(`{"source": "warehouse", "destination": "lake"}`).
		Build()
}

// Database fixture helpers. These insert rows directly so repository tests
// can arrange state without going through the code under test.

// InsertTenant inserts a tenant row and returns its id.
func InsertTenant(t TestingTB, db *sql.DB, name string) string {
	t.Helper()

	id := uuid.NewString()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.ExecContext(ctx, `
		INSERT INTO tenants (id, name, slug, created_at)
		VALUES ($1, $2, $3, now())
	`, id, name, name+"-"+id[:8])
	if err != nil {
		t.Fatalf("Failed to insert tenant %s: %v", name, err)
	}
	return id
}

// JobFixture describes a pipeline job row to insert directly.
type JobFixture struct {
	TenantID     string
	JobType      model.JobType
	Status       model.JobStatus
	Parameters   string
	ErrorMessage *string
	CreatedAt    time.Time
	StartedAt    *time.Time
	CompletedAt  *time.Time
}

// InsertJob inserts a pipeline job row and returns its id.
func InsertJob(t TestingTB, db *sql.DB, fixture JobFixture) string {
	t.Helper()

	id := uuid.NewString()
	if fixture.JobType == "" {
		fixture.JobType = model.JobTypeTradingSweep
	}
	if fixture.Status == "" {
		fixture.Status = model.JobStatusQueued
	}
	if fixture.Parameters == "" {
		fixture.Parameters = "{}"
	}
	if fixture.CreatedAt.IsZero() {
		fixture.CreatedAt = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.ExecContext(ctx, `
		INSERT INTO pipeline_jobs (id, tenant_id, job_type, status, parameters, error_message, created_at, started_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, id, fixture.TenantID, fixture.JobType, fixture.Status, fixture.Parameters,
		fixture.ErrorMessage, fixture.CreatedAt, fixture.StartedAt, fixture.CompletedAt)
	if err != nil {
		t.Fatalf("Failed to insert pipeline job: %v", err)
	}
	return id
}

// InsertSweepResult inserts a trading sweep result row for a job and returns its id.
func InsertSweepResult(t TestingTB, db *sql.DB, jobID string, input model.SweepResultInput) string {
	t.Helper()

	id := uuid.NewString()
	if input.Ticker == "" {
		input.Ticker = "AAPL"
	}
	if input.StrategyType == "" {
		input.StrategyType = "sma_crossover"
	}
	if input.SweepRunID == "" {
		input.SweepRunID = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.ExecContext(ctx, `
		INSERT INTO trading_sweep_results (
			id, job_id, sweep_run_id, ticker, strategy_type, fast_period, slow_period,
			score, sharpe_ratio, sortino_ratio, total_return_pct, annualized_return,
			max_drawdown_pct, win_rate_pct, profit_factor, total_trades, trades_per_month,
			avg_trade_duration, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, now())
	`, id, jobID, input.SweepRunID, input.Ticker, input.StrategyType, input.FastPeriod, input.SlowPeriod,
		input.Score, input.SharpeRatio, input.SortinoRatio, input.TotalReturnPct, input.AnnualizedReturn,
		input.MaxDrawdownPct, input.WinRatePct, input.ProfitFactor, input.TotalTrades, input.TradesPerMonth,
		input.AvgTradeDuration)
	if err != nil {
		t.Fatalf("Failed to insert sweep result: %v", err)
	}
	return id
}

// InsertFinancialRecord inserts a financial fact row for a tenant.
func InsertFinancialRecord(t TestingTB, db *sql.DB, tenantID string, recordDate time.Time, revenue, expenses, cashFlow float64) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.ExecContext(ctx, `
		INSERT INTO financial_records (id, tenant_id, record_date, revenue, expenses, cash_flow)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), tenantID, recordDate, revenue, expenses, cashFlow)
	if err != nil {
		t.Fatalf("Failed to insert financial record: %v", err)
	}
}

// InsertSalesLead inserts a sales lead row for a tenant.
func InsertSalesLead(t TestingTB, db *sql.DB, tenantID, stage, status string, potentialValue float64) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.ExecContext(ctx, `
		INSERT INTO sales_leads (id, tenant_id, stage, status, potential_value)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), tenantID, stage, status, potentialValue)
	if err != nil {
		t.Fatalf("Failed to insert sales lead: %v", err)
	}
}

// InsertBusinessMetric inserts a custom metric observation for a tenant.
func InsertBusinessMetric(t TestingTB, db *sql.DB, tenantID, name string, value float64, recordedAt time.Time) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.ExecContext(ctx, `
		INSERT INTO business_metrics (id, tenant_id, name, value, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), tenantID, name, value, recordedAt)
	if err != nil {
		t.Fatalf("Failed to insert business metric: %v", err)
	}
}
