package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianbi/meridian-api/internal/domain/model"
	"github.com/meridianbi/meridian-api/internal/testutil"
)

func seedSweepJob(t *testing.T, db *sql.DB) string {
	t.Helper()
	tenantID := testutil.InsertTenant(t, db, "acme")
	return testutil.InsertJob(t, db, testutil.JobFixture{
		TenantID: tenantID,
		Status:   model.JobStatusCompleted,
	})
}

func TestSweepResultRepo_InsertBatchAndList(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewSweepResultRepo(db, RepoConfig{})
		ctx := context.Background()
		jobID := seedSweepJob(t, db)

		inputs := []model.SweepResultInput{
			{SweepRunID: "run-1", Ticker: "AAPL", StrategyType: "sma_crossover", FastPeriod: 5, SlowPeriod: 20, Score: 1.2, SharpeRatio: 0.9},
			{SweepRunID: "run-1", Ticker: "AAPL", StrategyType: "sma_crossover", FastPeriod: 10, SlowPeriod: 50, Score: 2.4, SharpeRatio: 1.7},
			{SweepRunID: "run-1", Ticker: "AAPL", StrategyType: "sma_crossover", FastPeriod: 15, SlowPeriod: 60, Score: 0.4, SharpeRatio: 0.2},
		}
		require.NoError(t, repo.InsertBatch(ctx, jobID, inputs))

		results, err := repo.ListByJob(ctx, jobID, "score", "DESC", 0)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, 2.4, results[0].Score)
		assert.Equal(t, 1.2, results[1].Score)
		assert.Equal(t, 0.4, results[2].Score)
		assert.Equal(t, jobID, results[0].JobID)
		assert.Equal(t, 10, results[0].FastPeriod)
		assert.False(t, results[0].CreatedAt.IsZero())
	})
}

func TestSweepResultRepo_InsertBatch_EmptyIsNoop(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewSweepResultRepo(db, RepoConfig{})
		require.NoError(t, repo.InsertBatch(context.Background(), "ignored", nil))
	})
}

func TestSweepResultRepo_ListByJob_SortAndLimit(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewSweepResultRepo(db, RepoConfig{})
		ctx := context.Background()
		jobID := seedSweepJob(t, db)

		testutil.InsertSweepResult(t, db, jobID, model.SweepResultInput{Score: 1.0, SharpeRatio: 2.5})
		testutil.InsertSweepResult(t, db, jobID, model.SweepResultInput{Score: 3.0, SharpeRatio: 0.5})
		testutil.InsertSweepResult(t, db, jobID, model.SweepResultInput{Score: 2.0, SharpeRatio: 1.5})

		results, err := repo.ListByJob(ctx, jobID, "sharpe_ratio", "ASC", 0)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, 0.5, results[0].SharpeRatio)
		assert.Equal(t, 2.5, results[2].SharpeRatio)

		results, err = repo.ListByJob(ctx, jobID, "score", "DESC", 2)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, 3.0, results[0].Score)
		assert.Equal(t, 2.0, results[1].Score)
	})
}

func TestSweepResultRepo_ListByJob_EmptyJob(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewSweepResultRepo(db, RepoConfig{})
		jobID := seedSweepJob(t, db)

		results, err := repo.ListByJob(context.Background(), jobID, "score", "DESC", 0)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestSweepResultRepo_PreviewByJobIDs(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewSweepResultRepo(db, RepoConfig{})
		ctx := context.Background()

		tenantID := testutil.InsertTenant(t, db, "acme")
		jobA := testutil.InsertJob(t, db, testutil.JobFixture{TenantID: tenantID, Status: model.JobStatusCompleted})
		jobB := testutil.InsertJob(t, db, testutil.JobFixture{TenantID: tenantID, Status: model.JobStatusCompleted})

		for _, score := range []float64{0.5, 1.5, 2.5, 3.5} {
			testutil.InsertSweepResult(t, db, jobA, model.SweepResultInput{Score: score})
		}
		testutil.InsertSweepResult(t, db, jobB, model.SweepResultInput{Score: 9.0})

		previews, err := repo.PreviewByJobIDs(ctx, []string{jobA, jobB}, 2)
		require.NoError(t, err)
		require.Len(t, previews, 2)

		// Each job gets at most perJob rows, best score first.
		require.Len(t, previews[jobA], 2)
		assert.Equal(t, 3.5, previews[jobA][0].Score)
		assert.Equal(t, 2.5, previews[jobA][1].Score)
		require.Len(t, previews[jobB], 1)
		assert.Equal(t, 9.0, previews[jobB][0].Score)
	})
}

func TestSweepResultRepo_PreviewByJobIDs_NoJobs(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewSweepResultRepo(db, RepoConfig{})

		previews, err := repo.PreviewByJobIDs(context.Background(), nil, 5)
		require.NoError(t, err)
		assert.Empty(t, previews)
	})
}
