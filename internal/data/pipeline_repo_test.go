package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianbi/meridian-api/internal/domain/model"
	apperrors "github.com/meridianbi/meridian-api/internal/errors"
	"github.com/meridianbi/meridian-api/internal/testutil"
)

func newPipelineRepo(db *sql.DB) *PipelineRepo {
	return NewPipelineRepo(db, RepoConfig{})
}

func TestPipelineRepo_CreateAndGet(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := newPipelineRepo(db)
		ctx := context.Background()
		tenantID := testutil.InsertTenant(t, db, "acme")

		req := testutil.TradingSweepJobRequest()
		job, err := repo.Create(ctx, tenantID, req)
		require.NoError(t, err)

		assert.NotEmpty(t, job.ID)
		assert.Equal(t, tenantID, job.TenantID)
		assert.Equal(t, model.JobTypeTradingSweep, job.JobType)
		assert.Equal(t, model.JobStatusQueued, job.Status)
		assert.Nil(t, job.StartedAt)
		assert.Nil(t, job.CompletedAt)

		// The ticker is merged into the persisted parameters.
		var params map[string]any
		require.NoError(t, json.Unmarshal(job.Parameters, &params))
		assert.Equal(t, "AAPL", params["ticker"])
		assert.Equal(t, "sma_crossover", params["strategy_type"])

		got, err := repo.GetByID(ctx, tenantID, job.ID)
		require.NoError(t, err)
		assert.Equal(t, job.ID, got.ID)
		assert.Equal(t, model.JobStatusQueued, got.Status)
	})
}

func TestPipelineRepo_Create_ValidatesRequest(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := newPipelineRepo(db)
		ctx := context.Background()
		tenantID := testutil.InsertTenant(t, db, "acme")

		req := testutil.NewJobRequest().
			WithType(model.JobTypeDataETL).
			WithTicker("").
			WithConfigString(`{"fast_periods": [5]}`).
			Build()

		_, err := repo.Create(ctx, tenantID, req)
		require.Error(t, err)
	})
}

func TestPipelineRepo_GetByID_CrossTenantIsNotFound(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := newPipelineRepo(db)
		ctx := context.Background()
		owner := testutil.InsertTenant(t, db, "owner")
		other := testutil.InsertTenant(t, db, "other")

		jobID := testutil.InsertJob(t, db, testutil.JobFixture{TenantID: owner})

		_, err := repo.GetByID(ctx, other, jobID)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))

		_, err = repo.GetByID(ctx, owner, jobID)
		require.NoError(t, err)
	})
}

func TestPipelineRepo_List(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := newPipelineRepo(db)
		ctx := context.Background()
		tenantID := testutil.InsertTenant(t, db, "acme")
		otherTenant := testutil.InsertTenant(t, db, "other")

		base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		oldest := testutil.InsertJob(t, db, testutil.JobFixture{
			TenantID: tenantID, CreatedAt: base,
		})
		middle := testutil.InsertJob(t, db, testutil.JobFixture{
			TenantID: tenantID, Status: model.JobStatusRunning, CreatedAt: base.Add(time.Minute),
		})
		newest := testutil.InsertJob(t, db, testutil.JobFixture{
			TenantID: tenantID, JobType: model.JobTypeDataETL, CreatedAt: base.Add(2 * time.Minute),
		})
		testutil.InsertJob(t, db, testutil.JobFixture{TenantID: otherTenant, CreatedAt: base.Add(time.Hour)})

		jobs, total, err := repo.List(ctx, tenantID, model.JobListFilter{})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, jobs, 3)
		// Newest first.
		assert.Equal(t, newest, jobs[0].ID)
		assert.Equal(t, middle, jobs[1].ID)
		assert.Equal(t, oldest, jobs[2].ID)

		running := model.JobStatusRunning
		jobs, total, err = repo.List(ctx, tenantID, model.JobListFilter{Status: &running})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, jobs, 1)
		assert.Equal(t, middle, jobs[0].ID)

		etl := model.JobTypeDataETL
		jobs, total, err = repo.List(ctx, tenantID, model.JobListFilter{JobType: &etl})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, jobs, 1)
		assert.Equal(t, newest, jobs[0].ID)

		jobs, total, err = repo.List(ctx, tenantID, model.JobListFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, jobs, 1)
		assert.Equal(t, oldest, jobs[0].ID)
	})
}

func TestPipelineRepo_Cancel(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithAutoDB(t, func(db *sql.DB) {
		tp := testutil.NewTestTimeProvider(testutil.TestTime())
		repo := NewPipelineRepo(db, RepoConfig{TimeProvider: tp})
		ctx := context.Background()
		tenantID := testutil.InsertTenant(t, db, "acme")
		jobID := testutil.InsertJob(t, db, testutil.JobFixture{TenantID: tenantID})

		job, err := repo.Cancel(ctx, tenantID, jobID)
		require.NoError(t, err)
		assert.Equal(t, model.JobStatusFailed, job.Status)
		require.NotNil(t, job.ErrorMessage)
		assert.Equal(t, model.CancelledByUserMessage, *job.ErrorMessage)
		require.NotNil(t, job.CompletedAt)
		assert.True(t, job.CompletedAt.Equal(testutil.TestTime()))

		// A second cancel loses the status guard and surfaces a conflict
		// naming the stored status.
		_, err = repo.Cancel(ctx, tenantID, jobID)
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
		assert.Contains(t, err.Error(), "failed")
	})
}

func TestPipelineRepo_Cancel_MissingJob(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := newPipelineRepo(db)
		tenantID := testutil.InsertTenant(t, db, "acme")

		_, err := repo.Cancel(context.Background(), tenantID, "no-such-job")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestPipelineRepo_Cancel_CompletedJobUnchanged(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := newPipelineRepo(db)
		ctx := context.Background()
		tenantID := testutil.InsertTenant(t, db, "acme")

		completedAt := time.Date(2026, 1, 2, 8, 30, 0, 0, time.UTC)
		jobID := testutil.InsertJob(t, db, testutil.JobFixture{
			TenantID:    tenantID,
			Status:      model.JobStatusCompleted,
			CompletedAt: &completedAt,
		})

		_, err := repo.Cancel(ctx, tenantID, jobID)
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
		assert.Contains(t, err.Error(), "completed")

		// The losing cancel must not touch the terminal row.
		job, err := repo.GetByID(ctx, tenantID, jobID)
		require.NoError(t, err)
		assert.Equal(t, model.JobStatusCompleted, job.Status)
		require.NotNil(t, job.CompletedAt)
		assert.True(t, job.CompletedAt.Equal(completedAt))
		assert.Nil(t, job.ErrorMessage)
	})
}

func TestPipelineRepo_Cancel_CrossTenantIsNotFound(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := newPipelineRepo(db)
		owner := testutil.InsertTenant(t, db, "owner")
		other := testutil.InsertTenant(t, db, "other")
		jobID := testutil.InsertJob(t, db, testutil.JobFixture{TenantID: owner})

		_, err := repo.Cancel(context.Background(), other, jobID)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestPipelineRepo_WorkerTransitions(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := newPipelineRepo(db)
		ctx := context.Background()
		tenantID := testutil.InsertTenant(t, db, "acme")
		jobID := testutil.InsertJob(t, db, testutil.JobFixture{TenantID: tenantID})

		ok, err := repo.Start(ctx, jobID)
		require.NoError(t, err)
		assert.True(t, ok)

		// A second worker loses the queued guard.
		ok, err = repo.Start(ctx, jobID)
		require.NoError(t, err)
		assert.False(t, ok)

		completed, err := repo.Complete(ctx, jobID, json.RawMessage(`{"best":"r1"}`), json.RawMessage(`{"elapsed":3}`))
		require.NoError(t, err)
		require.NotNil(t, completed)
		assert.Equal(t, model.JobStatusCompleted, completed.Status)
		assert.Equal(t, model.JobTypeTradingSweep, completed.JobType)

		job, err := repo.GetByID(ctx, tenantID, jobID)
		require.NoError(t, err)
		assert.Equal(t, model.JobStatusCompleted, job.Status)
		assert.JSONEq(t, `{"best":"r1"}`, string(job.Result))
		require.NotNil(t, job.StartedAt)
		require.NotNil(t, job.CompletedAt)

		// Terminal jobs reject further transitions.
		completed, err = repo.Complete(ctx, jobID, nil, nil)
		require.NoError(t, err)
		assert.Nil(t, completed)
		ok, err = repo.Fail(ctx, jobID, "late failure")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestPipelineRepo_CompleteLosesAgainstCancel(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := newPipelineRepo(db)
		ctx := context.Background()
		tenantID := testutil.InsertTenant(t, db, "acme")
		jobID := testutil.InsertJob(t, db, testutil.JobFixture{
			TenantID: tenantID,
			Status:   model.JobStatusRunning,
		})

		_, err := repo.Cancel(ctx, tenantID, jobID)
		require.NoError(t, err)

		completed, err := repo.Complete(ctx, jobID, json.RawMessage(`{}`), nil)
		require.NoError(t, err)
		assert.Nil(t, completed)

		job, err := repo.GetByID(ctx, tenantID, jobID)
		require.NoError(t, err)
		assert.Equal(t, model.JobStatusFailed, job.Status)
		require.NotNil(t, job.ErrorMessage)
		assert.Equal(t, model.CancelledByUserMessage, *job.ErrorMessage)
	})
}

func TestPipelineRepo_Fail(t *testing.T) {
	testutil.SkipIfNoTestDB(t)
	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := newPipelineRepo(db)
		ctx := context.Background()
		tenantID := testutil.InsertTenant(t, db, "acme")
		jobID := testutil.InsertJob(t, db, testutil.JobFixture{TenantID: tenantID})

		ok, err := repo.Fail(ctx, jobID, "worker crashed")
		require.NoError(t, err)
		assert.True(t, ok)

		job, err := repo.GetByID(ctx, tenantID, jobID)
		require.NoError(t, err)
		assert.Equal(t, model.JobStatusFailed, job.Status)
		require.NotNil(t, job.ErrorMessage)
		assert.Equal(t, "worker crashed", *job.ErrorMessage)
		require.NotNil(t, job.CompletedAt)
	})
}
