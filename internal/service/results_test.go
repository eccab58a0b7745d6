package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/meridianbi/meridian-api/internal/domain/model"
	apperrors "github.com/meridianbi/meridian-api/internal/errors"
)

func TestPipelineService_FetchResults_RejectsNonSweepJobs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	svc, jobs, results, _ := newTestPipelineService(t, ctrl)

	job := &model.PipelineJob{ID: testJobID, TenantID: testTenantID, JobType: model.JobTypeDocumentProcessing}
	jobs.EXPECT().GetByID(ctx, testTenantID, testJobID).Return(job, nil)
	results.EXPECT().ListByJob(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.FetchResults(ctx, testTenantID, testJobID, ResultsQuery{})
	require.Error(t, err)
	assert.True(t, apperrors.IsTypeMismatch(err))
}

func TestPipelineService_FetchResults_NotFoundPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	svc, jobs, _, _ := newTestPipelineService(t, ctrl)

	jobs.EXPECT().GetByID(ctx, testTenantID, "missing").Return(nil, apperrors.NotFound("job not found"))

	_, err := svc.FetchResults(ctx, testTenantID, "missing", ResultsQuery{})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestPipelineService_FetchResults_AppliesDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	svc, jobs, results, _ := newTestPipelineService(t, ctrl)

	job := &model.PipelineJob{ID: testJobID, TenantID: testTenantID, JobType: model.JobTypeTradingSweep, Status: model.JobStatusCompleted}
	jobs.EXPECT().GetByID(ctx, testTenantID, testJobID).Return(job, nil)
	results.EXPECT().ListByJob(ctx, testJobID, "score", "DESC", defaultResultsLimit).
		Return([]model.TradingSweepResult{}, nil)

	page, err := svc.FetchResults(ctx, testTenantID, testJobID, ResultsQuery{})
	require.NoError(t, err)
	assert.Equal(t, "score", page.SortBy)
	assert.Equal(t, "DESC", page.Order)
	assert.Equal(t, defaultResultsLimit, page.Limit)
	assert.Nil(t, page.Statistics)
	assert.Empty(t, page.Results)
}

func TestPipelineService_FetchResults_UnknownSortFallsBackToScore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	svc, jobs, results, _ := newTestPipelineService(t, ctrl)

	job := &model.PipelineJob{ID: testJobID, TenantID: testTenantID, JobType: model.JobTypeTradingSweep}
	jobs.EXPECT().GetByID(ctx, testTenantID, testJobID).Return(job, nil)
	results.EXPECT().ListByJob(ctx, testJobID, "score", "ASC", 25).
		Return([]model.TradingSweepResult{}, nil)

	_, err := svc.FetchResults(ctx, testTenantID, testJobID, ResultsQuery{
		SortBy: "1; DROP TABLE trading_sweep_results",
		Order:  "asc",
		Limit:  25,
	})
	require.NoError(t, err)
}

func TestPipelineService_FetchResults_ComputesStatisticsOverPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	svc, jobs, results, _ := newTestPipelineService(t, ctrl)

	job := &model.PipelineJob{ID: testJobID, TenantID: testTenantID, JobType: model.JobTypeTradingSweep, Status: model.JobStatusCompleted}
	page := []model.TradingSweepResult{
		{SharpeRatio: 1.2, TotalReturnPct: 10, MaxDrawdownPct: -5},
		{SharpeRatio: 0.8, TotalReturnPct: 4, MaxDrawdownPct: -12},
		{SharpeRatio: 2.1, TotalReturnPct: 18, MaxDrawdownPct: -3},
	}

	jobs.EXPECT().GetByID(ctx, testTenantID, testJobID).Return(job, nil)
	results.EXPECT().ListByJob(ctx, testJobID, "sharpe_ratio", "DESC", defaultResultsLimit).Return(page, nil)

	got, err := svc.FetchResults(ctx, testTenantID, testJobID, ResultsQuery{SortBy: "sharpe_ratio"})
	require.NoError(t, err)
	require.NotNil(t, got.Statistics)
	assert.Equal(t, 3, got.Statistics.TotalResults)
	assert.InDelta(t, 2.1, got.Statistics.BestSharpe, 1e-9)
	assert.InDelta(t, 18, got.Statistics.BestReturn, 1e-9)
	assert.InDelta(t, -12, got.Statistics.LowestDrawdown, 1e-9)
	assert.Equal(t, model.JobStatusCompleted, got.JobStatus)
}
