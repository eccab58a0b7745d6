package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/meridianbi/meridian-api/internal/core"
	"github.com/meridianbi/meridian-api/internal/domain/model"
	apperrors "github.com/meridianbi/meridian-api/internal/errors"
	"github.com/meridianbi/meridian-api/internal/mocks"
)

const (
	testTenantID = "tenant-1"
	testJobID    = "job-1"
)

func newTestPipelineService(t *testing.T, ctrl *gomock.Controller) (*PipelineService, *mocks.MockPipelineJobRepository, *mocks.MockSweepResultRepository, *mocks.MockEventPublisher) {
	t.Helper()

	jobs := mocks.NewMockPipelineJobRepository(ctrl)
	results := mocks.NewMockSweepResultRepository(ctrl)
	publisher := mocks.NewMockEventPublisher(ctrl)

	svc, err := NewPipelineService(PipelineServiceOptions{
		Jobs:      jobs,
		Results:   results,
		Publisher: publisher,
	})
	require.NoError(t, err)

	return svc, jobs, results, publisher
}

func TestNewPipelineService_RequiresRepositories(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, err := NewPipelineService(PipelineServiceOptions{})
	require.Error(t, err)

	_, err = NewPipelineService(PipelineServiceOptions{
		Jobs: mocks.NewMockPipelineJobRepository(ctrl),
	})
	require.Error(t, err)
}

func TestPipelineService_Create_PublishesEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	svc, jobs, _, publisher := newTestPipelineService(t, ctrl)

	req := &model.CreateJobRequest{JobType: model.JobTypeTradingSweep, Ticker: "AAPL"}
	created := &model.PipelineJob{
		ID:        testJobID,
		TenantID:  testTenantID,
		JobType:   model.JobTypeTradingSweep,
		Status:    model.JobStatusQueued,
		CreatedAt: time.Now().UTC(),
	}

	jobs.EXPECT().Create(ctx, testTenantID, req).Return(created, nil)
	publisher.EXPECT().Publish(ctx, gomock.AssignableToTypeOf(core.JobEvent{})).DoAndReturn(
		func(_ context.Context, event core.JobEvent) error {
			assert.Equal(t, core.JobEventCreated, event.Type)
			assert.Equal(t, testJobID, event.JobID)
			assert.Equal(t, testTenantID, event.TenantID)
			assert.Equal(t, model.JobTypeTradingSweep, event.JobType)
			return nil
		})

	got, err := svc.Create(ctx, testTenantID, req)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestPipelineService_Create_PublishFailureDoesNotFailCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	svc, jobs, _, publisher := newTestPipelineService(t, ctrl)

	created := &model.PipelineJob{ID: testJobID, TenantID: testTenantID, JobType: model.JobTypeDataETL}
	jobs.EXPECT().Create(ctx, testTenantID, gomock.Any()).Return(created, nil)
	publisher.EXPECT().Publish(ctx, gomock.Any()).Return(errors.New("redis down"))

	got, err := svc.Create(ctx, testTenantID, &model.CreateJobRequest{JobType: model.JobTypeDataETL})
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestPipelineService_Get_AttachesResultsForSweepJobs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	svc, jobs, results, _ := newTestPipelineService(t, ctrl)

	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	completed := started.Add(95*time.Second + 900*time.Millisecond)
	job := &model.PipelineJob{
		ID:          testJobID,
		TenantID:    testTenantID,
		JobType:     model.JobTypeTradingSweep,
		Status:      model.JobStatusCompleted,
		StartedAt:   &started,
		CompletedAt: &completed,
	}
	sweep := []model.TradingSweepResult{{ID: "r-1", JobID: testJobID, Score: 1.5}}

	jobs.EXPECT().GetByID(ctx, testTenantID, testJobID).Return(job, nil)
	results.EXPECT().ListByJob(ctx, testJobID, "score", "DESC", 0).Return(sweep, nil)

	got, err := svc.Get(ctx, testTenantID, testJobID)
	require.NoError(t, err)
	assert.Equal(t, sweep, got.Results)
	require.NotNil(t, got.DurationSeconds)
	assert.Equal(t, int64(95), *got.DurationSeconds)
}

func TestPipelineService_Get_NonSweepJobHasEmptyResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	svc, jobs, results, _ := newTestPipelineService(t, ctrl)

	job := &model.PipelineJob{ID: testJobID, TenantID: testTenantID, JobType: model.JobTypeDataETL, Status: model.JobStatusQueued}
	jobs.EXPECT().GetByID(ctx, testTenantID, testJobID).Return(job, nil)
	results.EXPECT().ListByJob(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	got, err := svc.Get(ctx, testTenantID, testJobID)
	require.NoError(t, err)
	assert.NotNil(t, got.Results)
	assert.Empty(t, got.Results)
	assert.Nil(t, got.DurationSeconds)
}

func TestPipelineService_List_NormalizesPaginationAndAttachesPreviews(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	svc, jobs, results, _ := newTestPipelineService(t, ctrl)

	sweepJob := &model.PipelineJob{ID: "job-sweep", TenantID: testTenantID, JobType: model.JobTypeTradingSweep}
	etlJob := &model.PipelineJob{ID: "job-etl", TenantID: testTenantID, JobType: model.JobTypeDataETL}

	jobs.EXPECT().List(ctx, testTenantID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, filter model.JobListFilter) ([]*model.PipelineJob, int, error) {
			assert.Equal(t, 50, filter.Limit)
			assert.Equal(t, 0, filter.Offset)
			return []*model.PipelineJob{sweepJob, etlJob}, 7, nil
		})
	results.EXPECT().PreviewByJobIDs(ctx, []string{"job-sweep"}, resultsPreviewLimit).Return(
		map[string][]model.TradingSweepResult{
			"job-sweep": {{ID: "r-1", JobID: "job-sweep"}},
		}, nil)

	page, err := svc.List(ctx, testTenantID, model.JobListFilter{Limit: 0, Offset: -3})
	require.NoError(t, err)
	assert.Equal(t, 7, page.Total)
	require.Len(t, page.Jobs, 2)
	assert.Len(t, page.Jobs[0].Results, 1)
	assert.Empty(t, page.Jobs[1].Results)
	assert.NotNil(t, page.Jobs[1].Results)
}

func TestPipelineService_List_ClampsOversizedLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	svc, jobs, _, _ := newTestPipelineService(t, ctrl)

	jobs.EXPECT().List(ctx, testTenantID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, filter model.JobListFilter) ([]*model.PipelineJob, int, error) {
			assert.Equal(t, maxListLimit, filter.Limit)
			return nil, 0, nil
		})

	page, err := svc.List(ctx, testTenantID, model.JobListFilter{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.Empty(t, page.Jobs)
}

func TestPipelineService_Cancel_PublishesEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	svc, jobs, _, publisher := newTestPipelineService(t, ctrl)

	completed := time.Now().UTC()
	msg := model.CancelledByUserMessage
	cancelled := &model.PipelineJob{
		ID:           testJobID,
		TenantID:     testTenantID,
		JobType:      model.JobTypeTradingSweep,
		Status:       model.JobStatusFailed,
		ErrorMessage: &msg,
		CompletedAt:  &completed,
	}

	jobs.EXPECT().Cancel(ctx, testTenantID, testJobID).Return(cancelled, nil)
	publisher.EXPECT().Publish(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, event core.JobEvent) error {
			assert.Equal(t, core.JobEventCancelled, event.Type)
			assert.Equal(t, completed, event.OccurredAt)
			return nil
		})

	got, err := svc.Cancel(ctx, testTenantID, testJobID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusFailed, got.Status)
	require.NotNil(t, got.ErrorMessage)
	assert.Equal(t, model.CancelledByUserMessage, *got.ErrorMessage)
}

func TestPipelineService_Cancel_ConflictPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	svc, jobs, _, publisher := newTestPipelineService(t, ctrl)

	jobs.EXPECT().Cancel(ctx, testTenantID, testJobID).
		Return(nil, apperrors.Conflictf("cannot cancel job with status: %s", model.JobStatusCompleted))
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Cancel(ctx, testTenantID, testJobID)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestPipelineService_MarkCompleted_InsertsResultsOnlyWhenApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	svc, jobs, results, _ := newTestPipelineService(t, ctrl)

	result := json.RawMessage(`{"best_score": 2.1}`)
	metrics := json.RawMessage(`{"elapsed_ms": 1200}`)
	sweep := []model.SweepResultInput{{Ticker: "AAPL", Score: 2.1}}

	completed := &model.PipelineJob{
		ID:       testJobID,
		TenantID: testTenantID,
		JobType:  model.JobTypeTradingSweep,
		Status:   model.JobStatusCompleted,
	}
	jobs.EXPECT().Complete(ctx, testJobID, result, metrics).Return(completed, nil)
	results.EXPECT().InsertBatch(ctx, testJobID, sweep).Return(nil)

	ok, err := svc.MarkCompleted(ctx, testJobID, result, metrics, sweep)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPipelineService_MarkCompleted_SkipsResultsWhenTransitionLost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	svc, jobs, results, _ := newTestPipelineService(t, ctrl)

	jobs.EXPECT().Complete(ctx, testJobID, gomock.Any(), gomock.Any()).Return(nil, nil)
	results.EXPECT().InsertBatch(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	ok, err := svc.MarkCompleted(ctx, testJobID, nil, nil, []model.SweepResultInput{{Ticker: "AAPL"}})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPipelineService_MarkCompleted_RejectsSweepResultsForOtherJobTypes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	svc, jobs, results, _ := newTestPipelineService(t, ctrl)

	etlJob := &model.PipelineJob{
		ID:       testJobID,
		TenantID: testTenantID,
		JobType:  model.JobTypeDataETL,
		Status:   model.JobStatusCompleted,
	}
	jobs.EXPECT().Complete(ctx, testJobID, gomock.Any(), gomock.Any()).Return(etlJob, nil)
	results.EXPECT().InsertBatch(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.MarkCompleted(ctx, testJobID, nil, nil, []model.SweepResultInput{{Ticker: "AAPL", Score: 1.0}})
	require.Error(t, err)
	assert.True(t, apperrors.IsTypeMismatch(err))
}

func TestPipelineService_MarkCompleted_NonSweepJobWithoutResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	svc, jobs, results, _ := newTestPipelineService(t, ctrl)

	etlJob := &model.PipelineJob{ID: testJobID, JobType: model.JobTypeDataETL, Status: model.JobStatusCompleted}
	jobs.EXPECT().Complete(ctx, testJobID, gomock.Any(), gomock.Any()).Return(etlJob, nil)
	results.EXPECT().InsertBatch(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	ok, err := svc.MarkCompleted(ctx, testJobID, nil, nil, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPipelineService_MarkStartedAndFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	svc, jobs, _, _ := newTestPipelineService(t, ctrl)

	jobs.EXPECT().Start(ctx, testJobID).Return(true, nil)
	ok, err := svc.MarkStarted(ctx, testJobID)
	require.NoError(t, err)
	assert.True(t, ok)

	jobs.EXPECT().Fail(ctx, testJobID, "worker exploded").Return(true, nil)
	ok, err = svc.MarkFailed(ctx, testJobID, "worker exploded")
	require.NoError(t, err)
	assert.True(t, ok)
}
