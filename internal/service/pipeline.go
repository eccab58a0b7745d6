package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/meridianbi/meridian-api/internal/core"
	"github.com/meridianbi/meridian-api/internal/domain/model"
	apperrors "github.com/meridianbi/meridian-api/internal/errors"
)

// Listing attaches at most this many sweep results per job as a preview.
const resultsPreviewLimit = 5

// Pagination defaults for job listings.
const (
	defaultListLimit = 50
	maxListLimit     = 1000
)

// PipelineServiceOptions groups dependencies for PipelineService.
type PipelineServiceOptions struct {
	Jobs      core.PipelineJobRepository // Required: job repository
	Results   core.SweepResultRepository // Required: sweep result repository
	Publisher core.EventPublisher        // Optional: lifecycle event fan-out
	Logger    *slog.Logger               // Optional: structured logger
}

// PipelineService provides business logic for pipeline job operations.
//
// This service manages:
// - Job creation, retrieval, listing and cancellation for a tenant
// - Worker-reported status transitions and result ingestion
// - Best-effort lifecycle event publication.
type PipelineService struct {
	jobs      core.PipelineJobRepository
	results   core.SweepResultRepository
	publisher core.EventPublisher
	logger    *slog.Logger
}

// NewPipelineService constructs a new PipelineService.
func NewPipelineService(opts PipelineServiceOptions) (*PipelineService, error) {
	if opts.Jobs == nil {
		return nil, errors.New("PipelineJobRepository is required")
	}
	if opts.Results == nil {
		return nil, errors.New("SweepResultRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "pipeline_service")
	}

	return &PipelineService{
		jobs:      opts.Jobs,
		results:   opts.Results,
		publisher: opts.Publisher,
		logger:    logger,
	}, nil
}

// MustNewPipelineService constructs a new PipelineService and panics on error.
// Use this when you're certain the options are valid (e.g., in main.go).
func MustNewPipelineService(opts PipelineServiceOptions) *PipelineService {
	svc, err := NewPipelineService(opts)
	if err != nil {
		panic(fmt.Sprintf("failed to create PipelineService: %v", err))
	}
	return svc
}

// Create queues a new job for the tenant and announces it to any listening
// workers. Event publication is best-effort; a failed publish never fails the
// create.
func (s *PipelineService) Create(ctx context.Context, tenantID string, req *model.CreateJobRequest) (*model.PipelineJob, error) {
	job, err := s.jobs.Create(ctx, tenantID, req)
	if err != nil {
		return nil, fmt.Errorf("create pipeline job: %w", err)
	}

	s.publish(ctx, core.JobEventCreated, job)

	if s.logger != nil {
		s.logger.DebugContext(ctx, "pipeline job created",
			"id", job.ID,
			"tenant_id", job.TenantID,
			"job_type", job.JobType,
		)
	}

	return job, nil
}

// Get returns a tenant's job with its sweep results and derived duration.
// Non-sweep job types carry an empty results slice.
func (s *PipelineService) Get(ctx context.Context, tenantID, id string) (*model.JobWithResults, error) {
	job, err := s.jobs.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	results := []model.TradingSweepResult{}
	if job.JobType == model.JobTypeTradingSweep {
		results, err = s.results.ListByJob(ctx, job.ID, model.NormalizeSweepSort(model.DefaultSweepSortField), "DESC", 0)
		if err != nil {
			return nil, fmt.Errorf("list job results: %w", err)
		}
	}

	return &model.JobWithResults{
		PipelineJob:     *job,
		Results:         results,
		DurationSeconds: job.DurationSeconds(),
	}, nil
}

// List returns one page of a tenant's jobs, newest first, each annotated with
// a bounded preview of its sweep results.
func (s *PipelineService) List(ctx context.Context, tenantID string, filter model.JobListFilter) (*model.JobPage, error) {
	filter.Limit, filter.Offset = normalizePagination(filter.Limit, filter.Offset)

	jobs, total, err := s.jobs.List(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("list pipeline jobs: %w", err)
	}

	sweepIDs := make([]string, 0, len(jobs))
	for _, job := range jobs {
		if job.JobType == model.JobTypeTradingSweep {
			sweepIDs = append(sweepIDs, job.ID)
		}
	}

	previews := map[string][]model.TradingSweepResult{}
	if len(sweepIDs) > 0 {
		previews, err = s.results.PreviewByJobIDs(ctx, sweepIDs, resultsPreviewLimit)
		if err != nil {
			return nil, fmt.Errorf("preview job results: %w", err)
		}
	}

	page := &model.JobPage{
		Jobs:   make([]model.JobWithResults, 0, len(jobs)),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	for _, job := range jobs {
		results := previews[job.ID]
		if results == nil {
			results = []model.TradingSweepResult{}
		}
		page.Jobs = append(page.Jobs, model.JobWithResults{
			PipelineJob:     *job,
			Results:         results,
			DurationSeconds: job.DurationSeconds(),
		})
	}

	return page, nil
}

// Cancel stops a queued or running job for the tenant. The repository
// enforces the status guard; jobs already in a terminal state surface a
// conflict naming their current status.
func (s *PipelineService) Cancel(ctx context.Context, tenantID, id string) (*model.PipelineJob, error) {
	job, err := s.jobs.Cancel(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, core.JobEventCancelled, job)

	if s.logger != nil {
		s.logger.DebugContext(ctx, "pipeline job cancelled",
			"id", job.ID,
			"tenant_id", job.TenantID,
		)
	}

	return job, nil
}

// MarkStarted records that a worker picked the job up. It reports false when
// the job was no longer queued, which the worker treats as "someone else won".
func (s *PipelineService) MarkStarted(ctx context.Context, id string) (bool, error) {
	ok, err := s.jobs.Start(ctx, id)
	if err != nil {
		return false, fmt.Errorf("start pipeline job: %w", err)
	}
	return ok, nil
}

// MarkCompleted records a successful run and ingests any sweep results the
// worker reported. Results are only written when the completion transition
// actually applied, so a cancel that raced the worker discards them. Sweep
// result rows may only reference trading-sweep jobs; reports that attach
// them to any other job type are rejected.
func (s *PipelineService) MarkCompleted(ctx context.Context, id string, result, metrics json.RawMessage, sweep []model.SweepResultInput) (bool, error) {
	job, err := s.jobs.Complete(ctx, id, result, metrics)
	if err != nil {
		return false, fmt.Errorf("complete pipeline job: %w", err)
	}
	if job == nil {
		return false, nil
	}

	if len(sweep) > 0 {
		if job.JobType != model.JobTypeTradingSweep {
			return true, apperrors.TypeMismatch("sweep results are only accepted for trading-sweep jobs")
		}
		if err := s.results.InsertBatch(ctx, id, sweep); err != nil {
			return true, fmt.Errorf("insert sweep results: %w", err)
		}
	}

	if s.logger != nil {
		s.logger.DebugContext(ctx, "pipeline job completed",
			"id", id,
			"result_count", len(sweep),
		)
	}

	return true, nil
}

// MarkFailed records a worker-reported failure with its error message.
func (s *PipelineService) MarkFailed(ctx context.Context, id, errorMessage string) (bool, error) {
	ok, err := s.jobs.Fail(ctx, id, errorMessage)
	if err != nil {
		return false, fmt.Errorf("fail pipeline job: %w", err)
	}
	return ok, nil
}

func (s *PipelineService) publish(ctx context.Context, eventType string, job *model.PipelineJob) {
	if s.publisher == nil {
		return
	}
	event := core.JobEvent{
		Type:       eventType,
		JobID:      job.ID,
		TenantID:   job.TenantID,
		JobType:    job.JobType,
		OccurredAt: job.CreatedAt,
	}
	if job.CompletedAt != nil {
		event.OccurredAt = *job.CompletedAt
	}
	if err := s.publisher.Publish(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "publish job event failed",
			"type", eventType,
			"job_id", job.ID,
			"error", err,
		)
	}
}

// normalizePagination applies the default page size and clamps oversized or
// negative values.
func normalizePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
