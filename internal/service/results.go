package service

import (
	"context"

	"github.com/meridianbi/meridian-api/internal/domain/model"
	apperrors "github.com/meridianbi/meridian-api/internal/errors"
)

// Results pages default to this size when the caller does not supply a limit.
// There is deliberately no upper cap; sweeps are bounded by the worker.
const defaultResultsLimit = 100

// ResultsQuery carries the caller's sorting and paging choices for a job's
// sweep results. Zero values select the defaults.
type ResultsQuery struct {
	SortBy string
	Order  string
	Limit  int
}

// ResultsPage is the aggregated response for a job's sweep results.
// Statistics are computed over the returned page only and are null when the
// page is empty.
type ResultsPage struct {
	JobID      string                     `json:"job_id"`
	JobStatus  model.JobStatus            `json:"job_status"`
	Results    []model.TradingSweepResult `json:"results"`
	Statistics *model.SweepStatistics     `json:"statistics"`
	SortBy     string                     `json:"sort_by"`
	Order      string                     `json:"order"`
	Limit      int                        `json:"limit"`
}

// FetchResults returns a sorted page of a job's sweep results with summary
// statistics. Only trading-sweep jobs have sweep results; other job types are
// rejected as a type mismatch. Unrecognized sort fields silently fall back to
// score, and any order other than asc means descending.
func (s *PipelineService) FetchResults(ctx context.Context, tenantID, jobID string, query ResultsQuery) (*ResultsPage, error) {
	job, err := s.jobs.GetByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}

	if job.JobType != model.JobTypeTradingSweep {
		return nil, apperrors.TypeMismatchf("results are only available for %s jobs, this job is %s",
			model.JobTypeTradingSweep, job.JobType)
	}

	sortColumn := model.NormalizeSweepSort(query.SortBy)
	order := model.NormalizeSortOrder(query.Order)
	limit := query.Limit
	if limit <= 0 {
		limit = defaultResultsLimit
	}

	results, err := s.results.ListByJob(ctx, job.ID, sortColumn, order, limit)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.DebugContext(ctx, "fetched sweep results",
			"job_id", job.ID,
			"count", len(results),
			"sort_by", sortColumn,
			"order", order,
		)
	}

	return &ResultsPage{
		JobID:      job.ID,
		JobStatus:  job.Status,
		Results:    results,
		Statistics: model.ComputeSweepStatistics(results),
		SortBy:     sortColumn,
		Order:      order,
		Limit:      limit,
	}, nil
}
