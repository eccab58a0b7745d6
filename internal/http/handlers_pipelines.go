// Package httpx provides HTTP handlers and utilities for the meridian pipeline API.
package httpx

import (
	"errors"
	"net/http"

	"github.com/meridianbi/meridian-api/internal/domain/model"
	apperrors "github.com/meridianbi/meridian-api/internal/errors"
	"github.com/meridianbi/meridian-api/internal/service"
)

// PipelineHandlers provides HTTP handlers for pipeline job operations.
// The tenant is always resolved from the session in the request context,
// never from caller-supplied input.
type PipelineHandlers struct {
	Svc *service.PipelineService
	// BaseURL is used to build absolute worker webhook URLs in create responses.
	BaseURL string
}

// listJobsResponse is the paged listing payload.
type listJobsResponse struct {
	Jobs      []model.JobWithResults `json:"jobs"`
	TotalJobs int                    `json:"totalJobs"`
	Limit     int                    `json:"limit"`
	Offset    int                    `json:"offset"`
	HasMore   bool                   `json:"hasMore"`
}

// List handles HTTP requests to list the tenant's jobs, newest first.
// Filter and paging params are parsed tolerantly; invalid values fall back
// to their defaults rather than erroring.
func (h *PipelineHandlers) List(w http.ResponseWriter, r *http.Request) {
	tenantID := TenantIDFromContext(r.Context())

	filter := model.JobListFilter{
		Limit:  parseIntQuery(r, "limit", 0),
		Offset: parseIntQuery(r, "offset", 0),
	}
	if v := r.URL.Query().Get("status"); v != "" {
		if status, ok := model.ParseJobStatus(v); ok {
			filter.Status = &status
		}
	}
	if v := r.URL.Query().Get("job_type"); v != "" {
		var jobType model.JobType
		if err := jobType.UnmarshalText([]byte(v)); err == nil {
			filter.JobType = &jobType
		}
	}

	page, err := h.Svc.List(r.Context(), tenantID, filter)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, listJobsResponse{
		Jobs:      page.Jobs,
		TotalJobs: page.Total,
		Limit:     page.Limit,
		Offset:    page.Offset,
		HasMore:   page.HasMore(),
	})
}

// createJobResponse wraps the created job with worker-trigger guidance.
type createJobResponse struct {
	Job                *model.PipelineJob `json:"job"`
	Message            string             `json:"message"`
	WebhookTriggerNote string             `json:"webhook_trigger_note"`
	WebhookURL         string             `json:"webhook_url"`
}

// Create handles HTTP requests to queue a new pipeline job.
func (h *PipelineHandlers) Create(w http.ResponseWriter, r *http.Request) {
	tenantID := TenantIDFromContext(r.Context())

	var req model.CreateJobRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteAppError(w, apperrors.Validation(err.Error()))
		return
	}

	job, err := h.Svc.Create(r.Context(), tenantID, &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, createJobResponse{
		Job:                job,
		Message:            "Pipeline job queued",
		WebhookTriggerNote: "Processing begins when the pipeline worker reports the job started.",
		WebhookURL:         h.BaseURL + "/internal/jobs/" + job.ID + "/start",
	})
}

// Get handles HTTP requests for a single job with its results and duration.
func (h *PipelineHandlers) Get(w http.ResponseWriter, r *http.Request) {
	tenantID := TenantIDFromContext(r.Context())
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	job, err := h.Svc.Get(r.Context(), tenantID, jobID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// Cancel handles HTTP requests to cancel a queued or running job.
func (h *PipelineHandlers) Cancel(w http.ResponseWriter, r *http.Request) {
	tenantID := TenantIDFromContext(r.Context())
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	job, err := h.Svc.Cancel(r.Context(), tenantID, jobID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"job":     job,
		"message": "Job cancelled",
	})
}

// resultsMetadata echoes the normalized sorting and paging the query applied.
type resultsMetadata struct {
	SortBy string `json:"sort_by"`
	Order  string `json:"order"`
	Limit  int    `json:"limit"`
}

// resultsResponse is the sweep results payload for one job.
type resultsResponse struct {
	JobID      string                     `json:"job_id"`
	JobStatus  model.JobStatus            `json:"job_status"`
	Results    []model.TradingSweepResult `json:"results"`
	Statistics *model.SweepStatistics     `json:"statistics"`
	Metadata   resultsMetadata            `json:"metadata"`
}

// Results handles HTTP requests for a trading-sweep job's sorted results page.
func (h *PipelineHandlers) Results(w http.ResponseWriter, r *http.Request) {
	tenantID := TenantIDFromContext(r.Context())
	jobID := r.PathValue("id")
	if jobID == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")},
		)
		return
	}

	query := service.ResultsQuery{
		SortBy: r.URL.Query().Get("sort_by"),
		Order:  r.URL.Query().Get("order"),
		Limit:  parseIntQuery(r, "limit", 0),
	}

	page, err := h.Svc.FetchResults(r.Context(), tenantID, jobID, query)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, resultsResponse{
		JobID:      page.JobID,
		JobStatus:  page.JobStatus,
		Results:    page.Results,
		Statistics: page.Statistics,
		Metadata: resultsMetadata{
			SortBy: page.SortBy,
			Order:  page.Order,
			Limit:  page.Limit,
		},
	})
}
