// Package model defines the core data types and structures used throughout the meridian pipeline system.
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// JobType represents the type of pipeline job to be executed.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type JobType string

// JobStatus represents the current status of a pipeline job.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type JobStatus string

const (
	// JobTypeTradingSweep represents a trading-strategy parameter sweep job.
	JobTypeTradingSweep JobType = "trading-sweep"
	// JobTypeDocumentProcessing represents a document processing job.
	JobTypeDocumentProcessing JobType = "document-processing"
	// JobTypeDataETL represents a data extract/transform/load job.
	JobTypeDataETL JobType = "data-etl"
	// JobTypeMLInference represents a machine-learning inference job.
	JobTypeMLInference JobType = "ml-inference"

	// JobStatusQueued indicates a job is waiting for a worker to pick it up.
	JobStatusQueued JobStatus = "queued"
	// JobStatusRunning indicates a job is currently being processed.
	JobStatusRunning JobStatus = "running"
	// JobStatusCompleted indicates a job has finished successfully.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates a job has failed or was cancelled.
	JobStatusFailed JobStatus = "failed"
)

// CancelledByUserMessage is the error message recorded when a user cancels a job.
// Cancellation maps to the failed status; there is no separate stored cancelled state.
const CancelledByUserMessage = "Job cancelled by user"

// UnmarshalText implements encoding.TextUnmarshaler for JobType to allow env and query parsing.
func (t *JobType) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	jt := JobType(v)
	if jt.Valid() {
		*t = jt
		return nil
	}
	return fmt.Errorf("invalid JobType: %q", v)
}

// Valid returns true if the JobType is valid.
func (t JobType) Valid() bool {
	return t == JobTypeTradingSweep || t == JobTypeDocumentProcessing ||
		t == JobTypeDataETL || t == JobTypeMLInference
}

// UnmarshalText implements encoding.TextUnmarshaler for JobStatus.
func (s *JobStatus) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	js := JobStatus(v)
	if js.Valid() {
		*s = js
		return nil
	}
	return fmt.Errorf("invalid JobStatus: %q", v)
}

// Valid returns true if the JobStatus is valid.
func (s JobStatus) Valid() bool {
	return s == JobStatusQueued || s == JobStatusRunning || s == JobStatusCompleted ||
		s == JobStatusFailed
}

// Cancellable returns true if a job in this status may still be cancelled.
func (s JobStatus) Cancellable() bool {
	return s == JobStatusQueued || s == JobStatusRunning
}

// Terminal returns true if the status is a terminal state.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// ParseJobStatus case-normalizes a status filter value against the stored enumeration.
func ParseJobStatus(v string) (JobStatus, bool) {
	s := JobStatus(strings.ToLower(strings.TrimSpace(v)))
	return s, s.Valid()
}

// PipelineJob represents a pipeline job with all its metadata and status information.
// TenantID is immutable after creation; every read and write is scoped by it.
type PipelineJob struct {
	ID           string          `json:"id"                      db:"id"`
	TenantID     string          `json:"tenant_id"               db:"tenant_id"`
	JobType      JobType         `json:"job_type"                db:"job_type"`
	Status       JobStatus       `json:"status"                  db:"status"`
	Parameters   json.RawMessage `json:"parameters"              db:"parameters"`
	Result       json.RawMessage `json:"result,omitempty"        db:"result"`
	Metrics      json.RawMessage `json:"metrics,omitempty"       db:"metrics"`
	ErrorMessage *string         `json:"error_message,omitempty" db:"error_message"`
	CreatedAt    time.Time       `json:"created_at"              db:"created_at"`
	StartedAt    *time.Time      `json:"started_at,omitempty"    db:"started_at"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"  db:"completed_at"`
}

// DurationSeconds returns the whole-second job duration, floored.
// It is nil until both started_at and completed_at are set.
func (j *PipelineJob) DurationSeconds() *int64 {
	if j.StartedAt == nil || j.CompletedAt == nil {
		return nil
	}
	secs := int64(j.CompletedAt.Sub(*j.StartedAt).Seconds())
	return &secs
}

// JobWithResults is a job annotated with a bounded preview of its sweep results.
type JobWithResults struct {
	PipelineJob
	Results         []TradingSweepResult `json:"results"`
	DurationSeconds *int64               `json:"duration_seconds"`
}

// CreateJobRequest represents a request to create a new pipeline job.
// An optional ticker is merged into the job parameters.
type CreateJobRequest struct {
	JobType JobType         `json:"job_type"`
	Ticker  string          `json:"ticker,omitempty"`
	Config  json.RawMessage `json:"config,omitempty"`
}

// Validate validates the CreateJobRequest fields, including the
// job-type-specific shape of the config blob.
func (r *CreateJobRequest) Validate() error {
	if !r.JobType.Valid() {
		return errors.New("job_type must be one of: trading-sweep, document-processing, data-etl, ml-inference")
	}
	if err := validateParameters(r.JobType, r.Config); err != nil {
		return err
	}
	return nil
}

// Parameters merges the optional ticker into the config blob and returns
// the parameters to persist with the job.
func (r *CreateJobRequest) Parameters() (json.RawMessage, error) {
	params := map[string]any{}
	if len(r.Config) > 0 {
		if err := json.Unmarshal(r.Config, &params); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}
	if r.Ticker != "" {
		params["ticker"] = r.Ticker
	}
	out, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encode parameters: %w", err)
	}
	return out, nil
}

// TradingSweepConfig is the config shape accepted for trading-sweep jobs.
type TradingSweepConfig struct {
	Ticker       string `json:"ticker,omitempty"`
	StrategyType string `json:"strategy_type,omitempty"`
	FastPeriods  []int  `json:"fast_periods,omitempty"`
	SlowPeriods  []int  `json:"slow_periods,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
}

// DocumentProcessingConfig is the config shape accepted for document-processing jobs.
type DocumentProcessingConfig struct {
	DocumentURL string `json:"document_url,omitempty"`
	Extract     string `json:"extract,omitempty"`
	Language    string `json:"language,omitempty"`
}

// DataETLConfig is the config shape accepted for data-etl jobs.
type DataETLConfig struct {
	Source      string `json:"source,omitempty"`
	Destination string `json:"destination,omitempty"`
	FullRefresh bool   `json:"full_refresh,omitempty"`
}

// MLInferenceConfig is the config shape accepted for ml-inference jobs.
type MLInferenceConfig struct {
	ModelName string          `json:"model_name,omitempty"`
	Input     json.RawMessage `json:"input,omitempty"`
	BatchSize int             `json:"batch_size,omitempty"`
}

// validateParameters rejects config blobs whose shape does not match the job type.
// Unknown fields are an error so malformed requests fail at the boundary
// instead of defaulting silently inside aggregation logic.
func validateParameters(jobType JobType, config json.RawMessage) error {
	if len(config) == 0 {
		return nil
	}

	var target any
	switch jobType {
	case JobTypeTradingSweep:
		target = &TradingSweepConfig{}
	case JobTypeDocumentProcessing:
		target = &DocumentProcessingConfig{}
	case JobTypeDataETL:
		target = &DataETLConfig{}
	case JobTypeMLInference:
		target = &MLInferenceConfig{}
	default:
		return fmt.Errorf("invalid JobType: %q", jobType)
	}

	dec := json.NewDecoder(bytes.NewReader(config))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("config does not match the %s schema: %w", jobType, err)
	}
	return nil
}

// JobListFilter narrows a tenant's job listing.
type JobListFilter struct {
	Status  *JobStatus
	JobType *JobType
	Limit   int
	Offset  int
}

// JobPage is one page of a tenant's jobs plus the total count matching the
// filter. Limit and Offset are the normalized values actually applied.
type JobPage struct {
	Jobs   []JobWithResults `json:"jobs"`
	Total  int              `json:"total"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// HasMore reports whether rows beyond this page match the filter.
func (p *JobPage) HasMore() bool {
	return p.Offset+len(p.Jobs) < p.Total
}
