package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/meridianbi/meridian-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// PipelineJobRepository defines the interface for pipeline job data operations.
// The tenant-scoped methods take the caller's resolved tenant id; the
// transition methods (Start/Complete/Fail) are the worker's out-of-band path
// and operate by job id with a status guard.
type PipelineJobRepository interface {
	Create(ctx context.Context, tenantID string, req *model.CreateJobRequest) (*model.PipelineJob, error)
	GetByID(ctx context.Context, tenantID, id string) (*model.PipelineJob, error)
	List(ctx context.Context, tenantID string, filter model.JobListFilter) ([]*model.PipelineJob, int, error)
	Cancel(ctx context.Context, tenantID, id string) (*model.PipelineJob, error)
	Start(ctx context.Context, id string) (bool, error)
	Complete(ctx context.Context, id string, result, metrics json.RawMessage) (*model.PipelineJob, error)
	Fail(ctx context.Context, id, errMsg string) (bool, error)
}

// SweepResultRepository defines the interface for trading sweep result data operations.
type SweepResultRepository interface {
	ListByJob(ctx context.Context, jobID string, sortColumn, order string, limit int) ([]model.TradingSweepResult, error)
	PreviewByJobIDs(ctx context.Context, jobIDs []string, perJob int) (map[string][]model.TradingSweepResult, error)
	InsertBatch(ctx context.Context, jobID string, inputs []model.SweepResultInput) error
}

// DashboardRepository defines the interface for the tenant dashboard roll-up queries.
type DashboardRepository interface {
	FinancialSummary(ctx context.Context, tenantID string) (*model.FinancialSummary, error)
	SalesSummary(ctx context.Context, tenantID string) (*model.SalesSummary, error)
	MetricsSummary(ctx context.Context, tenantID string) ([]model.MetricSummary, error)
}

// TenantRepository defines the interface for tenant lookups by their own id.
type TenantRepository interface {
	GetByID(ctx context.Context, id string) (*model.Tenant, error)
}

// JobEvent is an outbound notification about a job lifecycle change.
// Delivery is at-most-once; consumers must not be required for correctness.
type JobEvent struct {
	Type       string        `json:"type"`
	JobID      string        `json:"job_id"`
	TenantID   string        `json:"tenant_id"`
	JobType    model.JobType `json:"job_type"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// Job event types published on create and cancel.
const (
	JobEventCreated   = "job.created"
	JobEventCancelled = "job.cancelled"
)

// EventPublisher publishes job lifecycle events to the realtime channel.
type EventPublisher interface {
	Publish(ctx context.Context, event JobEvent) error
}
