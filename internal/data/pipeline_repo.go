package data

import (
	"database/sql"
	"log/slog"
)

// RepoConfig holds configuration options for the data repositories.
type RepoConfig struct {
	Logger       *slog.Logger
	TimeProvider TimeProvider
}

// PipelineRepo provides database operations for pipeline job management.
// Every tenant-facing query is scoped by tenant_id; the worker transition
// methods operate by job id because the worker mutates rows out-of-band.
type PipelineRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
	logger       *slog.Logger
}

// NewPipelineRepo creates a new PipelineRepo instance with the given database connection and configuration.
func NewPipelineRepo(db *sql.DB, cfg RepoConfig) *PipelineRepo {
	tp := cfg.TimeProvider
	if tp == nil {
		tp = &RealTimeProvider{}
	}

	return &PipelineRepo{
		DB:           db,
		timeProvider: tp,
		logger:       cfg.Logger,
	}
}

const jobColumns = `
  id,
  tenant_id,
  job_type,
  status,
  parameters,
  result,
  metrics,
  error_message,
  created_at,
  started_at,
  completed_at
`
