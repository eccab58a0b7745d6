package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/meridianbi/meridian-api/internal/data/pgxutil"
	apperrors "github.com/meridianbi/meridian-api/internal/errors"
	"github.com/meridianbi/meridian-api/internal/domain/model"
)

// Create inserts a new queued job for the tenant and notifies listening workers.
func (r *PipelineRepo) Create(
	ctx context.Context,
	tenantID string,
	req *model.CreateJobRequest,
) (*model.PipelineJob, error) {
	if req == nil {
		return nil, errors.New("create job request is required")
	}
	if tenantID == "" {
		return nil, errors.New("tenant id is required")
	}

	if validateErr := req.Validate(); validateErr != nil {
		return nil, validateErr
	}

	params, err := req.Parameters()
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	createdAt := r.timeProvider.Now().UTC()

	var job *model.PipelineJob
	if txErr := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{
		Fn: func(tx pgx.Tx) error {
			rows, qerr := tx.Query(ctx, `
			  INSERT INTO pipeline_jobs(id, tenant_id, job_type, status, parameters, created_at)
			  VALUES ($1,$2,$3,'queued',$4,$5)
			  RETURNING `+jobColumns,
				id, tenantID, req.JobType, params, createdAt)
			if qerr != nil {
				return fmt.Errorf("insert job: %w", qerr)
			}
			j, collectErr := collectJobFromRows(rows)
			rows.Close()
			if collectErr != nil {
				return fmt.Errorf("collect job: %w", collectErr)
			}

			channel := "pipeline_job_created_" + string(req.JobType)
			if _, execErr := tx.Exec(ctx, `SELECT pg_notify($1::text, $2::text)`, channel, j.ID); execErr != nil {
				return fmt.Errorf("send job notification: %w", execErr)
			}

			job = j
			return nil
		},
	}); txErr != nil {
		return nil, txErr
	}

	return job, nil
}

// GetByID retrieves a job scoped to the owning tenant. A job belonging to
// another tenant is indistinguishable from a nonexistent one.
func (r *PipelineRepo) GetByID(ctx context.Context, tenantID, id string) (*model.PipelineJob, error) {
	var job *model.PipelineJob
	err := pgxutil.WithPgxConn(ctx, r.DB, func(pgxConn *pgx.Conn) error {
		rows, qerr := pgxConn.Query(ctx, `
			SELECT `+jobColumns+`
			FROM pipeline_jobs
			WHERE id = $1 AND tenant_id = $2
		`, id, tenantID)
		if qerr != nil {
			return qerr
		}
		defer rows.Close()
		job, qerr = collectJobFromRows(rows)
		return qerr
	})

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("job not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// Cancel transitions a queued or running job to failed on behalf of the user.
// The status guard is part of the UPDATE so a cancel racing another cancel or
// a worker completion resolves to exactly one winner.
func (r *PipelineRepo) Cancel(ctx context.Context, tenantID, id string) (*model.PipelineJob, error) {
	now := r.timeProvider.Now().UTC()

	row := r.DB.QueryRowContext(ctx, `
		UPDATE pipeline_jobs
		SET status = 'failed',
		    error_message = $3,
		    completed_at = $4
		WHERE id = $1 AND tenant_id = $2 AND status IN ('queued', 'running')
		RETURNING `+jobColumns,
		id, tenantID, model.CancelledByUserMessage, now)

	job, err := scanJobFromRow(row)
	if err == nil {
		return job, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cancel job: %w", err)
	}

	// Zero rows: the job is either absent for this tenant or already terminal.
	current, getErr := r.GetByID(ctx, tenantID, id)
	if getErr != nil {
		return nil, getErr
	}
	return nil, apperrors.Conflictf("cannot cancel job with status: %s", current.Status)
}

// Start marks a queued job as running. It is called by the worker when it
// picks the job up; false means the job was not in the queued state.
func (r *PipelineRepo) Start(ctx context.Context, id string) (bool, error) {
	now := r.timeProvider.Now().UTC()

	res, err := r.DB.ExecContext(ctx, `
		UPDATE pipeline_jobs
		SET status = 'running',
		    started_at = $2
		WHERE id = $1 AND status = 'queued'
	`, id, now)
	if err != nil {
		return false, fmt.Errorf("start job: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("start rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// Complete marks a running job as completed and records the worker's output
// blobs. It returns the updated row so callers can act on the job's type; a
// nil job means the job was not running, typically because a cancel won.
func (r *PipelineRepo) Complete(ctx context.Context, id string, result, metrics json.RawMessage) (*model.PipelineJob, error) {
	now := r.timeProvider.Now().UTC()

	if len(result) == 0 {
		result = json.RawMessage(`{}`)
	}
	if len(metrics) == 0 {
		metrics = json.RawMessage(`{}`)
	}

	row := r.DB.QueryRowContext(ctx, `
		UPDATE pipeline_jobs
		SET status = 'completed',
		    result = $2,
		    metrics = $3,
		    completed_at = $4,
		    error_message = NULL
		WHERE id = $1 AND status = 'running'
		RETURNING `+jobColumns,
		id, result, metrics, now)

	job, err := scanJobFromRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("complete job: %w", err)
	}
	return job, nil
}

// Fail marks a queued or running job as failed with the given error message.
func (r *PipelineRepo) Fail(ctx context.Context, id, errMsg string) (bool, error) {
	now := r.timeProvider.Now().UTC()

	res, err := r.DB.ExecContext(ctx, `
		UPDATE pipeline_jobs
		SET status = 'failed',
		    error_message = $2,
		    completed_at = $3
		WHERE id = $1 AND status IN ('queued', 'running')
	`, id, errMsg, now)
	if err != nil {
		return false, fmt.Errorf("fail job: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("fail rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// collectJobFromRows collects a single job from pgx rows.
func collectJobFromRows(rows pgx.Rows) (*model.PipelineJob, error) {
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, pgx.ErrNoRows
	}

	job, err := scanJobFromRow(rows)
	if err != nil {
		return nil, err
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, rowsErr
	}

	return job, nil
}

type jobRowScanner interface {
	Scan(dest ...any) error
}

type jobRowData struct {
	parameters, result, metrics []byte
	errorMessage                sql.NullString
	startedAt, completedAt      sql.NullTime
}

func (d *jobRowData) scanInto(scanner jobRowScanner, job *model.PipelineJob) error {
	return scanner.Scan(
		&job.ID,
		&job.TenantID,
		&job.JobType,
		&job.Status,
		&d.parameters,
		&d.result,
		&d.metrics,
		&d.errorMessage,
		&job.CreatedAt,
		&d.startedAt,
		&d.completedAt,
	)
}

func (d *jobRowData) apply(job *model.PipelineJob) {
	job.Parameters = cloneJSON(d.parameters)
	job.Result = cloneNullableJSON(d.result)
	job.Metrics = cloneNullableJSON(d.metrics)
	job.ErrorMessage = cloneNullableString(d.errorMessage)
	job.StartedAt = cloneNullableTime(d.startedAt)
	job.CompletedAt = cloneNullableTime(d.completedAt)
}

func scanJobFromRow(scanner jobRowScanner) (*model.PipelineJob, error) {
	job := &model.PipelineJob{}
	var data jobRowData
	if err := data.scanInto(scanner, job); err != nil {
		return nil, err
	}

	data.apply(job)
	return job, nil
}

func cloneJSON(raw []byte) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage(`{}`)
	}
	return append(json.RawMessage(nil), raw...)
}

func cloneNullableJSON(raw []byte) json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	return append(json.RawMessage(nil), raw...)
}

func cloneNullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func cloneNullableTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}
