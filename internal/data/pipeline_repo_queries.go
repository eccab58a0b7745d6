package data

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/meridianbi/meridian-api/internal/data/pgxutil"
	"github.com/meridianbi/meridian-api/internal/domain/model"
)

const (
	defaultListLimit = 50
	maxListLimit     = 1000
)

// jobFilterQueryBuilder accumulates tenant-scoped filter conditions with
// positional placeholders.
type jobFilterQueryBuilder struct {
	query  string
	args   []any
	argIdx int
}

func (b *jobFilterQueryBuilder) addFilter(column string, value any) {
	b.query += fmt.Sprintf(" AND %s = $%d", column, b.argIdx)
	b.args = append(b.args, value)
	b.argIdx++
}

// buildJobListQuery constructs the filtered job query for a tenant.
// The tenant filter is always the first condition; ordering by created_at
// descending is load-bearing for the recent-jobs view.
func buildJobListQuery(tenantID string, filter model.JobListFilter) (string, []any) {
	builder := &jobFilterQueryBuilder{
		query: `
		SELECT ` + jobColumns + `
		FROM pipeline_jobs
		WHERE 1=1`,
		args:   []any{},
		argIdx: 1,
	}

	builder.addFilter("tenant_id", tenantID)
	if filter.Status != nil {
		builder.addFilter("status", string(*filter.Status))
	}
	if filter.JobType != nil {
		builder.addFilter("job_type", string(*filter.JobType))
	}

	builder.query += `
		ORDER BY created_at DESC, id DESC`

	return builder.query, builder.args
}

// buildJobCountQuery constructs the matching total-count query for pagination.
func buildJobCountQuery(tenantID string, filter model.JobListFilter) (string, []any) {
	builder := &jobFilterQueryBuilder{
		query: `
		SELECT COUNT(*)
		FROM pipeline_jobs
		WHERE 1=1`,
		args:   []any{},
		argIdx: 1,
	}

	builder.addFilter("tenant_id", tenantID)
	if filter.Status != nil {
		builder.addFilter("status", string(*filter.Status))
	}
	if filter.JobType != nil {
		builder.addFilter("job_type", string(*filter.JobType))
	}

	return builder.query, builder.args
}

// List returns one page of the tenant's jobs plus the total count matching
// the filter.
func (r *PipelineRepo) List(
	ctx context.Context,
	tenantID string,
	filter model.JobListFilter,
) ([]*model.PipelineJob, int, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := max(filter.Offset, 0)

	countQuery, countArgs := buildJobCountQuery(tenantID, filter)
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	query, args := buildJobListQuery(tenantID, filter)
	argIdx := len(args) + 1
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	var result []*model.PipelineJob
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("query jobs: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			job, scanErr := scanJobFromRow(rows)
			if scanErr != nil {
				return fmt.Errorf("scan job: %w", scanErr)
			}
			result = append(result, job)
		}
		return rows.Err()
	}); err != nil {
		return nil, 0, err
	}

	return result, total, nil
}
