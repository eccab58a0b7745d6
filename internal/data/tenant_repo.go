package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/meridianbi/meridian-api/internal/domain/model"
	apperrors "github.com/meridianbi/meridian-api/internal/errors"
)

// TenantRepo looks up tenants by their own id. This is the one query path
// that is not scoped by a caller's tenant; it serves provisioning checks.
type TenantRepo struct {
	DB     *sql.DB
	logger *slog.Logger
}

// NewTenantRepo creates a new TenantRepo instance.
func NewTenantRepo(db *sql.DB, cfg RepoConfig) *TenantRepo {
	return &TenantRepo{
		DB:     db,
		logger: cfg.Logger,
	}
}

// GetByID retrieves a tenant by id.
func (r *TenantRepo) GetByID(ctx context.Context, id string) (*model.Tenant, error) {
	var t model.Tenant
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, slug, created_at
		FROM tenants
		WHERE id = $1
	`, id).Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("tenant not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return &t, nil
}
