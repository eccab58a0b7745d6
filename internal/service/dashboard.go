package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/meridianbi/meridian-api/internal/core"
	"github.com/meridianbi/meridian-api/internal/domain/model"
)

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	Repo   core.DashboardRepository // Required: dashboard repository
	Logger *slog.Logger             // Optional: structured logger
}

// DashboardService assembles the tenant business dashboard from three
// independent roll-ups run concurrently. The response is all-or-nothing;
// there are no partially filled sections.
type DashboardService struct {
	repo   core.DashboardRepository
	logger *slog.Logger
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(opts DashboardServiceOptions) (*DashboardService, error) {
	if opts.Repo == nil {
		return nil, errors.New("DashboardRepository is required")
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "dashboard_service")
	}

	return &DashboardService{
		repo:   opts.Repo,
		logger: logger,
	}, nil
}

// MustNewDashboardService constructs a new DashboardService and panics on error.
func MustNewDashboardService(opts DashboardServiceOptions) *DashboardService {
	svc, err := NewDashboardService(opts)
	if err != nil {
		panic(fmt.Sprintf("failed to create DashboardService: %v", err))
	}
	return svc
}

// Overview runs the financial, sales and metrics roll-ups for the tenant.
// The first roll-up error cancels the others and fails the whole request.
func (s *DashboardService) Overview(ctx context.Context, tenantID string) (*model.DashboardResponse, error) {
	response := &model.DashboardResponse{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		financial, err := s.repo.FinancialSummary(gctx, tenantID)
		if err != nil {
			return fmt.Errorf("financial summary: %w", err)
		}
		response.Financial = *financial
		return nil
	})

	g.Go(func() error {
		sales, err := s.repo.SalesSummary(gctx, tenantID)
		if err != nil {
			return fmt.Errorf("sales summary: %w", err)
		}
		response.Sales = *sales
		return nil
	})

	g.Go(func() error {
		metrics, err := s.repo.MetricsSummary(gctx, tenantID)
		if err != nil {
			return fmt.Errorf("metrics summary: %w", err)
		}
		response.Metrics = metrics
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.DebugContext(ctx, "dashboard assembled",
			"tenant_id", tenantID,
			"metric_names", len(response.Metrics),
		)
	}

	return response, nil
}
