// Package mocks provides mock implementations for testing the meridian pipeline system.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockPipelineJobRepository(ctrl)
//	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(job, nil)
package mocks

// Generate mock for PipelineJobRepository interface from internal/core package.
// This creates MockPipelineJobRepository with methods for all PipelineJobRepository interface methods:
// Create, GetByID, List, Cancel, Start, Complete, Fail
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=pipeline_job_repository_mock.go github.com/meridianbi/meridian-api/internal/core PipelineJobRepository

// Generate mock for SweepResultRepository interface from internal/core package.
// This creates MockSweepResultRepository with methods for all SweepResultRepository interface methods:
// ListByJob, PreviewByJobIDs, InsertBatch
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=sweep_result_repository_mock.go github.com/meridianbi/meridian-api/internal/core SweepResultRepository

// Generate mock for DashboardRepository interface from internal/core package.
// This creates MockDashboardRepository with methods for all DashboardRepository interface methods:
// FinancialSummary, SalesSummary, MetricsSummary
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=dashboard_repository_mock.go github.com/meridianbi/meridian-api/internal/core DashboardRepository

// Generate mock for TenantRepository interface from internal/core package.
// This creates MockTenantRepository with methods for all TenantRepository interface methods:
// GetByID
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=tenant_repository_mock.go github.com/meridianbi/meridian-api/internal/core TenantRepository

// Generate mock for EventPublisher interface from internal/core package.
// This creates MockEventPublisher with methods for all EventPublisher interface methods:
// Publish
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=event_publisher_mock.go github.com/meridianbi/meridian-api/internal/core EventPublisher
