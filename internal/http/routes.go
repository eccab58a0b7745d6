package httpx

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/meridianbi/meridian-api/internal/core"
	"github.com/meridianbi/meridian-api/internal/ports"
	"github.com/meridianbi/meridian-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Pipelines *service.PipelineService
	Dashboard *service.DashboardService
	Tenants   core.TenantRepository
	Sessions  ports.SessionStore
	DB        *sql.DB // Health ping target

	// Configuration
	SessionCookieName string
	WorkerSecret      string
	BaseURL           string
	Logger            *slog.Logger // Logger for HTTP errors (optional)
}

// NewRouter creates and configures the HTTP router. Tenant-scoped routes sit
// behind the session middleware; the internal worker surface sits behind the
// shared-secret middleware.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	pipelineHandlers := &PipelineHandlers{Svc: services.Pipelines, BaseURL: services.BaseURL}
	dashboardHandlers := &DashboardHandlers{Svc: services.Dashboard}
	healthHandlers := &HealthHandlers{DB: services.DB}
	workerHandlers := &WorkerHandlers{Svc: services.Pipelines, Tenants: services.Tenants}

	mux.Handle("GET /api/health", http.HandlerFunc(healthHandlers.Health))
	mux.Handle("HEAD /api/health", http.HandlerFunc(healthHandlers.Health))

	registerPipelineRoutes(mux, pipelineHandlers, services)
	registerDashboardRoutes(mux, dashboardHandlers, services)
	registerWorkerRoutes(mux, workerHandlers, services)

	return mux
}

func registerPipelineRoutes(mux *http.ServeMux, h *PipelineHandlers, services RouterServices) {
	wrap := RequireSession(services.Sessions, services.SessionCookieName)
	mux.Handle("GET /api/pipelines", wrap(http.HandlerFunc(h.List)))
	mux.Handle("POST /api/pipelines", wrap(http.HandlerFunc(h.Create)))
	mux.Handle("GET /api/pipelines/{id}", wrap(http.HandlerFunc(h.Get)))
	mux.Handle("DELETE /api/pipelines/{id}", wrap(http.HandlerFunc(h.Cancel)))
	mux.Handle("GET /api/pipelines/{id}/results", wrap(http.HandlerFunc(h.Results)))
}

func registerDashboardRoutes(mux *http.ServeMux, h *DashboardHandlers, services RouterServices) {
	wrap := RequireSession(services.Sessions, services.SessionCookieName)
	mux.Handle("GET /api/dashboards", wrap(http.HandlerFunc(h.Overview)))
}

func registerWorkerRoutes(mux *http.ServeMux, h *WorkerHandlers, services RouterServices) {
	wrap := RequireWorkerSecret(services.WorkerSecret)
	mux.Handle("POST /internal/jobs/{id}/start", wrap(http.HandlerFunc(h.Start)))
	mux.Handle("POST /internal/jobs/{id}/complete", wrap(http.HandlerFunc(h.Complete)))
	mux.Handle("POST /internal/jobs/{id}/fail", wrap(http.HandlerFunc(h.Fail)))
	mux.Handle("GET /internal/tenants/{id}", wrap(http.HandlerFunc(h.GetTenant)))
}
