package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/meridianbi/meridian-api/config"
	"github.com/meridianbi/meridian-api/internal/core"
	httpx "github.com/meridianbi/meridian-api/internal/http"
	"github.com/meridianbi/meridian-api/internal/ports"
	"github.com/meridianbi/meridian-api/internal/service"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config    *config.AppConfig
	Pipelines *service.PipelineService
	Dashboard *service.DashboardService
	Tenants   core.TenantRepository
	Sessions  ports.SessionStore
	DB        *sql.DB
	Logger    *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	services := httpx.RouterServices{
		Pipelines:         cfg.Pipelines,
		Dashboard:         cfg.Dashboard,
		Tenants:           cfg.Tenants,
		Sessions:          cfg.Sessions,
		DB:                cfg.DB,
		SessionCookieName: appCfg.Auth.SessionCookieName,
		WorkerSecret:      appCfg.Auth.WorkerSecret,
		BaseURL:           appCfg.HTTP.BaseURL,
		Logger:            logger,
	}

	handler := buildHTTPHandler(logger, services)

	return startServer(logger, handler, appCfg.HTTP)
}

// buildHTTPHandler wraps the router with middleware.
// Order: Recover -> Logging -> Router.
func buildHTTPHandler(logger *slog.Logger, services httpx.RouterServices) http.Handler {
	h := httpx.NewRouter(services)
	h = httpx.Logging(logger)(h)
	h = httpx.Recover(logger)(h)
	return h
}

func startServer(logger *slog.Logger, handler http.Handler, httpCfg config.HTTPConfig) *http.Server {
	addr := httpCfg.Addr
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: httpCfg.ReadHeaderTimeout,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Timeout time.Duration
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server, abandoning
// in-flight requests past the configured timeout.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	shutdownCtx, cancel := context.WithTimeout(cfg.Context, timeout)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}

	return nil
}
