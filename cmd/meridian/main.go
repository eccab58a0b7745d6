package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/meridianbi/meridian-api/config"
	"github.com/meridianbi/meridian-api/internal/adapters/events"
	redisadapter "github.com/meridianbi/meridian-api/internal/adapters/redis"
	"github.com/meridianbi/meridian-api/internal/bootstrap"
	"github.com/meridianbi/meridian-api/internal/core"
	"github.com/meridianbi/meridian-api/internal/data"
	"github.com/meridianbi/meridian-api/internal/service"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting meridian api",
		"db_host", cfg.Postgres.Host,
		"db_port", cfg.Postgres.Port,
		"db_name", cfg.Postgres.Name,
		"addr", cfg.HTTP.Addr)

	db, redisClient, err := initInfrastructure(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database failed", "error", cerr)
		}
	}()
	defer func() {
		if cerr := redisClient.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close redis failed", "error", cerr)
		}
	}()

	if cfg.Postgres.RunMigrationsOnStart {
		if err = bootstrap.RunMigrations(ctx, db, logger); err != nil {
			return err
		}
	} else {
		logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
	}

	server := bootstrap.StartHTTPServer(buildServerConfig(&cfg, db, redisClient, logger))

	// Block until a shutdown signal arrives, then drain the server.
	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-signalCtx.Done()

	return bootstrap.ShutdownHTTPServer(bootstrap.ShutdownConfig{
		Context: ctx,
		Server:  server,
		Timeout: cfg.HTTP.ShutdownTimeout,
		Logger:  logger,
	})
}

// initInfrastructure connects shared dependencies used by the service runtime.
//
//nolint:ireturn // returning redis.UniversalClient keeps sentinel/cluster support flexible.
func initInfrastructure(
	ctx context.Context,
	cfg *config.AppConfig,
	logger *slog.Logger,
) (*sql.DB, redis.UniversalClient, error) {
	dbCfg := bootstrap.DatabaseConfig{
		DBConfig:    cfg.Postgres,
		RedisConfig: cfg.Redis,
		Logger:      logger,
	}

	db, err := bootstrap.ConnectDB(dbCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}

	redisClient, err := bootstrap.ConnectRedis(dbCfg)
	if err != nil {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database after redis connect failure", "error", cerr)
			err = errors.Join(err, fmt.Errorf("close database: %w", cerr))
		}
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}

	return db, redisClient, nil
}

// buildServerConfig wires repositories, services and adapters into the HTTP
// server configuration.
func buildServerConfig(
	cfg *config.AppConfig,
	db *sql.DB,
	redisClient redis.UniversalClient,
	logger *slog.Logger,
) *bootstrap.HTTPServerConfig {
	repoCfg := data.RepoConfig{Logger: logger}
	jobs := data.NewPipelineRepo(db, repoCfg)
	results := data.NewSweepResultRepo(db, repoCfg)
	dashboards := data.NewDashboardRepo(db, repoCfg)
	tenants := data.NewTenantRepo(db, repoCfg)

	var publisher core.EventPublisher
	if cfg.Events.Enabled {
		publisher = events.NewPublisher(redisClient, logger)
	}

	pipelines := service.MustNewPipelineService(service.PipelineServiceOptions{
		Jobs:      jobs,
		Results:   results,
		Publisher: publisher,
		Logger:    logger,
	})
	dashboard := service.MustNewDashboardService(service.DashboardServiceOptions{
		Repo:   dashboards,
		Logger: logger,
	})

	sessions := redisadapter.NewSessionStoreWithPrefix(redisClient, cfg.Auth.SessionPrefix)

	return &bootstrap.HTTPServerConfig{
		Config:    cfg,
		Pipelines: pipelines,
		Dashboard: dashboard,
		Tenants:   tenants,
		Sessions:  sessions,
		DB:        db,
		Logger:    logger,
	}
}
