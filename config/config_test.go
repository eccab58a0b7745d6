package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Postgres.Host != "localhost" {
		t.Errorf("expected Postgres.Host=localhost, got %s", cfg.Postgres.Host)
	}
	if cfg.Postgres.Port != 5432 {
		t.Errorf("expected Postgres.Port=5432, got %d", cfg.Postgres.Port)
	}
	if cfg.Postgres.Name != "meridian" {
		t.Errorf("expected Postgres.Name=meridian, got %s", cfg.Postgres.Name)
	}
	if !cfg.Postgres.RunMigrationsOnStart {
		t.Error("expected RunMigrationsOnStart=true by default")
	}
	if cfg.Redis.URI != "localhost:6379" {
		t.Errorf("expected Redis.URI=localhost:6379, got %s", cfg.Redis.URI)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected HTTP.Addr=:8080, got %s", cfg.HTTP.Addr)
	}
	if cfg.Auth.SessionCookieName != "meridian_session" {
		t.Errorf("expected Auth.SessionCookieName=meridian_session, got %s", cfg.Auth.SessionCookieName)
	}
	if cfg.Auth.SessionPrefix != "session:" {
		t.Errorf("expected Auth.SessionPrefix=session:, got %s", cfg.Auth.SessionPrefix)
	}
	if !cfg.Events.Enabled {
		t.Error("expected Events.Enabled=true by default")
	}
}

func TestAppConfig_EnvPrefixes(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("REDIS_URI", "redis.internal:6379")
	t.Setenv("EVENTS_ENABLED", "false")
	t.Setenv("AUTH_WORKER_SECRET", "s3cret")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Postgres.Host != "db.internal" {
		t.Errorf("expected Postgres.Host=db.internal, got %s", cfg.Postgres.Host)
	}
	if cfg.Postgres.Port != 6432 {
		t.Errorf("expected Postgres.Port=6432, got %d", cfg.Postgres.Port)
	}
	if cfg.Redis.URI != "redis.internal:6379" {
		t.Errorf("expected Redis.URI=redis.internal:6379, got %s", cfg.Redis.URI)
	}
	if cfg.Events.Enabled {
		t.Error("expected Events.Enabled=false")
	}
	if cfg.Auth.WorkerSecret != "s3cret" {
		t.Errorf("expected Auth.WorkerSecret=s3cret, got %s", cfg.Auth.WorkerSecret)
	}
}

func TestHTTPConfig_SanitizeClampsTimeouts(t *testing.T) {
	h := HTTPConfig{ReadHeaderTimeout: -1, ShutdownTimeout: 0}
	h.Sanitize()

	if h.ReadHeaderTimeout != 10*time.Second {
		t.Errorf("expected ReadHeaderTimeout=10s, got %v", h.ReadHeaderTimeout)
	}
	if h.ShutdownTimeout != 15*time.Second {
		t.Errorf("expected ShutdownTimeout=15s, got %v", h.ShutdownTimeout)
	}
}

func TestAuthConfig_SanitizeRestoresDefaults(t *testing.T) {
	a := AuthConfig{SessionCookieName: "   ", SessionPrefix: ""}
	a.Sanitize()

	if a.SessionCookieName != "meridian_session" {
		t.Errorf("expected default cookie name, got %q", a.SessionCookieName)
	}
	if a.SessionPrefix != "session:" {
		t.Errorf("expected default session prefix, got %q", a.SessionPrefix)
	}
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Error("expected IsDev=true when NODE_ENV=development")
	}
}
