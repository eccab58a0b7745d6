package config

import "strings"

// AuthConfig groups session and worker authentication configuration.
// Sessions are minted by the upstream identity service and resolved here via
// the shared Redis session store; workers authenticate with a shared secret.
type AuthConfig struct {
	// SessionCookieName is the cookie carrying the session id.
	SessionCookieName string `env:"AUTH_SESSION_COOKIE" envDefault:"meridian_session"`

	// SessionPrefix is the Redis key prefix for stored sessions. It must match
	// the prefix the identity service writes under.
	SessionPrefix string `env:"AUTH_SESSION_PREFIX" envDefault:"session:"`

	// WorkerSecret authenticates pipeline workers calling the internal
	// transition endpoints. Empty disables those endpoints.
	WorkerSecret string `env:"AUTH_WORKER_SECRET" envDefault:""`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	a.SessionCookieName = strings.TrimSpace(a.SessionCookieName)
	if a.SessionCookieName == "" {
		a.SessionCookieName = "meridian_session"
	}
	if a.SessionPrefix == "" {
		a.SessionPrefix = "session:"
	}
}
