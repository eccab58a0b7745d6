package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; enforcement in internal/http middleware.

import (
	"context"

	domainauth "github.com/meridianbi/meridian-api/internal/domain/auth"
)

// SessionStore persists and retrieves user sessions. Sessions are minted by
// the identity service upstream of this API; here they are only read to
// resolve the caller and their tenant.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}
