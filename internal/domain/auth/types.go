package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Identity represents the authenticated principal resolved by the external
// identity provider. TenantID is the isolation boundary every query is
// scoped by; an identity without one cannot use tenant-scoped endpoints.
type Identity struct {
	UserID    string
	TenantID  string
	Email     string
	Role      Role
	ExpiresAt time.Time
}

// Session is the server-side record persisted for an authenticated user.
// ID is an opaque session identifier.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TenantID  string    `json:"tenant_id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Identity converts the stored session into the request-scoped principal.
func (s Session) Identity() Identity {
	return Identity{
		UserID:    s.UserID,
		TenantID:  s.TenantID,
		Email:     s.Email,
		Role:      s.Role,
		ExpiresAt: s.ExpiresAt,
	}
}

// HasTenant reports whether the session carries a tenant association.
func (s Session) HasTenant() bool { return s.TenantID != "" }
