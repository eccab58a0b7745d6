package model

import "time"

// Tenant is the isolation boundary every job and business fact belongs to.
// Provisioning happens out-of-band; this service only reads tenants.
type Tenant struct {
	ID        string    `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	Slug      string    `json:"slug"       db:"slug"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
