package entity

import "time"

// Tenant empresa de inspección que usa la plataforma (multi-tenant).
type Tenant struct {
	ID        string
	Name      string
	Slug      string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
