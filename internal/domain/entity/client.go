package entity

import "time"

// Client cliente final que contrata inspecciones.
type Client struct {
	ID        string
	TenantID  string
	Name      string
	Email     string
	Phone     string
	Company   string
	Archived  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
