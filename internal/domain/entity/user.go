package entity

import "time"

// Roles válidos para User.
const (
	RoleOwner     = "owner"
	RoleAdmin     = "admin"
	RoleInspector = "inspector"
	RoleOffice    = "office_staff"
)

// User representa un miembro del equipo (pertenece a un Tenant).
type User struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // owner, admin, inspector, office_staff
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
