package entity

import "time"

// Estados de agencias y agentes.
const (
	PartnerStatusActive   = "active"
	PartnerStatusInactive = "inactive"
)

// Agency inmobiliaria con la que trabaja el tenant (fuente de referidos).
// Los campos opcionales vacíos se persisten como NULL.
type Agency struct {
	ID            string
	TenantID      string
	Name          string
	Status        string
	LogoURL       *string
	LicenseNumber *string
	Phone         *string
	Website       *string
	AddressLine1  *string
	AddressLine2  *string
	City          *string
	State         *string
	ZipCode       *string
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Agent agente inmobiliario. La dirección de su agencia se guarda como una
// sola línea de texto (ver contact.BuildAgencyAddress).
type Agent struct {
	ID            string
	TenantID      string
	AgencyID      *string
	Name          string
	Email         *string
	Phone         *string
	LicenseNumber *string
	Role          *string
	PhotoURL      *string
	AgencyName    *string
	AgencyAddress *string
	AgencyWebsite *string
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
