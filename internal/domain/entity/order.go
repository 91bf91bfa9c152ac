package entity

import "github.com/shopspring/decimal"

// Estados de un pedido de inspección.
const (
	OrderStatusPending       = "pending"
	OrderStatusScheduled     = "scheduled"
	OrderStatusInProgress    = "in_progress"
	OrderStatusPendingReport = "pending_report"
	OrderStatusDelivered     = "delivered"
	OrderStatusCompleted     = "completed"
	OrderStatusCancelled     = "cancelled"
)

// Order representa un pedido de inspección tal como lo entrega la capa de datos.
//
// Las fechas viajan como texto (igual que en el JSON de la API): ScheduledDate en
// formato YYYY-MM-DD y CreatedAt/CompletedAt en RFC 3339. Vacío = ausente.
// Los montos opcionales usan NullDecimal: Valid=false significa "no informado".
type Order struct {
	ID            string `json:"id"`
	TenantID      string `json:"tenant_id,omitempty"`
	OrderNumber   string `json:"order_number"`
	Status        string `json:"status"`
	ScheduledDate string `json:"scheduled_date,omitempty"`
	ScheduledTime string `json:"scheduled_time,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	CompletedAt   string `json:"completed_at,omitempty"`

	Total        decimal.NullDecimal `json:"total"`
	TotalCost    decimal.NullDecimal `json:"total_cost"`    // si falta se deriva de los cuatro componentes
	LaborCost    decimal.NullDecimal `json:"labor_cost"`
	TravelCost   decimal.NullDecimal `json:"travel_cost"`
	OverheadCost decimal.NullDecimal `json:"overhead_cost"`
	OtherCost    decimal.NullDecimal `json:"other_cost"`
	GrossMargin  decimal.NullDecimal `json:"gross_margin"`  // si falta = total - costo total

	Source   string         `json:"source,omitempty"` // canal de referido, texto libre
	Services []OrderService `json:"services,omitempty"`

	Property  *Property    `json:"property,omitempty"`
	Client    *OrderClient `json:"client,omitempty"`
	Inspector *Inspector   `json:"inspector,omitempty"`
}

// OrderService línea facturable del pedido (servicio o paquete).
type OrderService struct {
	ID        string              `json:"id,omitempty"`
	ServiceID string              `json:"service_id,omitempty"`
	Name      string              `json:"name"`
	Price     decimal.NullDecimal `json:"price"`
}

// Property inmueble inspeccionado.
type Property struct {
	ID           string `json:"id,omitempty"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	PropertyType string `json:"property_type,omitempty"`
}

// OrderClient resumen del cliente asociado al pedido.
type OrderClient struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Inspector resumen del inspector asignado.
type Inspector struct {
	ID       string `json:"id"`
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email"`
}
