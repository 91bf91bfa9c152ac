package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inspectos-api/internal/domain/entity"
)

// OrderRepository consultas de lectura de pedidos para el panel del dueño.
// Todas las consultas filtran por tenant.
type OrderRepository interface {
	// ListForOverview devuelve los pedidos cuya fecha efectiva
	// (scheduled_date, o created_at si falta) es igual o posterior a since,
	// con servicios e inmueble cargados.
	ListForOverview(ctx context.Context, tenantID string, since time.Time) ([]entity.Order, error)

	// ListScheduledOn pedidos agendados en el día indicado (YYYY-MM-DD).
	ListScheduledOn(ctx context.Context, tenantID, day string) ([]entity.Order, error)
}
