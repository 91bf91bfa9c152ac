package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inspectos-api/internal/domain/entity"
	"github.com/jhoicas/inspectos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo consultas de pedidos sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Acepta pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Las fechas salen como texto con la misma forma que el JSON de la API:
// scheduled_date YYYY-MM-DD, scheduled_time HH:MM.
const orderSelect = `
	SELECT
	    o.id, o.tenant_id, o.order_number, o.status,
	    to_char(o.scheduled_date, 'YYYY-MM-DD'),
	    to_char(o.scheduled_time, 'HH24:MI'),
	    o.created_at, o.completed_at,
	    o.total, o.total_cost, o.labor_cost, o.travel_cost, o.overhead_cost, o.other_cost, o.gross_margin,
	    o.source,
	    p.id, p.address_line1, p.address_line2, p.city, p.state, p.zip_code, p.property_type,
	    c.id, c.name, c.email, c.phone,
	    u.id, u.name, u.email
	FROM orders o
	LEFT JOIN properties p ON p.id = o.property_id
	LEFT JOIN clients    c ON c.id = o.client_id
	LEFT JOIN users      u ON u.id = o.inspector_id`

// ListForOverview pedidos con fecha efectiva >= since, con servicios e inmueble.
func (r *OrderRepo) ListForOverview(ctx context.Context, tenantID string, since time.Time) ([]entity.Order, error) {
	query := orderSelect + `
	WHERE o.tenant_id = $1
	  AND (o.scheduled_date >= $2::date OR (o.scheduled_date IS NULL AND o.created_at >= $3))
	ORDER BY COALESCE(o.scheduled_date, o.created_at::date), o.order_number`

	orders, err := r.list(ctx, query, tenantID, since.Format("2006-01-02"), since)
	if err != nil {
		return nil, fmt.Errorf("list orders for overview: %w", err)
	}
	if err := r.loadServices(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListScheduledOn pedidos agendados en day (YYYY-MM-DD), por hora.
func (r *OrderRepo) ListScheduledOn(ctx context.Context, tenantID, day string) ([]entity.Order, error) {
	query := orderSelect + `
	WHERE o.tenant_id = $1 AND o.scheduled_date = $2::date
	ORDER BY o.scheduled_time NULLS LAST, o.order_number`

	orders, err := r.list(ctx, query, tenantID, day)
	if err != nil {
		return nil, fmt.Errorf("list orders scheduled on %s: %w", day, err)
	}
	if err := r.loadServices(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]entity.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func scanOrder(row pgx.Row) (entity.Order, error) {
	var (
		o                                   entity.Order
		scheduledDate, scheduledTime, src   *string
		createdAt                           time.Time
		completedAt                         *time.Time
		propID, line1, line2, city, state   *string
		zip, propType                       *string
		clientID, clientName, clientEmail   *string
		clientPhone                         *string
		inspectorID, inspectorName, inspEml *string
	)
	err := row.Scan(
		&o.ID, &o.TenantID, &o.OrderNumber, &o.Status,
		&scheduledDate, &scheduledTime, &createdAt, &completedAt,
		&o.Total, &o.TotalCost, &o.LaborCost, &o.TravelCost, &o.OverheadCost, &o.OtherCost, &o.GrossMargin,
		&src,
		&propID, &line1, &line2, &city, &state, &zip, &propType,
		&clientID, &clientName, &clientEmail, &clientPhone,
		&inspectorID, &inspectorName, &inspEml,
	)
	if err != nil {
		return o, err
	}

	o.ScheduledDate = deref(scheduledDate)
	o.ScheduledTime = deref(scheduledTime)
	o.CreatedAt = createdAt.Format(time.RFC3339)
	if completedAt != nil {
		o.CompletedAt = completedAt.Format(time.RFC3339)
	}
	o.Source = deref(src)

	if propID != nil {
		o.Property = &entity.Property{
			ID:           *propID,
			AddressLine1: deref(line1),
			AddressLine2: deref(line2),
			City:         deref(city),
			State:        deref(state),
			ZipCode:      deref(zip),
			PropertyType: deref(propType),
		}
	}
	if clientID != nil {
		o.Client = &entity.OrderClient{
			ID:    *clientID,
			Name:  deref(clientName),
			Email: deref(clientEmail),
			Phone: deref(clientPhone),
		}
	}
	if inspectorID != nil {
		o.Inspector = &entity.Inspector{
			ID:       *inspectorID,
			FullName: deref(inspectorName),
			Email:    deref(inspEml),
		}
	}
	return o, nil
}

// loadServices carga las líneas de todos los pedidos en una sola consulta.
func (r *OrderRepo) loadServices(ctx context.Context, orders []entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	const query = `
	SELECT order_id, id, COALESCE(service_id::TEXT, ''), name, price
	FROM order_services
	WHERE order_id = ANY($1::uuid[])
	ORDER BY order_id, sort_order, name`

	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list order services: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID string
			s       entity.OrderService
		)
		if err := rows.Scan(&orderID, &s.ID, &s.ServiceID, &s.Name, &s.Price); err != nil {
			return fmt.Errorf("scan order service: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Services = append(orders[i].Services, s)
		}
	}
	return rows.Err()
}
