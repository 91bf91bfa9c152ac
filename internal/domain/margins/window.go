package margins

import (
	"strings"
	"time"

	"github.com/jhoicas/inspectos-api/internal/domain/entity"
)

const windowDays = 30

// Formatos aceptados para fechas de pedidos. Las fechas sin zona se interpretan
// en la zona de "now".
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	dayLayout,
}

const dayLayout = "2006-01-02"

// parseDate interpreta una fecha de pedido. ok=false si está vacía o es inválida.
func parseDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EffectiveDate fecha usada para ventanas y tendencia: scheduled_date si existe,
// si no created_at. Una scheduled_date presente pero inválida no cae a created_at.
func EffectiveDate(o *entity.Order, loc *time.Location) (time.Time, bool) {
	raw := o.ScheduledDate
	if strings.TrimSpace(raw) == "" {
		raw = o.CreatedAt
	}
	return parseDate(raw, loc)
}

// dated pedido con su fecha efectiva ya resuelta.
type dated struct {
	order *entity.Order
	date  time.Time
}

// partition separa los pedidos en la ventana actual [now-30d, now] y la previa
// [now-60d, now-30d). Los pedidos sin fecha válida quedan fuera de ambas.
func partition(orders []entity.Order, now time.Time) (this30, prior30 []dated) {
	thirtyDaysAgo := now.AddDate(0, 0, -windowDays)
	sixtyDaysAgo := now.AddDate(0, 0, -2*windowDays)

	for i := range orders {
		o := &orders[i]
		d, ok := EffectiveDate(o, now.Location())
		if !ok {
			continue
		}
		switch {
		case !d.Before(thirtyDaysAgo) && !d.After(now):
			this30 = append(this30, dated{order: o, date: d})
		case !d.Before(sixtyDaysAgo) && d.Before(thirtyDaysAgo):
			prior30 = append(prior30, dated{order: o, date: d})
		}
	}
	return this30, prior30
}

// TodayOrders pedidos agendados para el día calendario local de now
// (igualdad exacta de YYYY-MM-DD, no un rango).
func TodayOrders(orders []entity.Order, now time.Time) []entity.Order {
	today := now.Format(dayLayout)
	out := make([]entity.Order, 0)
	for _, o := range orders {
		if o.ScheduledDate == today {
			out = append(out, o)
		}
	}
	return out
}

// OrderAddress etiqueta corta del inmueble: "línea 1 · Ciudad, ST".
func OrderAddress(o *entity.Order) string {
	p := o.Property
	if p == nil {
		return "Property unavailable"
	}
	parts := make([]string, 0, 2)
	if line1 := strings.TrimSpace(p.AddressLine1); line1 != "" {
		parts = append(parts, line1)
	}
	if p.City != "" || p.State != "" {
		parts = append(parts, p.City+", "+p.State)
	}
	return strings.Join(parts, " · ")
}
