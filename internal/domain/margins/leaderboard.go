package margins

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inspectos-api/internal/domain/entity"
)

const (
	unknownSource     = "Unknown"
	unassignedService = "Unassigned Service"
	unnamedService    = "Unnamed Service"
)

// Metric acumulado de un servicio o de una fuente de referidos.
type Metric struct {
	Name        string
	Inspections int
	Revenue     decimal.Decimal
	Margin      decimal.Decimal
	MarginPct   decimal.Decimal // Margin / Revenue * 100; 0 si Revenue <= 0
}

// metricTable acumula métricas por nombre conservando el orden de inserción,
// de modo que los empates en los rankings sean deterministas.
type metricTable struct {
	index map[string]int
	rows  []Metric
}

func newMetricTable() *metricTable {
	return &metricTable{index: make(map[string]int)}
}

func (t *metricTable) add(name string, revenue, margin decimal.Decimal) {
	i, ok := t.index[name]
	if !ok {
		i = len(t.rows)
		t.index[name] = i
		t.rows = append(t.rows, Metric{Name: name})
	}
	row := &t.rows[i]
	row.Inspections++
	row.Revenue = row.Revenue.Add(revenue)
	row.Margin = row.Margin.Add(margin)
}

// byMarginDesc devuelve una copia con MarginPct calculado, ordenada por margen
// en dólares de mayor a menor.
func (t *metricTable) byMarginDesc() []Metric {
	out := make([]Metric, len(t.rows))
	for i, r := range t.rows {
		r.MarginPct = marginRate(r.Margin, r.Revenue)
		out[i] = r
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Margin.GreaterThan(out[b].Margin)
	})
	return out
}

// SourceName normaliza la fuente de referido: vacío o solo espacios = "Unknown".
func SourceName(source string) string {
	if s := strings.TrimSpace(source); s != "" {
		return s
	}
	return unknownSource
}

// ServiceShare parte del pedido asignada a un servicio.
type ServiceShare struct {
	Name    string
	Revenue decimal.Decimal
	Margin  decimal.Decimal
}

// AllocateServices reparte ingreso y margen del pedido entre sus servicios en
// proporción a su precio. Si los precios suman cero el reparto es equitativo.
// Un pedido sin servicios cuenta como un único "Unassigned Service" por el total.
func AllocateServices(o *entity.Order) []ServiceShare {
	revenue := OrderRevenue(o)
	margin := OrderGrossMargin(o)

	services := o.Services
	if len(services) == 0 {
		services = []entity.OrderService{{Name: unassignedService, Price: decimal.NewNullDecimal(revenue)}}
	}

	totalPrice := decimal.Zero
	for _, s := range services {
		totalPrice = totalPrice.Add(valueOrZero(s.Price))
	}
	fallbackShare := decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(len(services))))

	shares := make([]ServiceShare, 0, len(services))
	for _, s := range services {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			name = unnamedService
		}
		share := fallbackShare
		if totalPrice.IsPositive() {
			share = valueOrZero(s.Price).Div(totalPrice)
		}
		shares = append(shares, ServiceShare{
			Name:    name,
			Revenue: revenue.Mul(share),
			Margin:  margin.Mul(share),
		})
	}
	return shares
}
