// Package margins agrega los pedidos de inspección en las métricas de decisión
// del panel del dueño: márgenes de 30 días contra los 30 previos, tendencia
// semanal, rankings de servicios y referidos, y alertas de bajo margen.
//
// Todo el paquete es puro: recibe la instantánea de pedidos y el instante "now"
// y no hace I/O. Las entradas incompletas se excluyen o valen cero; nunca hay error.
package margins

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inspectos-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// valueOrZero devuelve el monto informado o cero si falta.
func valueOrZero(v decimal.NullDecimal) decimal.Decimal {
	if v.Valid {
		return v.Decimal
	}
	return decimal.Zero
}

// OrderRevenue ingreso del pedido (total; cero si no viene).
func OrderRevenue(o *entity.Order) decimal.Decimal {
	return valueOrZero(o.Total)
}

// OrderTotalCost costo total del pedido. El valor explícito gana; si falta se
// suman labor + viaje + overhead + otros (componentes ausentes = 0).
func OrderTotalCost(o *entity.Order) decimal.Decimal {
	if o.TotalCost.Valid {
		return o.TotalCost.Decimal
	}
	return valueOrZero(o.LaborCost).
		Add(valueOrZero(o.TravelCost)).
		Add(valueOrZero(o.OverheadCost)).
		Add(valueOrZero(o.OtherCost))
}

// OrderGrossMargin margen bruto: gross_margin explícito o total - costo total.
func OrderGrossMargin(o *entity.Order) decimal.Decimal {
	if o.GrossMargin.Valid {
		return o.GrossMargin.Decimal
	}
	return OrderRevenue(o).Sub(OrderTotalCost(o))
}

// marginRate porcentaje de margen sobre ingreso; 0 si no hay ingreso positivo.
func marginRate(margin, revenue decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() {
		return decimal.Zero
	}
	return margin.Div(revenue).Mul(hundred)
}
