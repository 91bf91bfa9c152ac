package margins

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inspectos-api/internal/domain/entity"
)

const (
	lowMarginThreshold = 25 // % de margen por debajo del cual un pedido es de riesgo
	lowMarginLimit     = 6
	topServicesLimit   = 5
	bottomServiceLimit = 5
	referralLimit      = 6
)

var lowMarginPct = decimal.NewFromInt(lowMarginThreshold)

// Totals sumas de una ventana de 30 días.
type Totals struct {
	Orders  int
	Revenue decimal.Decimal
	Cost    decimal.Decimal
	Margin  decimal.Decimal
}

// KPIs indicadores del encabezado del panel.
//
// MarginDelta y MarginRateDelta son nil cuando la ventana previa no tiene margen
// positivo: significa "sin base comparable", no "sin cambio".
type KPIs struct {
	Margin               decimal.Decimal
	MarginDelta          *decimal.Decimal // variación % del margen vs. los 30 días previos
	MarginRate           decimal.Decimal
	MarginRateDelta      *decimal.Decimal // diferencia en puntos porcentuales
	AvgCostPerInspection decimal.Decimal
	AtRiskMargin         decimal.Decimal // margen de todos los pedidos bajo el umbral
	AtRiskCount          int             // cantidad total bajo el umbral (sin recortar)
	InspectionCount      int
}

// LowMarginOrder pedido de la ventana actual con margen < 25%.
type LowMarginOrder struct {
	ID            string
	OrderNumber   string
	ScheduledDate string
	Address       string
	Source        string
	Margin        decimal.Decimal
	MarginPct     decimal.Decimal
}

// DecisionData vista agregada completa del panel del dueño.
type DecisionData struct {
	KPIs                KPIs
	Current             Totals
	Prior               Totals
	TrendBuckets        []TrendBucket
	ReferralLeaderboard []Metric
	TopServices         []Metric
	BottomServices      []Metric
	LowMarginOrders     []LowMarginOrder
}

// ComputeDecisionData calcula las métricas de decisión a partir de la
// instantánea de pedidos. Es determinista para un mismo (orders, now).
func ComputeDecisionData(orders []entity.Order, now time.Time) DecisionData {
	this30, prior30 := partition(orders, now)

	current := sumTotals(this30)
	prior := sumTotals(prior30)

	kpis := KPIs{
		Margin:          current.Margin,
		MarginRate:      marginRate(current.Margin, current.Revenue),
		InspectionCount: current.Orders,
	}
	if prior.Margin.IsPositive() {
		delta := current.Margin.Sub(prior.Margin).Div(prior.Margin).Mul(hundred)
		kpis.MarginDelta = &delta

		rateDelta := kpis.MarginRate.Sub(marginRate(prior.Margin, prior.Revenue))
		kpis.MarginRateDelta = &rateDelta
	}
	if current.Orders > 0 {
		kpis.AvgCostPerInspection = current.Cost.Div(decimal.NewFromInt(int64(current.Orders)))
	}

	lowMargin := lowMarginOrders(this30)
	kpis.AtRiskCount = len(lowMargin)
	for _, o := range lowMargin {
		kpis.AtRiskMargin = kpis.AtRiskMargin.Add(o.Margin)
	}
	if len(lowMargin) > lowMarginLimit {
		lowMargin = lowMargin[:lowMarginLimit]
	}

	services, referrals := buildLeaderboards(this30)

	bottom := make([]Metric, len(services))
	copy(bottom, services)
	sort.SliceStable(bottom, func(a, b int) bool {
		return bottom[a].MarginPct.LessThan(bottom[b].MarginPct)
	})

	return DecisionData{
		KPIs:                kpis,
		Current:             current,
		Prior:               prior,
		TrendBuckets:        buildTrend(this30, now),
		ReferralLeaderboard: limit(referrals, referralLimit),
		TopServices:         limit(services, topServicesLimit),
		BottomServices:      limit(bottom, bottomServiceLimit),
		LowMarginOrders:     lowMargin,
	}
}

func sumTotals(orders []dated) Totals {
	t := Totals{Orders: len(orders)}
	for _, d := range orders {
		t.Revenue = t.Revenue.Add(OrderRevenue(d.order))
		t.Cost = t.Cost.Add(OrderTotalCost(d.order))
		t.Margin = t.Margin.Add(OrderGrossMargin(d.order))
	}
	return t
}

// lowMarginOrders todos los pedidos bajo el umbral, del peor al mejor.
func lowMarginOrders(orders []dated) []LowMarginOrder {
	out := make([]LowMarginOrder, 0)
	for _, d := range orders {
		margin := OrderGrossMargin(d.order)
		pct := marginRate(margin, OrderRevenue(d.order))
		if !pct.LessThan(lowMarginPct) {
			continue
		}
		out = append(out, LowMarginOrder{
			ID:            d.order.ID,
			OrderNumber:   d.order.OrderNumber,
			ScheduledDate: d.order.ScheduledDate,
			Address:       OrderAddress(d.order),
			Source:        SourceName(d.order.Source),
			Margin:        margin,
			MarginPct:     pct,
		})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].MarginPct.LessThan(out[b].MarginPct)
	})
	return out
}

// buildLeaderboards acumula por servicio (reparto proporcional) y por fuente.
// Ambos resultados vienen ordenados por margen descendente.
func buildLeaderboards(orders []dated) (services, referrals []Metric) {
	serviceTable := newMetricTable()
	referralTable := newMetricTable()

	for _, d := range orders {
		referralTable.add(SourceName(d.order.Source), OrderRevenue(d.order), OrderGrossMargin(d.order))
		for _, share := range AllocateServices(d.order) {
			serviceTable.add(share.Name, share.Revenue, share.Margin)
		}
	}
	return serviceTable.byMarginDesc(), referralTable.byMarginDesc()
}

func limit(rows []Metric, n int) []Metric {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}
