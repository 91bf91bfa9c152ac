package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OverviewDTO respuesta de GET /api/overview.
// Reúne los indicadores de decisión de los últimos 30 días, la agenda de hoy
// y la cantidad de clientes activos.
type OverviewDTO struct {
	DecisionDataDTO
	TodayOrders   []TodayOrderDTO `json:"today_orders"`
	ActiveClients int             `json:"active_clients"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

// DecisionDataDTO métricas agregadas (montos redondeados a 2 decimales).
type DecisionDataDTO struct {
	KPIs                KPIsDTO             `json:"kpis"`
	Current             PeriodTotalsDTO     `json:"current_period"`
	Prior               PeriodTotalsDTO     `json:"prior_period"`
	TrendBuckets        []TrendBucketDTO    `json:"trend_buckets"`
	ReferralLeaderboard []MetricDTO         `json:"referral_leaderboard"`
	TopServices         []MetricDTO         `json:"top_services"`
	BottomServices      []MetricDTO         `json:"bottom_services"`
	LowMarginOrders     []LowMarginOrderDTO `json:"low_margin_orders"`
}

// KPIsDTO encabezado del panel. Los deltas son null si no hay base comparable.
type KPIsDTO struct {
	Margin               decimal.Decimal  `json:"margin"`
	MarginDelta          *decimal.Decimal `json:"margin_delta"`
	MarginRate           decimal.Decimal  `json:"margin_rate"`
	MarginRateDelta      *decimal.Decimal `json:"margin_rate_delta"`
	AvgCostPerInspection decimal.Decimal  `json:"avg_cost_per_inspection"`
	AtRiskMargin         decimal.Decimal  `json:"at_risk_margin"`
	AtRiskCount          int              `json:"at_risk_count"`
	InspectionCount      int              `json:"inspection_count"`
}

// PeriodTotalsDTO sumas de una ventana de 30 días.
type PeriodTotalsDTO struct {
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
	Cost    decimal.Decimal `json:"cost"`
	Margin  decimal.Decimal `json:"margin"`
}

// TrendBucketDTO semana de la tendencia (domingo a sábado).
type TrendBucketDTO struct {
	Label     string          `json:"label"` // ej: "Jan 5"
	WeekStart string          `json:"week_start"`
	Orders    int             `json:"orders"`
	Revenue   decimal.Decimal `json:"revenue"`
	Cost      decimal.Decimal `json:"cost"`
	Margin    decimal.Decimal `json:"margin"`
	AvgCost   decimal.Decimal `json:"avg_cost"`
}

// MetricDTO fila de un ranking de servicios o de referidos.
type MetricDTO struct {
	Name        string          `json:"name"`
	Inspections int             `json:"inspections"`
	Revenue     decimal.Decimal `json:"revenue"`
	Margin      decimal.Decimal `json:"margin"`
	MarginPct   decimal.Decimal `json:"margin_pct"`
}

// LowMarginOrderDTO alerta de pedido con margen bajo.
type LowMarginOrderDTO struct {
	ID            string          `json:"id"`
	OrderNumber   string          `json:"order_number"`
	ScheduledDate string          `json:"scheduled_date,omitempty"`
	Address       string          `json:"address"`
	Source        string          `json:"source"`
	Margin        decimal.Decimal `json:"margin"`
	MarginPct     decimal.Decimal `json:"margin_pct"`
}

// TodayOrderDTO fila de la agenda del día.
type TodayOrderDTO struct {
	ID            string `json:"id"`
	OrderNumber   string `json:"order_number"`
	Status        string `json:"status"`
	ScheduledTime string `json:"scheduled_time,omitempty"`
	Address       string `json:"address"`
	ClientName    string `json:"client_name,omitempty"`
	InspectorName string `json:"inspector_name,omitempty"`
}
