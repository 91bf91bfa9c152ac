package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inspectos-api/internal/application/dto"
	"github.com/jhoicas/inspectos-api/internal/domain/entity"
	"github.com/jhoicas/inspectos-api/internal/domain/margins"
)

// ToDecisionDTO convierte el agregado del dominio a la forma JSON, con los
// montos y porcentajes redondeados a 2 decimales.
func ToDecisionDTO(d margins.DecisionData) dto.DecisionDataDTO {
	trend := make([]dto.TrendBucketDTO, len(d.TrendBuckets))
	for i, b := range d.TrendBuckets {
		trend[i] = dto.TrendBucketDTO{
			Label:     b.Label,
			WeekStart: b.WeekStart.Format("2006-01-02"),
			Orders:    b.Orders,
			Revenue:   b.Revenue.Round(2),
			Cost:      b.Cost.Round(2),
			Margin:    b.Margin.Round(2),
			AvgCost:   b.AvgCost.Round(2),
		}
	}

	lowMargin := make([]dto.LowMarginOrderDTO, len(d.LowMarginOrders))
	for i, o := range d.LowMarginOrders {
		lowMargin[i] = dto.LowMarginOrderDTO{
			ID:            o.ID,
			OrderNumber:   o.OrderNumber,
			ScheduledDate: o.ScheduledDate,
			Address:       o.Address,
			Source:        o.Source,
			Margin:        o.Margin.Round(2),
			MarginPct:     o.MarginPct.Round(2),
		}
	}

	return dto.DecisionDataDTO{
		KPIs: dto.KPIsDTO{
			Margin:               d.KPIs.Margin.Round(2),
			MarginDelta:          roundPtr(d.KPIs.MarginDelta),
			MarginRate:           d.KPIs.MarginRate.Round(2),
			MarginRateDelta:      roundPtr(d.KPIs.MarginRateDelta),
			AvgCostPerInspection: d.KPIs.AvgCostPerInspection.Round(2),
			AtRiskMargin:         d.KPIs.AtRiskMargin.Round(2),
			AtRiskCount:          d.KPIs.AtRiskCount,
			InspectionCount:      d.KPIs.InspectionCount,
		},
		Current:             toPeriodDTO(d.Current),
		Prior:               toPeriodDTO(d.Prior),
		TrendBuckets:        trend,
		ReferralLeaderboard: toMetricDTOs(d.ReferralLeaderboard),
		TopServices:         toMetricDTOs(d.TopServices),
		BottomServices:      toMetricDTOs(d.BottomServices),
		LowMarginOrders:     lowMargin,
	}
}

// ToTodayOrderDTOs filas de la agenda del día.
func ToTodayOrderDTOs(orders []entity.Order) []dto.TodayOrderDTO {
	out := make([]dto.TodayOrderDTO, len(orders))
	for i := range orders {
		o := &orders[i]
		row := dto.TodayOrderDTO{
			ID:            o.ID,
			OrderNumber:   o.OrderNumber,
			Status:        o.Status,
			ScheduledTime: o.ScheduledTime,
			Address:       margins.OrderAddress(o),
		}
		if o.Client != nil {
			row.ClientName = o.Client.Name
		}
		if o.Inspector != nil {
			row.InspectorName = o.Inspector.FullName
		}
		out[i] = row
	}
	return out
}

func toPeriodDTO(t margins.Totals) dto.PeriodTotalsDTO {
	return dto.PeriodTotalsDTO{
		Orders:  t.Orders,
		Revenue: t.Revenue.Round(2),
		Cost:    t.Cost.Round(2),
		Margin:  t.Margin.Round(2),
	}
}

func toMetricDTOs(rows []margins.Metric) []dto.MetricDTO {
	out := make([]dto.MetricDTO, len(rows))
	for i, m := range rows {
		out[i] = dto.MetricDTO{
			Name:        m.Name,
			Inspections: m.Inspections,
			Revenue:     m.Revenue.Round(2),
			Margin:      m.Margin.Round(2),
			MarginPct:   m.MarginPct.Round(2),
		}
	}
	return out
}

func roundPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	r := d.Round(2)
	return &r
}
