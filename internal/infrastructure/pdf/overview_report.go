// Package pdf genera el informe del panel de márgenes con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa              │  Informe de márgenes + fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: Margen | Tasa | Costo promedio | En riesgo            │
//	│  PERIODOS: últimos 30 días vs. 30 anteriores                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TENDENCIA: 8 semanas                                        │
//	│  RANKINGS: referidos / servicios                             │
//	│  ALERTAS: pedidos con margen bajo                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inspectos-api/internal/application/dto"
	"github.com/jhoicas/inspectos-api/internal/application/ports"
)

var _ ports.OverviewReportRenderer = (*OverviewReportRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 176, Green: 32, Blue: 32}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// OverviewReportRenderer implementa ports.OverviewReportRenderer usando Maroto v2.
type OverviewReportRenderer struct{}

// NewOverviewReportRenderer construye el generador.
func NewOverviewReportRenderer() *OverviewReportRenderer { return &OverviewReportRenderer{} }

// RenderOverview genera el PDF y devuelve sus bytes.
func (g *OverviewReportRenderer) RenderOverview(tenantName string, overview *dto.OverviewDTO) ([]byte, error) {
	if overview == nil {
		return nil, fmt.Errorf("pdf: panel vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Margin overview", true).
		WithAuthor(tenantName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(tenantName, overview))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRow(overview.KPIs))
	m.AddRows(periodRows(overview.Current, overview.Prior)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("Weekly trend (last 8 weeks)"))
	m.AddRows(tableHeader([]string{"Week", "Orders", "Revenue", "Cost", "Margin", "Avg cost"}, []int{2, 2, 2, 2, 2, 2}))
	for _, b := range overview.TrendBuckets {
		m.AddRows(tableRow([]string{
			b.Label, strconv.Itoa(b.Orders), money(b.Revenue), money(b.Cost), money(b.Margin), money(b.AvgCost),
		}, []int{2, 2, 2, 2, 2, 2}, nil))
	}

	m.AddRows(metricSection("Referral sources", overview.ReferralLeaderboard)...)
	m.AddRows(metricSection("Top services", overview.TopServices)...)
	m.AddRows(metricSection("Bottom services", overview.BottomServices)...)

	m.AddRows(sectionTitle("Low-margin orders"))
	if len(overview.LowMarginOrders) == 0 {
		m.AddRows(emptyRow("No low-margin orders in the last 30 days."))
	} else {
		widths := []int{2, 2, 4, 2, 1, 1}
		m.AddRows(tableHeader([]string{"Order", "Date", "Address", "Source", "Margin", "%"}, widths))
		for _, o := range overview.LowMarginOrders {
			m.AddRows(tableRow([]string{
				o.OrderNumber, o.ScheduledDate, o.Address, o.Source, money(o.Margin), pct(o.MarginPct),
			}, widths, colorDanger))
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(row.New(6).Add(col.New(12).Add(text.New(
		fmt.Sprintf("Active clients: %d   |   Generated %s", overview.ActiveClients, overview.GeneratedAt.Format("2006-01-02 15:04")),
		props.Text{Size: 7, Color: colorGray, Top: 1},
	))))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(tenantName string, overview *dto.OverviewDTO) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(nonEmpty(tenantName, "InspectOS"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("MARGIN OVERVIEW", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(overview.GeneratedAt.Format("Jan 2, 2006"), props.Text{
				Size: 9, Align: align.Right, Top: 7, Color: colorGray,
			}),
		),
	)
}

// kpiRow: cuatro tarjetas; los deltas se muestran sólo si existen.
func kpiRow(k dto.KPIsDTO) core.Row {
	card := func(label, value, sub string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Top: 5}),
			text.New(sub, props.Text{Size: 7, Color: colorGray, Top: 12}),
		)
	}
	return row.New(18).Add(
		card("Margin (30d)", money(k.Margin), delta(k.MarginDelta, money)),
		card("Margin rate", pct(k.MarginRate), delta(k.MarginRateDelta, pct)),
		card("Avg cost / inspection", money(k.AvgCostPerInspection), fmt.Sprintf("%d inspections", k.InspectionCount)),
		card("At-risk margin", money(k.AtRiskMargin), fmt.Sprintf("%d orders", k.AtRiskCount)),
	)
}

func periodRows(current, prior dto.PeriodTotalsDTO) []core.Row {
	widths := []int{3, 2, 2, 2, 3}
	return []core.Row{
		tableHeader([]string{"Period", "Orders", "Revenue", "Cost", "Margin"}, widths),
		tableRow([]string{"Last 30 days", strconv.Itoa(current.Orders), money(current.Revenue), money(current.Cost), money(current.Margin)}, widths, nil),
		tableRow([]string{"Prior 30 days", strconv.Itoa(prior.Orders), money(prior.Revenue), money(prior.Cost), money(prior.Margin)}, widths, nil),
	}
}

func metricSection(title string, rows []dto.MetricDTO) []core.Row {
	out := []core.Row{sectionTitle(title)}
	if len(rows) == 0 {
		return append(out, emptyRow("No data."))
	}
	widths := []int{4, 2, 2, 2, 2}
	out = append(out, tableHeader([]string{"Name", "Inspections", "Revenue", "Margin", "Margin %"}, widths))
	for _, r := range rows {
		out = append(out, tableRow([]string{
			r.Name, strconv.Itoa(r.Inspections), money(r.Revenue), money(r.Margin), pct(r.MarginPct),
		}, widths, nil))
	}
	return out
}

func sectionTitle(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(text.New(strings.ToUpper(title), props.Text{
		Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 3,
	})))
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1})))
}

func tableHeader(labels []string, widths []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(widths[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: a, Color: colorGray, Top: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func tableRow(values []string, widths []int, color *props.Color) core.Row {
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(widths[i]).Add(text.New(nonEmpty(v, "—"), props.Text{
			Size: 8, Align: a, Color: color, Top: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money "$12,345.60"; los negativos llevan signo delante del símbolo.
func money(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole, frac, _ := strings.Cut(d.StringFixed(2), ".")
	return sign + "$" + formatThousands(whole) + "." + frac
}

func pct(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

func delta(d *decimal.Decimal, format func(decimal.Decimal) string) string {
	if d == nil {
		return "no prior data"
	}
	if d.IsNegative() {
		return format(*d) + " vs prior 30d"
	}
	return "+" + format(*d) + " vs prior 30d"
}

// formatThousands inserta comas de miles en un string numérico sin decimales.
// Ej: "25000" → "25,000", "1000000" → "1,000,000"
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
