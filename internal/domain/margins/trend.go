package margins

import (
	"time"

	"github.com/shopspring/decimal"
)

const trendWeeks = 8

// TrendBucket totales de una semana calendario (domingo a sábado).
type TrendBucket struct {
	Label     string // ej. "Jan 5"
	WeekStart time.Time
	Orders    int
	Revenue   decimal.Decimal
	Cost      decimal.Decimal
	Margin    decimal.Decimal
	AvgCost   decimal.Decimal // Cost / Orders; 0 sin pedidos
}

// weekStarts inicio (domingo 00:00 local) de las últimas 8 semanas, la más antigua primero.
func weekStarts(now time.Time) []time.Time {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	current := startOfToday.AddDate(0, 0, -int(startOfToday.Weekday()))

	starts := make([]time.Time, 0, trendWeeks)
	for i := trendWeeks - 1; i >= 0; i-- {
		starts = append(starts, current.AddDate(0, 0, -7*i))
	}
	return starts
}

// buildTrend agrupa los pedidos por semana. Los que caen fuera de las 8 semanas
// se descartan en silencio.
func buildTrend(orders []dated, now time.Time) []TrendBucket {
	starts := weekStarts(now)
	buckets := make([]TrendBucket, len(starts))
	for i, start := range starts {
		buckets[i] = TrendBucket{Label: start.Format("Jan 2"), WeekStart: start}
	}

	for _, d := range orders {
		for i, start := range starts {
			end := start.AddDate(0, 0, 7)
			if d.date.Before(start) || !d.date.Before(end) {
				continue
			}
			b := &buckets[i]
			b.Orders++
			b.Revenue = b.Revenue.Add(OrderRevenue(d.order))
			b.Cost = b.Cost.Add(OrderTotalCost(d.order))
			b.Margin = b.Margin.Add(OrderGrossMargin(d.order))
			break
		}
	}

	for i := range buckets {
		if buckets[i].Orders > 0 {
			buckets[i].AvgCost = buckets[i].Cost.Div(decimal.NewFromInt(int64(buckets[i].Orders)))
		}
	}
	return buckets
}
