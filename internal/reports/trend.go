package reports

import (
	"sort"
	"time"

	"github.com/stocklens-erp/stocklens/internal/inventory"
)

// TrendDirection classifies consumption development over a period.
type TrendDirection string

const (
	// TrendIncreasing means the second half consumed over 10% more.
	TrendIncreasing TrendDirection = "INCREASING"
	// TrendDecreasing means the second half consumed over 10% less.
	TrendDecreasing TrendDirection = "DECREASING"
	// TrendStable means consumption stayed within the 10% band.
	TrendStable TrendDirection = "STABLE"
)

const (
	// trendTopProducts caps the retained product trend list.
	trendTopProducts = 20
	// dailyTopProducts caps the per-day breakdown used by charts.
	dailyTopProducts = 5
)

// ProductShare is one product's contribution inside a day bucket.
type ProductShare struct {
	ProductID int64
	Name      string
	Quantity  float64
}

// DayBucket aggregates consumption for one calendar day.
type DayBucket struct {
	Day           time.Time
	TotalConsumed float64
	TopProducts   []ProductShare
}

// ProductTrend sums one product's consumption across the period and tags its
// direction by comparing the two period halves.
type ProductTrend struct {
	ProductID     int64
	Name          string
	TotalConsumed float64
	FirstHalf     float64
	SecondHalf    float64
	Direction     TrendDirection
}

// TrendAnalysis is the full consumption trend result.
type TrendAnalysis struct {
	Period        Period
	From          time.Time
	To            time.Time
	Days          []DayBucket
	TotalConsumed float64
	Products      []ProductTrend
}

// AnalyzeConsumption buckets OUT movements by calendar day (single range
// fetch, in-memory bucketing; never one query per day) and derives per-product
// trends by splitting the period at its midpoint.
func AnalyzeConsumption(products []inventory.Product, movements []inventory.Movement, period Period, from, to time.Time) TrendAnalysis {
	analysis := TrendAnalysis{Period: period, From: from, To: to}

	names := make(map[int64]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	midpoint := from.Add(to.Sub(from) / 2)
	dayTotals := make(map[time.Time]float64)
	dayProducts := make(map[time.Time]map[int64]float64)
	trends := make(map[int64]*ProductTrend)

	for _, m := range movements {
		if m.Type != inventory.MovementOut {
			continue
		}
		if m.MovementDate.Before(from) || m.MovementDate.After(to) {
			continue
		}
		day := m.MovementDate.UTC().Truncate(24 * time.Hour)
		dayTotals[day] += m.Quantity
		if dayProducts[day] == nil {
			dayProducts[day] = make(map[int64]float64)
		}
		dayProducts[day][m.ProductID] += m.Quantity

		trend, ok := trends[m.ProductID]
		if !ok {
			trend = &ProductTrend{ProductID: m.ProductID, Name: names[m.ProductID]}
			trends[m.ProductID] = trend
		}
		trend.TotalConsumed += m.Quantity
		if m.MovementDate.Before(midpoint) {
			trend.FirstHalf += m.Quantity
		} else {
			trend.SecondHalf += m.Quantity
		}
		analysis.TotalConsumed += m.Quantity
	}

	days := make([]DayBucket, 0, len(dayTotals))
	for day, total := range dayTotals {
		days = append(days, DayBucket{
			Day:           day,
			TotalConsumed: total,
			TopProducts:   topShares(dayProducts[day], names, dailyTopProducts),
		})
	}
	sort.SliceStable(days, func(i, j int) bool { return days[i].Day.Before(days[j].Day) })
	analysis.Days = days

	productTrends := make([]ProductTrend, 0, len(trends))
	for _, trend := range trends {
		trend.Direction = trendDirection(trend.FirstHalf, trend.SecondHalf)
		productTrends = append(productTrends, *trend)
	}
	sort.SliceStable(productTrends, func(i, j int) bool {
		return productTrends[i].TotalConsumed > productTrends[j].TotalConsumed
	})
	if len(productTrends) > trendTopProducts {
		productTrends = productTrends[:trendTopProducts]
	}
	analysis.Products = productTrends
	return analysis
}

func trendDirection(firstHalf, secondHalf float64) TrendDirection {
	switch {
	case secondHalf > firstHalf*1.1:
		return TrendIncreasing
	case secondHalf < firstHalf*0.9:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

func topShares(quantities map[int64]float64, names map[int64]string, limit int) []ProductShare {
	shares := make([]ProductShare, 0, len(quantities))
	for id, qty := range quantities {
		shares = append(shares, ProductShare{ProductID: id, Name: names[id], Quantity: qty})
	}
	sort.SliceStable(shares, func(i, j int) bool { return shares[i].Quantity > shares[j].Quantity })
	if len(shares) > limit {
		shares = shares[:limit]
	}
	return shares
}
