package reports

import (
	"math"
	"sort"
	"time"

	"github.com/stocklens-erp/stocklens/internal/inventory"
)

// RotationCategory tiers a product by estimated days of rotation.
type RotationCategory string

const (
	// RotationFast means stock turns over within 30 days.
	RotationFast RotationCategory = "FAST"
	// RotationMedium means stock turns over within 60 days.
	RotationMedium RotationCategory = "MEDIUM"
	// RotationSlow means stock turns over within 90 days.
	RotationSlow RotationCategory = "SLOW"
	// RotationNone means no detectable rotation inside the window.
	RotationNone RotationCategory = "NONE"
)

// RotationItem is the rotation estimate for one product. DaysOfRotation is
// already boundary-mapped: unbounded rotation reports as 0 with category NONE.
type RotationItem struct {
	Product                 inventory.Product
	TotalConsumed           float64
	AverageDailyConsumption float64
	DaysOfRotation          float64
	Category                RotationCategory
}

// RotationAnalysis is the categorization result for one trailing window.
type RotationAnalysis struct {
	Period        Period
	From          time.Time
	To            time.Time
	Items         []RotationItem
	CategoryCount map[RotationCategory]int
}

// CategorizeRotation sums OUT movements inside [from, to] per product and
// tiers each product by how long current stock lasts at that rate. Movements
// outside the window are ignored; the caller fetches a range at least as wide.
func CategorizeRotation(products []inventory.Product, movements []inventory.Movement, period Period, from, to time.Time) RotationAnalysis {
	analysis := RotationAnalysis{
		Period: period,
		From:   from,
		To:     to,
		CategoryCount: map[RotationCategory]int{
			RotationFast:   0,
			RotationMedium: 0,
			RotationSlow:   0,
			RotationNone:   0,
		},
	}

	inWindow := make([]inventory.Movement, 0, len(movements))
	for _, m := range movements {
		if m.MovementDate.Before(from) || m.MovementDate.After(to) {
			continue
		}
		inWindow = append(inWindow, m)
	}
	totals, _ := sumOutByProduct(inWindow)
	days := daysInWindow(from, to)

	items := make([]RotationItem, 0, len(products))
	for _, p := range products {
		consumed := totals[p.ID]
		avg := averageDailyConsumption(consumed, days)
		rotation := daysOfRotation(p.StockCurrent, avg)

		item := RotationItem{
			Product:                 p,
			TotalConsumed:           consumed,
			AverageDailyConsumption: avg,
			Category:                rotationCategory(rotation),
		}
		if !math.IsInf(rotation, 1) {
			item.DaysOfRotation = rotation
		}
		analysis.CategoryCount[item.Category]++
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].TotalConsumed > items[j].TotalConsumed
	})
	analysis.Items = items
	return analysis
}

func rotationCategory(days float64) RotationCategory {
	switch {
	case math.IsInf(days, 1):
		return RotationNone
	case days <= 30:
		return RotationFast
	case days <= 60:
		return RotationMedium
	case days <= 90:
		return RotationSlow
	default:
		return RotationNone
	}
}
