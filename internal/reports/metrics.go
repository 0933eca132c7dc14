package reports

import (
	"math"
	"time"

	"github.com/stocklens-erp/stocklens/internal/inventory"
)

// Metric primitives. Every division in the engine funnels through one of
// these guards so that zero-consumption and zero-value datasets stay valid
// business states instead of runtime panics.

// daysInWindow measures the actual elapsed days between from and to, clamped
// to a minimum of one day. Using elapsed time instead of the nominal period
// constant keeps leap-sensitive ranges correct.
func daysInWindow(from, to time.Time) float64 {
	days := to.Sub(from).Hours() / 24
	if days < 1 {
		return 1
	}
	return days
}

// averageDailyConsumption estimates consumption per day over a window.
func averageDailyConsumption(totalConsumed, days float64) float64 {
	if days <= 0 || totalConsumed <= 0 {
		return 0
	}
	return totalConsumed / days
}

// daysOfRotation estimates how many days current stock lasts at the given
// consumption rate. When no consumption was observed the result is +Inf, the
// internal "no rotation" sentinel; it is mapped to 0 only at the output
// boundary so that "no detectable consumption" stays distinguishable from
// "zero stock" inside the computation.
func daysOfRotation(stockCurrent, avgDaily float64) float64 {
	if avgDaily == 0 {
		return math.Inf(1)
	}
	return stockCurrent / avgDaily
}

// percentage returns part/total expressed in percent, 0 when total is 0.
func percentage(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}

// ratio returns num/den, 0 when den is 0.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// sumOutByProduct accumulates OUT-movement quantity and movement count per
// product.
func sumOutByProduct(movements []inventory.Movement) (totals map[int64]float64, counts map[int64]int) {
	totals = make(map[int64]float64)
	counts = make(map[int64]int)
	for _, m := range movements {
		if m.Type != inventory.MovementOut {
			continue
		}
		totals[m.ProductID] += m.Quantity
		counts[m.ProductID]++
	}
	return totals, counts
}

// totalStockValue sums the valuation of all products.
func totalStockValue(products []inventory.Product) float64 {
	var total float64
	for _, p := range products {
		total += p.Value()
	}
	return total
}
