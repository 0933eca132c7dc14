package reports

import (
	"math"
	"sort"

	"github.com/stocklens-erp/stocklens/internal/inventory"
)

// AlertLevel tiers a product by how close current stock sits to its minimum.
type AlertLevel string

const (
	// AlertCritical means stock already fell below the minimum.
	AlertCritical AlertLevel = "CRITICAL"
	// AlertHigh means stock sits within 15% above the minimum.
	AlertHigh AlertLevel = "HIGH"
	// AlertMedium means stock sits within 50% above the minimum.
	AlertMedium AlertLevel = "MEDIUM"
	// AlertNormal means stock is comfortably above the minimum.
	AlertNormal AlertLevel = "NORMAL"
)

const (
	highBandFactor   = 1.15
	mediumBandFactor = 1.5
)

// StockAlert is the tiering result for one product. Depletion and reorder
// fields are populated for critical products only.
type StockAlert struct {
	Product            inventory.Product
	Level              AlertLevel
	DaysUntilDepletion int
	SuggestedReorder   float64
}

// AlertSummary counts products per tier.
type AlertSummary struct {
	Critical int
	High     int
	Medium   int
	Normal   int
}

// TierStockAlerts assigns every product to exactly one alert band. The bands
// are non-overlapping by construction; a product can never satisfy two of
// them at once.
func TierStockAlerts(products []inventory.Product) ([]StockAlert, AlertSummary) {
	alerts := make([]StockAlert, 0, len(products))
	var summary AlertSummary

	for _, p := range products {
		alert := StockAlert{Product: p, Level: alertLevel(p.StockCurrent, p.StockMin)}
		switch alert.Level {
		case AlertCritical:
			summary.Critical++
			alert.DaysUntilDepletion = daysUntilDepletion(p.StockCurrent, p.StockMin)
			alert.SuggestedReorder = math.Max(p.StockMin-p.StockCurrent, p.StockMin*0.5)
		case AlertHigh:
			summary.High++
		case AlertMedium:
			summary.Medium++
		default:
			summary.Normal++
		}
		alerts = append(alerts, alert)
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alertRank(alerts[i].Level) < alertRank(alerts[j].Level)
	})
	return alerts, summary
}

func alertLevel(stockCurrent, stockMin float64) AlertLevel {
	switch {
	case stockCurrent < stockMin:
		return AlertCritical
	case stockCurrent <= stockMin*highBandFactor:
		return AlertHigh
	case stockCurrent <= stockMin*mediumBandFactor:
		return AlertMedium
	default:
		return AlertNormal
	}
}

// daysUntilDepletion estimates how long a critical product lasts, assuming
// the minimum threshold represents 30 days of demand. A zero minimum yields
// no estimate, following the unbounded-rotation rule.
func daysUntilDepletion(stockCurrent, stockMin float64) int {
	rate := stockMin / 30
	days := daysOfRotation(stockCurrent, rate)
	if math.IsInf(days, 1) {
		return 0
	}
	return int(math.Floor(days))
}

func alertRank(level AlertLevel) int {
	switch level {
	case AlertCritical:
		return 0
	case AlertHigh:
		return 1
	case AlertMedium:
		return 2
	default:
		return 3
	}
}
