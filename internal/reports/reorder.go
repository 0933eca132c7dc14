package reports

import (
	"math"
	"sort"
	"time"

	"github.com/stocklens-erp/stocklens/internal/inventory"
)

// Urgency bands a reorder prediction by how soon the minimum is crossed.
type Urgency string

const (
	// UrgencyUrgent means the minimum is crossed within 3 days.
	UrgencyUrgent Urgency = "URGENT"
	// UrgencyWarning means the minimum is crossed within the horizon.
	UrgencyWarning Urgency = "WARNING"
)

const (
	// DefaultDaysAhead is the default prediction horizon.
	DefaultDaysAhead = 7
	// reorderWindowDays is the trailing consumption window for predictions.
	reorderWindowDays = 90

	// confidenceFullSample is the movement count at which the confidence
	// score saturates at 1.0. It is a data-sufficiency proxy, not a
	// statistical confidence interval; treat it as a tunable constant.
	confidenceFullSample = 10
)

// ReorderPrediction forecasts one product crossing its minimum threshold.
type ReorderPrediction struct {
	Product                 inventory.Product
	AverageDailyConsumption float64
	DaysUntilMin            float64
	PredictedDate           time.Time
	SuggestedQuantity       float64
	Confidence              float64
	Urgency                 Urgency
}

// PredictReorders emits a prediction for every product that has not yet
// crossed its minimum but will within daysAhead at the observed consumption
// rate. Products already at or below the minimum are excluded; they belong to
// the low-stock report. Results are ordered most urgent first.
func PredictReorders(products []inventory.Product, movements []inventory.Movement, daysAhead int, now time.Time) []ReorderPrediction {
	if daysAhead <= 0 {
		daysAhead = DefaultDaysAhead
	}
	from := now.AddDate(0, 0, -reorderWindowDays)
	days := daysInWindow(from, now)

	windowed := make([]inventory.Movement, 0, len(movements))
	for _, m := range movements {
		if m.MovementDate.Before(from) || m.MovementDate.After(now) {
			continue
		}
		windowed = append(windowed, m)
	}
	totals, counts := sumOutByProduct(windowed)

	predictions := make([]ReorderPrediction, 0)
	for _, p := range products {
		avg := averageDailyConsumption(totals[p.ID], days)
		if avg <= 0 {
			continue
		}
		daysUntilMin := (p.StockCurrent - p.StockMin) / avg
		if daysUntilMin <= 0 || daysUntilMin > float64(daysAhead) {
			continue
		}

		urgency := UrgencyWarning
		if daysUntilMin <= 3 {
			urgency = UrgencyUrgent
		}
		predictions = append(predictions, ReorderPrediction{
			Product:                 p,
			AverageDailyConsumption: avg,
			DaysUntilMin:            daysUntilMin,
			PredictedDate:           now.AddDate(0, 0, int(math.Ceil(daysUntilMin))),
			SuggestedQuantity:       math.Max(p.StockMin*2-p.StockCurrent, p.StockMin),
			Confidence:              confidenceScore(counts[p.ID]),
			Urgency:                 urgency,
		})
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].DaysUntilMin < predictions[j].DaysUntilMin
	})
	return predictions
}

// confidenceScore maps an observed movement count to a 0-1 data-sufficiency
// score, saturating at confidenceFullSample movements.
func confidenceScore(movementCount int) float64 {
	score := float64(movementCount) / confidenceFullSample
	if score > 1 {
		return 1
	}
	return score
}
