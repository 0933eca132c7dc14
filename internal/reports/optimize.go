package reports

import (
	"math"
	"sort"
	"time"

	"github.com/stocklens-erp/stocklens/internal/inventory"
)

// ConfidenceTier groups optimization suggestions by data sufficiency.
type ConfidenceTier string

const (
	// ConfidenceHigh means the suggestion rests on ample movement history.
	ConfidenceHigh ConfidenceTier = "HIGH"
	// ConfidenceMedium means moderate history.
	ConfidenceMedium ConfidenceTier = "MEDIUM"
	// ConfidenceLow means sparse history.
	ConfidenceLow ConfidenceTier = "LOW"
)

const (
	// coverDays is the stock cover the suggested minimum should provide.
	coverDays = 30
	// suppressionBand suppresses suggestions within 20% of the current
	// minimum; already-well-tuned thresholds produce no noise.
	suppressionBand = 0.2
)

// OptimizationSuggestion proposes new min/max thresholds for one product.
type OptimizationSuggestion struct {
	Product                 inventory.Product
	AverageDailyConsumption float64
	SuggestedStockMin       float64
	SuggestedStockMax       float64
	Confidence              float64
	Tier                    ConfidenceTier
}

// SuggestOptimizations derives EOQ-style min/max thresholds from the trailing
// 90 days of outbound consumption. A suggestion is emitted only when the new
// minimum differs from the current one by more than the suppression band.
func SuggestOptimizations(products []inventory.Product, movements []inventory.Movement, now time.Time) []OptimizationSuggestion {
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

	suggestions := make([]OptimizationSuggestion, 0)
	for _, p := range products {
		avg := averageDailyConsumption(totals[p.ID], days)
		if avg <= 0 {
			continue
		}
		suggestedMin := math.Ceil(avg * coverDays)
		if math.Abs(suggestedMin-p.StockMin) <= p.StockMin*suppressionBand {
			continue
		}

		confidence := confidenceScore(counts[p.ID])
		suggestions = append(suggestions, OptimizationSuggestion{
			Product:                 p,
			AverageDailyConsumption: avg,
			SuggestedStockMin:       suggestedMin,
			SuggestedStockMax:       suggestedMin * 2,
			Confidence:              confidence,
			Tier:                    confidenceTier(confidence),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	return suggestions
}

func confidenceTier(confidence float64) ConfidenceTier {
	switch {
	case confidence >= 0.7:
		return ConfidenceHigh
	case confidence >= 0.4:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
