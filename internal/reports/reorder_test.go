package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stocklens-erp/stocklens/internal/inventory"
)

func outMovements(productID int64, count int, each float64, start time.Time) []inventory.Movement {
	movements := make([]inventory.Movement, 0, count)
	for i := 0; i < count; i++ {
		movements = append(movements, inventory.Movement{
			ProductID:    productID,
			Type:         inventory.MovementOut,
			Quantity:     each,
			MovementDate: start.AddDate(0, 0, i),
		})
	}
	return movements
}

func TestPredictReorders(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, -80)

	products := []inventory.Product{
		{ID: 1, Code: "WARN", StockCurrent: 50, StockMin: 40},
		{ID: 2, Code: "URGENT", StockCurrent: 44, StockMin: 40},
		{ID: 3, Code: "CRIT", StockCurrent: 30, StockMin: 40},
		{ID: 4, Code: "FAR", StockCurrent: 100, StockMin: 40},
		{ID: 5, Code: "IDLE", StockCurrent: 10, StockMin: 40},
	}

	var movements []inventory.Movement
	// 2 units per day over the 90 day window for every consuming product.
	movements = append(movements, outMovements(1, 9, 20, start)...)
	movements = append(movements, outMovements(2, 18, 10, start)...)
	movements = append(movements, outMovements(3, 9, 20, start)...)
	movements = append(movements, outMovements(4, 9, 20, start)...)

	predictions := PredictReorders(products, movements, 7, now)
	require.Len(t, predictions, 2)

	// Most urgent first.
	urgent := predictions[0]
	require.Equal(t, int64(2), urgent.Product.ID)
	require.InDelta(t, 2, urgent.DaysUntilMin, 0.0001)
	require.Equal(t, UrgencyUrgent, urgent.Urgency)
	require.InDelta(t, 40, urgent.SuggestedQuantity, 0.0001)
	require.InDelta(t, 1, urgent.Confidence, 0.0001)

	warn := predictions[1]
	require.Equal(t, int64(1), warn.Product.ID)
	require.InDelta(t, 2, warn.AverageDailyConsumption, 0.0001)
	require.InDelta(t, 5, warn.DaysUntilMin, 0.0001)
	require.Equal(t, UrgencyWarning, warn.Urgency)
	require.Equal(t, now.AddDate(0, 0, 5), warn.PredictedDate)
	require.InDelta(t, 40, warn.SuggestedQuantity, 0.0001)
	require.InDelta(t, 0.9, warn.Confidence, 0.0001)
}

func TestPredictReordersDefaultsHorizon(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, -80)

	products := []inventory.Product{{ID: 1, StockCurrent: 50, StockMin: 40}}
	movements := outMovements(1, 9, 20, start)

	require.Len(t, PredictReorders(products, movements, 0, now), 1)
	require.Empty(t, PredictReorders(products, movements, 4, now))
}

func TestPredictReordersIgnoresOldConsumption(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	products := []inventory.Product{{ID: 1, StockCurrent: 50, StockMin: 40}}
	movements := outMovements(1, 9, 20, now.AddDate(0, 0, -200))

	require.Empty(t, PredictReorders(products, movements, 7, now))
}

func TestConfidenceScoreSaturates(t *testing.T) {
	require.Zero(t, confidenceScore(0))
	require.InDelta(t, 0.5, confidenceScore(5), 0.0001)
	require.InDelta(t, 1, confidenceScore(10), 0.0001)
	require.InDelta(t, 1, confidenceScore(40), 0.0001)
}
