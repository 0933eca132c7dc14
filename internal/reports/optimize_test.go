package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stocklens-erp/stocklens/internal/inventory"
)

func TestSuggestOptimizations(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, -80)

	products := []inventory.Product{
		{ID: 1, Code: "LOW-MIN", StockCurrent: 50, StockMin: 10},
		{ID: 2, Code: "TUNED", StockCurrent: 200, StockMin: 100},
		{ID: 3, Code: "IDLE", StockCurrent: 80, StockMin: 20},
	}

	var movements []inventory.Movement
	// Product 1 consumes 1/day, so the suggested minimum triples the current.
	movements = append(movements, outMovements(1, 9, 10, start)...)
	// Product 2 consumes 3.5/day; ceil(105) sits inside the 20% band of 100.
	movements = append(movements, outMovements(2, 5, 63, start)...)

	suggestions := SuggestOptimizations(products, movements, now)
	require.Len(t, suggestions, 1)

	s := suggestions[0]
	require.Equal(t, int64(1), s.Product.ID)
	require.InDelta(t, 1, s.AverageDailyConsumption, 0.0001)
	require.InDelta(t, 30, s.SuggestedStockMin, 0.0001)
	require.InDelta(t, 60, s.SuggestedStockMax, 0.0001)
	require.InDelta(t, 0.9, s.Confidence, 0.0001)
	require.Equal(t, ConfidenceHigh, s.Tier)
}

func TestSuggestOptimizationsOrdersByConfidence(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, -80)

	products := []inventory.Product{
		{ID: 1, StockCurrent: 50, StockMin: 5},
		{ID: 2, StockCurrent: 50, StockMin: 5},
	}

	var movements []inventory.Movement
	movements = append(movements, outMovements(1, 3, 30, start)...)
	movements = append(movements, outMovements(2, 8, 30, start)...)

	suggestions := SuggestOptimizations(products, movements, now)
	require.Len(t, suggestions, 2)
	require.Equal(t, int64(2), suggestions[0].Product.ID)
	require.Equal(t, ConfidenceHigh, suggestions[0].Tier)
	require.Equal(t, int64(1), suggestions[1].Product.ID)
	require.Equal(t, ConfidenceLow, suggestions[1].Tier)
}

func TestConfidenceTierBoundaries(t *testing.T) {
	require.Equal(t, ConfidenceHigh, confidenceTier(0.7))
	require.Equal(t, ConfidenceMedium, confidenceTier(0.69))
	require.Equal(t, ConfidenceMedium, confidenceTier(0.4))
	require.Equal(t, ConfidenceLow, confidenceTier(0.39))
}
