package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stocklens-erp/stocklens/internal/inventory"
)

func TestCategorizeRotation(t *testing.T) {
	to := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
	from := to.AddDate(0, 0, -30)

	products := []inventory.Product{
		{ID: 1, Code: "FAST", StockCurrent: 90},
		{ID: 2, Code: "SLOW", StockCurrent: 800},
		{ID: 3, Code: "IDLE", StockCurrent: 40},
	}
	movements := []inventory.Movement{
		{ProductID: 1, Type: inventory.MovementOut, Quantity: 45, MovementDate: from.AddDate(0, 0, 5)},
		{ProductID: 1, Type: inventory.MovementOut, Quantity: 45, MovementDate: from.AddDate(0, 0, 20)},
		{ProductID: 2, Type: inventory.MovementOut, Quantity: 300, MovementDate: from.AddDate(0, 0, 10)},
		// Inbound and out-of-window movements must not count.
		{ProductID: 1, Type: inventory.MovementIn, Quantity: 500, MovementDate: from.AddDate(0, 0, 1)},
		{ProductID: 3, Type: inventory.MovementOut, Quantity: 40, MovementDate: from.AddDate(0, 0, -2)},
	}

	analysis := CategorizeRotation(products, movements, PeriodMonth, from, to)
	require.Len(t, analysis.Items, 3)

	// Sorted by consumption, so the slow mover with 300 units leads.
	slow := analysis.Items[0]
	require.Equal(t, int64(2), slow.Product.ID)
	require.InDelta(t, 300, slow.TotalConsumed, 0.0001)
	require.InDelta(t, 10, slow.AverageDailyConsumption, 0.0001)
	require.InDelta(t, 80, slow.DaysOfRotation, 0.0001)
	require.Equal(t, RotationSlow, slow.Category)

	fast := analysis.Items[1]
	require.Equal(t, int64(1), fast.Product.ID)
	require.InDelta(t, 90, fast.TotalConsumed, 0.0001)
	require.InDelta(t, 3, fast.AverageDailyConsumption, 0.0001)
	require.InDelta(t, 30, fast.DaysOfRotation, 0.0001)
	require.Equal(t, RotationFast, fast.Category)

	idle := analysis.Items[2]
	require.Equal(t, int64(3), idle.Product.ID)
	require.Zero(t, idle.TotalConsumed)
	require.Zero(t, idle.DaysOfRotation)
	require.Equal(t, RotationNone, idle.Category)

	require.Equal(t, 1, analysis.CategoryCount[RotationFast])
	require.Equal(t, 0, analysis.CategoryCount[RotationMedium])
	require.Equal(t, 1, analysis.CategoryCount[RotationSlow])
	require.Equal(t, 1, analysis.CategoryCount[RotationNone])
}

func TestCategorizeRotationZeroStock(t *testing.T) {
	to := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
	from := to.AddDate(0, 0, -30)

	products := []inventory.Product{{ID: 1, StockCurrent: 0}}
	movements := []inventory.Movement{
		{ProductID: 1, Type: inventory.MovementOut, Quantity: 60, MovementDate: from.AddDate(0, 0, 15)},
	}

	analysis := CategorizeRotation(products, movements, PeriodMonth, from, to)
	require.Len(t, analysis.Items, 1)

	// Zero stock at positive consumption rotates instantly, not never.
	item := analysis.Items[0]
	require.Zero(t, item.DaysOfRotation)
	require.Equal(t, RotationFast, item.Category)
}

func TestRotationCategoryBoundaries(t *testing.T) {
	require.Equal(t, RotationFast, rotationCategory(30))
	require.Equal(t, RotationMedium, rotationCategory(30.5))
	require.Equal(t, RotationMedium, rotationCategory(60))
	require.Equal(t, RotationSlow, rotationCategory(90))
	require.Equal(t, RotationNone, rotationCategory(90.1))
}
