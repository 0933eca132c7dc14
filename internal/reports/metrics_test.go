package reports

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stocklens-erp/stocklens/internal/inventory"
)

func TestDaysInWindowClampsToOne(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	require.InDelta(t, 1, daysInWindow(now, now), 0.0001)
	require.InDelta(t, 1, daysInWindow(now, now.Add(2*time.Hour)), 0.0001)
	require.InDelta(t, 30, daysInWindow(now.AddDate(0, 0, -30), now), 0.0001)
}

func TestDaysOfRotationSentinel(t *testing.T) {
	require.True(t, math.IsInf(daysOfRotation(100, 0), 1))
	require.InDelta(t, 50, daysOfRotation(100, 2), 0.0001)
	require.InDelta(t, 0, daysOfRotation(0, 2), 0.0001)
}

func TestPercentageAndRatioGuards(t *testing.T) {
	require.Zero(t, percentage(10, 0))
	require.InDelta(t, 25, percentage(1, 4), 0.0001)
	require.Zero(t, ratio(10, 0))
	require.InDelta(t, 2.5, ratio(5, 2), 0.0001)
}

func TestSumOutByProductIgnoresOtherTypes(t *testing.T) {
	movements := []inventory.Movement{
		{ProductID: 1, Type: inventory.MovementOut, Quantity: 5},
		{ProductID: 1, Type: inventory.MovementOut, Quantity: 3},
		{ProductID: 1, Type: inventory.MovementIn, Quantity: 50},
		{ProductID: 2, Type: inventory.MovementAdjustment, Quantity: -4},
	}

	totals, counts := sumOutByProduct(movements)
	require.InDelta(t, 8, totals[1], 0.0001)
	require.Equal(t, 2, counts[1])
	require.Zero(t, totals[2])
	require.Zero(t, counts[2])
}
