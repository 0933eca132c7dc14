package reports

import (
	"math"
	"sort"
	"time"

	"github.com/stocklens-erp/stocklens/internal/inventory"
)

// MovementDay aggregates movement volume for one calendar day.
type MovementDay struct {
	Day    time.Time
	Count  int
	Volume float64
}

// MovementSummary aggregates a movement range in memory. The legacy client
// queried the store once per calendar day to build this; here one range fetch
// feeds the whole summary.
type MovementSummary struct {
	From             time.Time
	To               time.Time
	Count            int
	VolumeByType     map[inventory.MovementType]float64
	CountByType      map[inventory.MovementType]int
	AdjustmentVolume float64
	Days             []MovementDay
}

// SummarizeMovements buckets movements by day and type. Adjustment volume
// accumulates the magnitude of ADJUSTMENT quantities, which may be negative.
func SummarizeMovements(movements []inventory.Movement, from, to time.Time) MovementSummary {
	summary := MovementSummary{
		From:         from,
		To:           to,
		VolumeByType: make(map[inventory.MovementType]float64),
		CountByType:  make(map[inventory.MovementType]int),
	}

	dayIndex := make(map[time.Time]int)
	for _, m := range movements {
		if m.MovementDate.Before(from) || m.MovementDate.After(to) {
			continue
		}
		summary.Count++
		volume := m.Quantity
		if m.Type == inventory.MovementAdjustment {
			volume = math.Abs(m.Quantity)
			summary.AdjustmentVolume += volume
		}
		summary.VolumeByType[m.Type] += volume
		summary.CountByType[m.Type]++

		day := m.MovementDate.UTC().Truncate(24 * time.Hour)
		idx, ok := dayIndex[day]
		if !ok {
			idx = len(summary.Days)
			dayIndex[day] = idx
			summary.Days = append(summary.Days, MovementDay{Day: day})
		}
		summary.Days[idx].Count++
		summary.Days[idx].Volume += volume
	}

	sort.SliceStable(summary.Days, func(i, j int) bool {
		return summary.Days[i].Day.Before(summary.Days[j].Day)
	})
	return summary
}
