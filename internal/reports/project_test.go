package reports

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/stocklens-erp/stocklens/internal/inventory"
)

func TestProjectLowStockSkipsNormalRows(t *testing.T) {
	products := []inventory.Product{
		{ID: 1, Code: "CRIT", Name: "Crítico", StockCurrent: 5, StockMin: 10},
		{ID: 2, Code: "OK", Name: "Tranquilo", StockCurrent: 100, StockMin: 10},
	}
	alerts, summary := TierStockAlerts(products)

	proj := projectLowStock(language.Spanish, alerts, summary)
	require.Equal(t, "Stock bajo", proj.Title)
	require.Len(t, proj.Table.Rows, 1)
	require.Equal(t, "CRIT", proj.Table.Rows[0]["Código"])
	require.InDelta(t, 1, proj.KPIs["critical"], 0.0001)
	require.InDelta(t, 1, proj.KPIs["normal"], 0.0001)
}

func TestProjectABCLocalizedHeaders(t *testing.T) {
	classification := ClassifyABC([]inventory.Product{
		{ID: 1, Code: "P1", Name: "Uno", StockCurrent: 2, CostPrice: 50},
	})

	es := projectABC(language.Spanish, classification)
	require.Contains(t, es.Table.Headers, "Código")
	require.Contains(t, es.Table.Headers, "% acumulado")

	en := projectABC(language.English, classification)
	require.Contains(t, en.Table.Headers, "Code")
	require.Contains(t, en.Table.Headers, "Cumulative %")
	require.Equal(t, "ABC classification", en.Title)

	// KPIs never depend on the locale.
	require.Equal(t, es.KPIs, en.KPIs)
}

func TestProjectMovementsCharts(t *testing.T) {
	summary := MovementSummary{
		Count:        3,
		VolumeByType: map[inventory.MovementType]float64{inventory.MovementIn: 10, inventory.MovementOut: 4},
		CountByType:  map[inventory.MovementType]int{inventory.MovementIn: 2, inventory.MovementOut: 1},
	}

	proj := projectMovements(language.Spanish, summary)
	require.Len(t, proj.Charts, 2)
	pie := proj.Charts[1]
	require.Equal(t, ChartPie, pie.Type)
	require.Equal(t, []string{"IN", "OUT", "ADJUSTMENT", "TRANSFER"}, pie.Labels)
	require.InDelta(t, 10, proj.KPIs["volumeIN"], 0.0001)
}
