package reports

import "golang.org/x/text/language"

// The projection layer is the only place locale matters: it selects label
// text for titles, headers and chart captions. Numeric computation never
// reads the locale.

var supportedLocales = []language.Tag{
	language.Spanish,
	language.English,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// MatchLocale resolves a BCP 47 tag (or an empty string) to one of the two
// supported locales. Spanish is the legacy default.
func MatchLocale(tag string) language.Tag {
	if tag == "" {
		return language.Spanish
	}
	_, index, _ := localeMatcher.Match(language.Make(tag))
	return supportedLocales[index]
}

type labelKey string

const (
	labelTitleSummary      labelKey = "title_summary"
	labelTitleABC          labelKey = "title_abc"
	labelTitleRotation     labelKey = "title_rotation"
	labelTitleLowStock     labelKey = "title_low_stock"
	labelTitleReorder      labelKey = "title_reorder"
	labelTitleOptimization labelKey = "title_optimization"
	labelTitleAnomalies    labelKey = "title_anomalies"
	labelTitleTrends       labelKey = "title_trends"
	labelTitleMovements    labelKey = "title_movements"

	labelChartValueByCategory labelKey = "chart_value_by_category"
	labelChartStockByWh       labelKey = "chart_stock_by_warehouse"
	labelChartRotation        labelKey = "chart_rotation"
	labelChartDailyOut        labelKey = "chart_daily_out"
	labelChartMovementTypes   labelKey = "chart_movement_types"
	labelChartSeverity        labelKey = "chart_severity"

	labelColCode       labelKey = "col_code"
	labelColProduct    labelKey = "col_product"
	labelColCategory   labelKey = "col_category"
	labelColWarehouse  labelKey = "col_warehouse"
	labelColStock      labelKey = "col_stock"
	labelColStockMin   labelKey = "col_stock_min"
	labelColValue      labelKey = "col_value"
	labelColPercent    labelKey = "col_percent"
	labelColCumPercent labelKey = "col_cum_percent"
	labelColClass      labelKey = "col_class"
	labelColConsumed   labelKey = "col_consumed"
	labelColAvgDaily   labelKey = "col_avg_daily"
	labelColRotDays    labelKey = "col_rot_days"
	labelColLevel      labelKey = "col_level"
	labelColDepletion  labelKey = "col_depletion"
	labelColReorderQty labelKey = "col_reorder_qty"
	labelColDaysToMin  labelKey = "col_days_to_min"
	labelColDate       labelKey = "col_date"
	labelColConfidence labelKey = "col_confidence"
	labelColUrgency    labelKey = "col_urgency"
	labelColNewMin     labelKey = "col_new_min"
	labelColNewMax     labelKey = "col_new_max"
	labelColBatch      labelKey = "col_batch"
	labelColKind       labelKey = "col_kind"
	labelColSeverity   labelKey = "col_severity"
	labelColDetail     labelKey = "col_detail"
	labelColDay        labelKey = "col_day"
	labelColType       labelKey = "col_type"
	labelColQuantity   labelKey = "col_quantity"
	labelColTrend      labelKey = "col_trend"
	labelColFirstHalf  labelKey = "col_first_half"
	labelColSecondHalf labelKey = "col_second_half"

	labelTotal labelKey = "total"
)

var labelsES = map[labelKey]string{
	labelTitleSummary:      "Resumen de inventario",
	labelTitleABC:          "Clasificación ABC",
	labelTitleRotation:     "Rotación de stock",
	labelTitleLowStock:     "Stock bajo",
	labelTitleReorder:      "Predicción de reposición",
	labelTitleOptimization: "Optimización de stock",
	labelTitleAnomalies:    "Anomalías de lotes",
	labelTitleTrends:       "Tendencias de consumo",
	labelTitleMovements:    "Movimientos",

	labelChartValueByCategory: "Valor por clase",
	labelChartStockByWh:       "Stock por almacén",
	labelChartRotation:        "Productos por rotación",
	labelChartDailyOut:        "Consumo diario",
	labelChartMovementTypes:   "Movimientos por tipo",
	labelChartSeverity:        "Anomalías por severidad",

	labelColCode:       "Código",
	labelColProduct:    "Producto",
	labelColCategory:   "Categoría",
	labelColWarehouse:  "Almacén",
	labelColStock:      "Stock actual",
	labelColStockMin:   "Stock mínimo",
	labelColValue:      "Valor",
	labelColPercent:    "%",
	labelColCumPercent: "% acumulado",
	labelColClass:      "Clase",
	labelColConsumed:   "Consumido",
	labelColAvgDaily:   "Consumo diario",
	labelColRotDays:    "Días de rotación",
	labelColLevel:      "Nivel",
	labelColDepletion:  "Días hasta agotar",
	labelColReorderQty: "Cantidad sugerida",
	labelColDaysToMin:  "Días hasta mínimo",
	labelColDate:       "Fecha prevista",
	labelColConfidence: "Confianza",
	labelColUrgency:    "Urgencia",
	labelColNewMin:     "Mínimo sugerido",
	labelColNewMax:     "Máximo sugerido",
	labelColBatch:      "Lote",
	labelColKind:       "Tipo de anomalía",
	labelColSeverity:   "Severidad",
	labelColDetail:     "Detalle",
	labelColDay:        "Día",
	labelColType:       "Tipo",
	labelColQuantity:   "Cantidad",
	labelColTrend:      "Tendencia",
	labelColFirstHalf:  "Primera mitad",
	labelColSecondHalf: "Segunda mitad",

	labelTotal: "TOTAL",
}

var labelsEN = map[labelKey]string{
	labelTitleSummary:      "Inventory summary",
	labelTitleABC:          "ABC classification",
	labelTitleRotation:     "Stock rotation",
	labelTitleLowStock:     "Low stock",
	labelTitleReorder:      "Reorder prediction",
	labelTitleOptimization: "Stock optimization",
	labelTitleAnomalies:    "Batch anomalies",
	labelTitleTrends:       "Consumption trends",
	labelTitleMovements:    "Movements",

	labelChartValueByCategory: "Value by class",
	labelChartStockByWh:       "Stock by warehouse",
	labelChartRotation:        "Products by rotation",
	labelChartDailyOut:        "Daily consumption",
	labelChartMovementTypes:   "Movements by type",
	labelChartSeverity:        "Anomalies by severity",

	labelColCode:       "Code",
	labelColProduct:    "Product",
	labelColCategory:   "Category",
	labelColWarehouse:  "Warehouse",
	labelColStock:      "Current stock",
	labelColStockMin:   "Minimum stock",
	labelColValue:      "Value",
	labelColPercent:    "%",
	labelColCumPercent: "Cumulative %",
	labelColClass:      "Class",
	labelColConsumed:   "Consumed",
	labelColAvgDaily:   "Daily consumption",
	labelColRotDays:    "Rotation days",
	labelColLevel:      "Level",
	labelColDepletion:  "Days until depletion",
	labelColReorderQty: "Suggested quantity",
	labelColDaysToMin:  "Days until minimum",
	labelColDate:       "Predicted date",
	labelColConfidence: "Confidence",
	labelColUrgency:    "Urgency",
	labelColNewMin:     "Suggested minimum",
	labelColNewMax:     "Suggested maximum",
	labelColBatch:      "Batch",
	labelColKind:       "Anomaly kind",
	labelColSeverity:   "Severity",
	labelColDetail:     "Detail",
	labelColDay:        "Day",
	labelColType:       "Type",
	labelColQuantity:   "Quantity",
	labelColTrend:      "Trend",
	labelColFirstHalf:  "First half",
	labelColSecondHalf: "Second half",

	labelTotal: "TOTAL",
}

func label(loc language.Tag, key labelKey) string {
	if loc == language.English {
		if text, ok := labelsEN[key]; ok {
			return text
		}
	}
	if text, ok := labelsES[key]; ok {
		return text
	}
	return string(key)
}
