package reports

import (
	"sort"
	"strconv"

	"golang.org/x/text/language"

	"github.com/stocklens-erp/stocklens/internal/inventory"
)

// projection is the locale-dependent half of a report: labels are chosen
// here, numbers were computed upstream without ever seeing the locale.
type projection struct {
	Title  string
	KPIs   map[string]float64
	Charts []Chart
	Table  TableData
}

func projectSummary(loc language.Tag, products []inventory.Product, summary MovementSummary, alerts AlertSummary) projection {
	kpis := map[string]float64{
		"totalProducts":    float64(len(products)),
		"totalStockValue":  totalStockValue(products),
		"totalMovements":   float64(summary.Count),
		"adjustmentVolume": summary.AdjustmentVolume,
		"criticalProducts": float64(alerts.Critical),
		"inAlertProducts":  float64(alerts.Critical + alerts.High + alerts.Medium),
	}

	stockByWarehouse := make(map[string]float64)
	countByCategory := make(map[string]float64)
	for _, p := range products {
		stockByWarehouse[p.Warehouse] += p.StockCurrent
		category := p.Category
		if category == "" {
			category = "-"
		}
		countByCategory[category]++
	}
	whLabels, whValues := sortedPairs(stockByWarehouse)
	catLabels, catValues := sortedPairs(countByCategory)

	table := NewTable(
		Column{Header: label(loc, labelColCode)},
		Column{Header: label(loc, labelColProduct)},
		Column{Header: label(loc, labelColWarehouse)},
		Column{Header: label(loc, labelColStock), Numeric: true},
		Column{Header: label(loc, labelColValue), Numeric: true},
	).WithTotalLabel(label(loc, labelTotal))
	for _, p := range products {
		table.AddRow(
			TextCell(p.Code),
			TextCell(p.Name),
			TextCell(p.Warehouse),
			NumberCell(p.StockCurrent),
			MoneyCell(p.Value()),
		)
	}

	return projection{
		Title: label(loc, labelTitleSummary),
		KPIs:  kpis,
		Charts: []Chart{
			barChart(label(loc, labelChartStockByWh), label(loc, labelColStock), whLabels, whValues),
			pieChart(label(loc, labelColCategory), catLabels, catValues),
		},
		Table: table.Build(),
	}
}

func projectABC(loc language.Tag, c ABCClassification) projection {
	kpis := map[string]float64{"totalValue": c.TotalValue}
	for _, category := range []ABCCategory{ABCCategoryA, ABCCategoryB, ABCCategoryC} {
		summary := c.Summary[category]
		kpis["count"+string(category)] = float64(summary.Count)
		kpis["value"+string(category)] = summary.Value
	}

	table := NewTable(
		Column{Header: label(loc, labelColCode)},
		Column{Header: label(loc, labelColProduct)},
		Column{Header: label(loc, labelColValue), Numeric: true},
		Column{Header: label(loc, labelColPercent), Numeric: true},
		Column{Header: label(loc, labelColCumPercent)},
		Column{Header: label(loc, labelColClass)},
	).WithTotalLabel(label(loc, labelTotal))
	for _, item := range c.Items {
		table.AddRow(
			TextCell(item.Product.Code),
			TextCell(item.Product.Name),
			MoneyCell(item.Value),
			PercentCell(item.Percentage),
			Cell{Text: strconv.FormatFloat(item.CumulativePercentage, 'f', 1, 64)},
			TextCell(string(item.Category)),
		)
	}

	return projection{
		Title: label(loc, labelTitleABC),
		KPIs:  kpis,
		Charts: []Chart{pieChart(
			label(loc, labelChartValueByCategory),
			[]string{"A", "B", "C"},
			[]float64{c.Summary[ABCCategoryA].Value, c.Summary[ABCCategoryB].Value, c.Summary[ABCCategoryC].Value},
		)},
		Table: table.Build(),
	}
}

func projectRotation(loc language.Tag, analysis RotationAnalysis) projection {
	kpis := map[string]float64{
		"fast":   float64(analysis.CategoryCount[RotationFast]),
		"medium": float64(analysis.CategoryCount[RotationMedium]),
		"slow":   float64(analysis.CategoryCount[RotationSlow]),
		"none":   float64(analysis.CategoryCount[RotationNone]),
	}

	table := NewTable(
		Column{Header: label(loc, labelColCode)},
		Column{Header: label(loc, labelColProduct)},
		Column{Header: label(loc, labelColConsumed), Numeric: true},
		Column{Header: label(loc, labelColAvgDaily)},
		Column{Header: label(loc, labelColRotDays)},
		Column{Header: label(loc, labelColClass)},
	).WithTotalLabel(label(loc, labelTotal))
	for _, item := range analysis.Items {
		table.AddRow(
			TextCell(item.Product.Code),
			TextCell(item.Product.Name),
			NumberCell(item.TotalConsumed),
			Cell{Text: strconv.FormatFloat(item.AverageDailyConsumption, 'f', 2, 64)},
			Cell{Text: strconv.FormatFloat(item.DaysOfRotation, 'f', 1, 64)},
			TextCell(string(item.Category)),
		)
	}

	categories := []RotationCategory{RotationFast, RotationMedium, RotationSlow, RotationNone}
	values := make([]float64, len(categories))
	labels := make([]string, len(categories))
	for i, cat := range categories {
		labels[i] = string(cat)
		values[i] = float64(analysis.CategoryCount[cat])
	}

	return projection{
		Title:  label(loc, labelTitleRotation),
		KPIs:   kpis,
		Charts: []Chart{barChart(label(loc, labelChartRotation), label(loc, labelColProduct), labels, values)},
		Table:  table.Build(),
	}
}

func projectLowStock(loc language.Tag, alerts []StockAlert, summary AlertSummary) projection {
	kpis := map[string]float64{
		"critical": float64(summary.Critical),
		"high":     float64(summary.High),
		"medium":   float64(summary.Medium),
		"normal":   float64(summary.Normal),
	}

	table := NewTable(
		Column{Header: label(loc, labelColCode)},
		Column{Header: label(loc, labelColProduct)},
		Column{Header: label(loc, labelColStock), Numeric: true},
		Column{Header: label(loc, labelColStockMin), Numeric: true},
		Column{Header: label(loc, labelColLevel)},
		Column{Header: label(loc, labelColDepletion)},
		Column{Header: label(loc, labelColReorderQty)},
	)
	for _, alert := range alerts {
		if alert.Level == AlertNormal {
			continue
		}
		depletion, reorder := "", ""
		if alert.Level == AlertCritical {
			depletion = strconv.Itoa(alert.DaysUntilDepletion)
			reorder = formatNumber(alert.SuggestedReorder)
		}
		table.AddRow(
			TextCell(alert.Product.Code),
			TextCell(alert.Product.Name),
			NumberCell(alert.Product.StockCurrent),
			NumberCell(alert.Product.StockMin),
			TextCell(string(alert.Level)),
			TextCell(depletion),
			TextCell(reorder),
		)
	}

	return projection{
		Title: label(loc, labelTitleLowStock),
		KPIs:  kpis,
		Charts: []Chart{pieChart(
			label(loc, labelColLevel),
			[]string{string(AlertCritical), string(AlertHigh), string(AlertMedium), string(AlertNormal)},
			[]float64{float64(summary.Critical), float64(summary.High), float64(summary.Medium), float64(summary.Normal)},
		)},
		Table: table.Build(),
	}
}

func projectReorder(loc language.Tag, predictions []ReorderPrediction) projection {
	var urgent, warning int
	var confidenceSum float64
	for _, p := range predictions {
		if p.Urgency == UrgencyUrgent {
			urgent++
		} else {
			warning++
		}
		confidenceSum += p.Confidence
	}
	kpis := map[string]float64{
		"predictions":   float64(len(predictions)),
		"urgent":        float64(urgent),
		"warning":       float64(warning),
		"avgConfidence": ratio(confidenceSum, float64(len(predictions))),
	}

	table := NewTable(
		Column{Header: label(loc, labelColCode)},
		Column{Header: label(loc, labelColProduct)},
		Column{Header: label(loc, labelColStock), Numeric: true},
		Column{Header: label(loc, labelColDaysToMin)},
		Column{Header: label(loc, labelColDate)},
		Column{Header: label(loc, labelColReorderQty), Numeric: true},
		Column{Header: label(loc, labelColConfidence)},
		Column{Header: label(loc, labelColUrgency)},
	)
	for _, p := range predictions {
		table.AddRow(
			TextCell(p.Product.Code),
			TextCell(p.Product.Name),
			NumberCell(p.Product.StockCurrent),
			Cell{Text: strconv.FormatFloat(p.DaysUntilMin, 'f', 1, 64)},
			TextCell(p.PredictedDate.Format("2006-01-02")),
			NumberCell(p.SuggestedQuantity),
			Cell{Text: strconv.FormatFloat(p.Confidence, 'f', 2, 64)},
			TextCell(string(p.Urgency)),
		)
	}

	return projection{
		Title: label(loc, labelTitleReorder),
		KPIs:  kpis,
		Table: table.Build(),
	}
}

func projectOptimization(loc language.Tag, suggestions []OptimizationSuggestion) projection {
	kpis := map[string]float64{"suggestions": float64(len(suggestions))}
	for _, s := range suggestions {
		switch s.Tier {
		case ConfidenceHigh:
			kpis["highConfidence"]++
		case ConfidenceMedium:
			kpis["mediumConfidence"]++
		default:
			kpis["lowConfidence"]++
		}
	}

	table := NewTable(
		Column{Header: label(loc, labelColCode)},
		Column{Header: label(loc, labelColProduct)},
		Column{Header: label(loc, labelColStockMin), Numeric: true},
		Column{Header: label(loc, labelColNewMin), Numeric: true},
		Column{Header: label(loc, labelColNewMax), Numeric: true},
		Column{Header: label(loc, labelColConfidence)},
	)
	for _, s := range suggestions {
		table.AddRow(
			TextCell(s.Product.Code),
			TextCell(s.Product.Name),
			NumberCell(s.Product.StockMin),
			NumberCell(s.SuggestedStockMin),
			NumberCell(s.SuggestedStockMax),
			TextCell(string(s.Tier)),
		)
	}

	return projection{
		Title: label(loc, labelTitleOptimization),
		KPIs:  kpis,
		Table: table.Build(),
	}
}

func projectAnomalies(loc language.Tag, scan AnomalyScan) projection {
	kpis := map[string]float64{
		"total":    float64(len(scan.Anomalies)),
		"critical": float64(scan.Summary[SeverityCritical]),
		"high":     float64(scan.Summary[SeverityHigh]),
		"medium":   float64(scan.Summary[SeverityMedium]),
	}

	table := NewTable(
		Column{Header: label(loc, labelColBatch)},
		Column{Header: label(loc, labelColProduct)},
		Column{Header: label(loc, labelColKind)},
		Column{Header: label(loc, labelColSeverity)},
		Column{Header: label(loc, labelColDetail)},
	)
	for _, a := range scan.Anomalies {
		table.AddRow(
			TextCell(strconv.FormatInt(a.Batch.ID, 10)),
			TextCell(strconv.FormatInt(a.Batch.ProductID, 10)),
			TextCell(string(a.Kind)),
			TextCell(string(a.Severity)),
			TextCell(a.Detail),
		)
	}

	return projection{
		Title: label(loc, labelTitleAnomalies),
		KPIs:  kpis,
		Charts: []Chart{pieChart(
			label(loc, labelChartSeverity),
			[]string{string(SeverityCritical), string(SeverityHigh), string(SeverityMedium)},
			[]float64{float64(scan.Summary[SeverityCritical]), float64(scan.Summary[SeverityHigh]), float64(scan.Summary[SeverityMedium])},
		)},
		Table: table.Build(),
	}
}

func projectTrends(loc language.Tag, analysis TrendAnalysis) projection {
	kpis := map[string]float64{
		"totalConsumed": analysis.TotalConsumed,
		"activeDays":    float64(len(analysis.Days)),
		"avgPerDay":     ratio(analysis.TotalConsumed, float64(len(analysis.Days))),
	}

	labels := make([]string, len(analysis.Days))
	values := make([]float64, len(analysis.Days))
	for i, day := range analysis.Days {
		labels[i] = day.Day.Format("2006-01-02")
		values[i] = day.TotalConsumed
	}

	table := NewTable(
		Column{Header: label(loc, labelColProduct)},
		Column{Header: label(loc, labelColConsumed), Numeric: true},
		Column{Header: label(loc, labelColFirstHalf), Numeric: true},
		Column{Header: label(loc, labelColSecondHalf), Numeric: true},
		Column{Header: label(loc, labelColTrend)},
	).WithTotalLabel(label(loc, labelTotal))
	for _, trend := range analysis.Products {
		name := trend.Name
		if name == "" {
			name = strconv.FormatInt(trend.ProductID, 10)
		}
		table.AddRow(
			TextCell(name),
			NumberCell(trend.TotalConsumed),
			NumberCell(trend.FirstHalf),
			NumberCell(trend.SecondHalf),
			TextCell(string(trend.Direction)),
		)
	}

	return projection{
		Title:  label(loc, labelTitleTrends),
		KPIs:   kpis,
		Charts: []Chart{barChart(label(loc, labelChartDailyOut), label(loc, labelColConsumed), labels, values)},
		Table:  table.Build(),
	}
}

func projectMovements(loc language.Tag, summary MovementSummary) projection {
	kpis := map[string]float64{
		"totalMovements":   float64(summary.Count),
		"adjustmentVolume": summary.AdjustmentVolume,
	}
	typeLabels := make([]string, 0, len(movementTypes))
	typeValues := make([]float64, 0, len(movementTypes))
	for _, t := range movementTypes {
		kpis["volume"+string(t)] = summary.VolumeByType[t]
		typeLabels = append(typeLabels, string(t))
		typeValues = append(typeValues, summary.VolumeByType[t])
	}

	dayLabels := make([]string, len(summary.Days))
	dayValues := make([]float64, len(summary.Days))
	table := NewTable(
		Column{Header: label(loc, labelColDay)},
		Column{Header: label(loc, labelColQuantity), Numeric: true},
	).WithTotalLabel(label(loc, labelTotal))
	for i, day := range summary.Days {
		dayLabels[i] = day.Day.Format("2006-01-02")
		dayValues[i] = day.Volume
		table.AddRow(TextCell(dayLabels[i]), NumberCell(day.Volume))
	}

	return projection{
		Title: label(loc, labelTitleMovements),
		KPIs:  kpis,
		Charts: []Chart{
			barChart(label(loc, labelChartDailyOut), label(loc, labelColQuantity), dayLabels, dayValues),
			pieChart(label(loc, labelChartMovementTypes), typeLabels, typeValues),
		},
		Table: table.Build(),
	}
}

func sortedPairs(values map[string]float64) ([]string, []float64) {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]float64, len(keys))
	for i, key := range keys {
		out[i] = values[key]
	}
	return keys, out
}
