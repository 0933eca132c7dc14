package reports

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stocklens-erp/stocklens/internal/inventory"
)

// ReportType discriminates the report produced by the facade.
type ReportType string

const (
	// ReportInventorySummary is the general stock dashboard report.
	ReportInventorySummary ReportType = "INVENTORY_SUMMARY"
	// ReportABCClassification is the Pareto value classification.
	ReportABCClassification ReportType = "ABC_CLASSIFICATION"
	// ReportStockRotation is the rotation categorization per product.
	ReportStockRotation ReportType = "STOCK_ROTATION"
	// ReportLowStock lists products at or below alert thresholds.
	ReportLowStock ReportType = "LOW_STOCK"
	// ReportReorderPrediction forecasts products crossing their minimum.
	ReportReorderPrediction ReportType = "REORDER_PREDICTION"
	// ReportStockOptimization suggests min/max threshold adjustments.
	ReportStockOptimization ReportType = "STOCK_OPTIMIZATION"
	// ReportBatchAnomalies flags defective, blocked and expiring batches.
	ReportBatchAnomalies ReportType = "BATCH_ANOMALIES"
	// ReportConsumptionTrends buckets outbound consumption by day.
	ReportConsumptionTrends ReportType = "CONSUMPTION_TRENDS"
	// ReportMovements summarises movement volumes for a date range.
	ReportMovements ReportType = "MOVEMENTS"
)

// Period selects the trailing window used by rotation and trend reports.
type Period string

const (
	// PeriodWeek is a trailing 7 day window.
	PeriodWeek Period = "WEEK"
	// PeriodMonth is a trailing 30 day window.
	PeriodMonth Period = "MONTH"
	// PeriodQuarter is a trailing 90 day window.
	PeriodQuarter Period = "QUARTER"
	// PeriodYear is a trailing 365 day window.
	PeriodYear Period = "YEAR"
)

// Days returns the nominal length of the period in days.
func (p Period) Days() int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodQuarter:
		return 90
	case PeriodYear:
		return 365
	default:
		return 30
	}
}

// Filters is the immutable input narrowing a report. No defaults live here;
// each report type applies its own default window when dates are omitted.
type Filters struct {
	DateFrom        *time.Time
	DateTo          *time.Time
	Warehouse       string
	Category        string
	ProductID       int64
	UserID          int64
	IncludeInactive bool

	// Period applies to rotation and trend reports only.
	Period Period
	// DaysAhead is the reorder prediction horizon; 0 means the default.
	DaysAhead int
}

// Validate fails fast on malformed filters, before any data-store call.
func (f Filters) Validate() error {
	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		return fmt.Errorf("%w: date_from after date_to", ErrInvalidFilters)
	}
	if f.DaysAhead < 0 {
		return fmt.Errorf("%w: days_ahead must not be negative", ErrInvalidFilters)
	}
	switch f.Period {
	case "", PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
	default:
		return fmt.Errorf("%w: unknown period %q", ErrInvalidFilters, f.Period)
	}
	return nil
}

// ChartType enumerates supported chart projections.
type ChartType string

const (
	// ChartBar is a vertical bar chart descriptor.
	ChartBar ChartType = "bar"
	// ChartPie is a pie chart descriptor.
	ChartPie ChartType = "pie"
)

// ChartSeries is one named series of a chart.
type ChartSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Chart describes a renderable chart without prescribing a renderer.
type Chart struct {
	Type   ChartType     `json:"type"`
	Title  string        `json:"title"`
	Labels []string      `json:"labels"`
	Series []ChartSeries `json:"series"`
}

// Row maps a header name to the rendered cell value. Consumers must treat
// TableData.Headers as the column order and missing cells as empty strings.
type Row map[string]string

// TableData is the tabular projection of a report.
type TableData struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
	Totals  Row      `json:"totals,omitempty"`
}

// Report is the immutable result of one generation run. It is a snapshot, not
// a live view; callers must never mutate it.
type Report struct {
	ID          uuid.UUID          `json:"id"`
	Type        ReportType         `json:"type"`
	Title       string             `json:"title"`
	GeneratedAt time.Time          `json:"generatedAt"`
	Filters     Filters            `json:"filters"`
	KPIs        map[string]float64 `json:"kpis"`
	Charts      []Chart            `json:"charts"`
	TableData   TableData          `json:"tableData"`
}

var (
	// ErrInvalidFilters indicates malformed report filters.
	ErrInvalidFilters = errors.New("reports: invalid filters")
	// ErrUnknownReportType indicates an unsupported report type.
	ErrUnknownReportType = errors.New("reports: unknown report type")
)

// movementTypes lists the types surfaced by the movements report, in display
// order.
var movementTypes = []inventory.MovementType{
	inventory.MovementIn,
	inventory.MovementOut,
	inventory.MovementAdjustment,
	inventory.MovementTransfer,
}
