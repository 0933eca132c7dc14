package reports

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/stocklens-erp/stocklens/internal/inventory"
)

// Repository exposes the read-only data access the engine relies on.
type Repository interface {
	ListProducts(ctx context.Context, filter inventory.ProductFilter) ([]inventory.Product, error)
	ListMovements(ctx context.Context, filter inventory.MovementFilter) ([]inventory.Movement, error)
	ListBatches(ctx context.Context, filter inventory.BatchFilter) ([]inventory.Batch, error)
}

// Service is the report assembly facade: a stateless function from
// (type, filters, locale) to an immutable Report. Transient store failures
// are the adapter's concern; the facade performs no retries of its own.
type Service struct {
	repo  Repository
	cache *Cache
	now   func() time.Time
}

// NewService wires a Repository with a Cache helper.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache, now: func() time.Time { return time.Now().UTC() }}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// GenerateReport produces one report snapshot. Filters are validated before
// any data-store call; adapter failures surface as a single wrapped error and
// are never converted into an empty report.
func (s *Service) GenerateReport(ctx context.Context, reportType ReportType, filters Filters, loc language.Tag) (*Report, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	loader := func(ctx context.Context) (interface{}, error) {
		return s.generate(ctx, reportType, filters, loc)
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return value.(*Report), nil
	}

	key, err := s.cache.BuildKey(ctx, cacheKeyParts(reportType, filters, loc)...)
	if err != nil {
		return nil, err
	}
	var report Report
	if err := s.cache.FetchJSON(ctx, key, &report, loader); err != nil {
		return nil, err
	}
	return &report, nil
}

// InvalidateAll bumps the cache version, discarding every cached report.
func (s *Service) InvalidateAll(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

func (s *Service) generate(ctx context.Context, reportType ReportType, filters Filters, loc language.Tag) (*Report, error) {
	now := s.now()

	var proj projection
	switch reportType {
	case ReportInventorySummary:
		filters = defaultWindow(filters, now, 30)
		products, movements, err := s.fetchProductsAndMovements(ctx, filters)
		if err != nil {
			return nil, err
		}
		summary := SummarizeMovements(movements, *filters.DateFrom, *filters.DateTo)
		_, alertSummary := TierStockAlerts(products)
		proj = projectSummary(loc, products, summary, alertSummary)

	case ReportABCClassification:
		products, err := s.fetchProducts(ctx, filters)
		if err != nil {
			return nil, err
		}
		proj = projectABC(loc, ClassifyABC(products))

	case ReportStockRotation:
		period := filters.Period
		if period == "" {
			period = PeriodMonth
		}
		filters = defaultWindow(filters, now, period.Days())
		products, movements, err := s.fetchProductsAndMovements(ctx, filters)
		if err != nil {
			return nil, err
		}
		proj = projectRotation(loc, CategorizeRotation(products, movements, period, *filters.DateFrom, *filters.DateTo))

	case ReportLowStock:
		products, err := s.fetchProducts(ctx, filters)
		if err != nil {
			return nil, err
		}
		alerts, summary := TierStockAlerts(products)
		proj = projectLowStock(loc, alerts, summary)

	case ReportReorderPrediction:
		filters = defaultWindow(filters, now, reorderWindowDays)
		products, movements, err := s.fetchProductsAndMovements(ctx, filters)
		if err != nil {
			return nil, err
		}
		proj = projectReorder(loc, PredictReorders(products, movements, filters.DaysAhead, now))

	case ReportStockOptimization:
		filters = defaultWindow(filters, now, reorderWindowDays)
		products, movements, err := s.fetchProductsAndMovements(ctx, filters)
		if err != nil {
			return nil, err
		}
		proj = projectOptimization(loc, SuggestOptimizations(products, movements, now))

	case ReportBatchAnomalies:
		batches, err := s.repo.ListBatches(ctx, inventory.BatchFilter{ProductID: filters.ProductID})
		if err != nil {
			return nil, fmt.Errorf("reports: fetch batches: %w", err)
		}
		proj = projectAnomalies(loc, DetectBatchAnomalies(batches, now))

	case ReportConsumptionTrends:
		period := filters.Period
		if period == "" {
			period = PeriodMonth
		}
		filters = defaultWindow(filters, now, period.Days())
		products, movements, err := s.fetchProductsAndMovements(ctx, filters)
		if err != nil {
			return nil, err
		}
		proj = projectTrends(loc, AnalyzeConsumption(products, movements, period, *filters.DateFrom, *filters.DateTo))

	case ReportMovements:
		filters = defaultWindow(filters, now, 30)
		movements, err := s.fetchMovements(ctx, filters)
		if err != nil {
			return nil, err
		}
		proj = projectMovements(loc, SummarizeMovements(movements, *filters.DateFrom, *filters.DateTo))

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownReportType, reportType)
	}

	return &Report{
		ID:          uuid.New(),
		Type:        reportType,
		Title:       proj.Title,
		GeneratedAt: now,
		Filters:     filters,
		KPIs:        proj.KPIs,
		Charts:      proj.Charts,
		TableData:   proj.Table,
	}, nil
}

// fetchProductsAndMovements issues the two adapter calls concurrently; a
// report never needs more than one fetch per collection.
func (s *Service) fetchProductsAndMovements(ctx context.Context, filters Filters) ([]inventory.Product, []inventory.Movement, error) {
	var (
		products  []inventory.Product
		movements []inventory.Movement
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.repo.ListProducts(gctx, productFilter(filters))
		return err
	})
	g.Go(func() error {
		var err error
		movements, err = s.repo.ListMovements(gctx, movementFilter(filters))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("reports: fetch data: %w", err)
	}
	return products, movements, nil
}

func (s *Service) fetchProducts(ctx context.Context, filters Filters) ([]inventory.Product, error) {
	products, err := s.repo.ListProducts(ctx, productFilter(filters))
	if err != nil {
		return nil, fmt.Errorf("reports: fetch products: %w", err)
	}
	return products, nil
}

func (s *Service) fetchMovements(ctx context.Context, filters Filters) ([]inventory.Movement, error) {
	movements, err := s.repo.ListMovements(ctx, movementFilter(filters))
	if err != nil {
		return nil, fmt.Errorf("reports: fetch movements: %w", err)
	}
	return movements, nil
}

// defaultWindow fills missing dates with a trailing window ending now. The
// resolved dates are echoed back on the report so consumers see the window
// that actually applied.
func defaultWindow(filters Filters, now time.Time, days int) Filters {
	if filters.DateTo == nil {
		to := now
		filters.DateTo = &to
	}
	if filters.DateFrom == nil {
		from := filters.DateTo.AddDate(0, 0, -days)
		filters.DateFrom = &from
	}
	return filters
}

func productFilter(filters Filters) inventory.ProductFilter {
	return inventory.ProductFilter{
		Warehouse:       filters.Warehouse,
		Category:        filters.Category,
		ProductID:       filters.ProductID,
		IncludeInactive: filters.IncludeInactive,
	}
}

func movementFilter(filters Filters) inventory.MovementFilter {
	mf := inventory.MovementFilter{
		Warehouse: filters.Warehouse,
		ProductID: filters.ProductID,
		UserID:    filters.UserID,
	}
	if filters.DateFrom != nil {
		mf.From = *filters.DateFrom
	}
	if filters.DateTo != nil {
		mf.To = *filters.DateTo
	}
	return mf
}

func cacheKeyParts(reportType ReportType, filters Filters, loc language.Tag) []string {
	parts := []string{"reports", string(reportType), loc.String(),
		filters.Warehouse, filters.Category,
		strconv.FormatInt(filters.ProductID, 10),
		strconv.FormatInt(filters.UserID, 10),
		string(filters.Period),
		strconv.Itoa(filters.DaysAhead),
		strconv.FormatBool(filters.IncludeInactive),
	}
	if filters.DateFrom != nil {
		parts = append(parts, filters.DateFrom.Format("20060102"))
	} else {
		parts = append(parts, "-")
	}
	if filters.DateTo != nil {
		parts = append(parts, filters.DateTo.Format("20060102"))
	} else {
		parts = append(parts, "-")
	}
	return parts
}
