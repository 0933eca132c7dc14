package reports

import (
	"context"
	"fmt"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/stocklens-erp/stocklens/internal/inventory"
)

type mockRepo struct {
	products      []inventory.Product
	movements     []inventory.Movement
	batches       []inventory.Batch
	productErr    error
	movementErr   error
	productCalls  int
	movementCalls int
	batchCalls    int
}

func (m *mockRepo) ListProducts(ctx context.Context, filter inventory.ProductFilter) ([]inventory.Product, error) {
	m.productCalls++
	return m.products, m.productErr
}

func (m *mockRepo) ListMovements(ctx context.Context, filter inventory.MovementFilter) ([]inventory.Movement, error) {
	m.movementCalls++
	return m.movements, m.movementErr
}

func (m *mockRepo) ListBatches(ctx context.Context, filter inventory.BatchFilter) ([]inventory.Batch, error) {
	m.batchCalls++
	return m.batches, nil
}

func newTestService(t *testing.T, repo Repository) (*Service, func()) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCache(client, time.Minute)
	svc := NewService(repo, cache)
	svc.WithNow(func() time.Time {
		return time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	})
	return svc, func() {
		_ = client.Close()
		mr.Close()
	}
}

func TestGenerateReportCaches(t *testing.T) {
	repo := &mockRepo{
		products: []inventory.Product{
			{ID: 1, Code: "A-1", Name: "Uno", StockCurrent: 10, StockMin: 5, CostPrice: 3, Warehouse: "central"},
		},
	}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	ctx := context.Background()
	report, err := svc.GenerateReport(ctx, ReportInventorySummary, Filters{}, language.Spanish)
	require.NoError(t, err)
	require.Equal(t, ReportInventorySummary, report.Type)
	require.Equal(t, "Resumen de inventario", report.Title)
	require.InDelta(t, 1, report.KPIs["totalProducts"], 0.0001)
	require.InDelta(t, 30, report.KPIs["totalStockValue"], 0.0001)
	require.Equal(t, 1, repo.productCalls)
	require.Equal(t, 1, repo.movementCalls)

	// Second call must come from cache.
	cached, err := svc.GenerateReport(ctx, ReportInventorySummary, Filters{}, language.Spanish)
	require.NoError(t, err)
	require.Equal(t, report.ID, cached.ID)
	require.Equal(t, 1, repo.productCalls)

	// Bumping the version invalidates every key at once.
	require.NoError(t, svc.InvalidateAll(ctx))
	refreshed, err := svc.GenerateReport(ctx, ReportInventorySummary, Filters{}, language.Spanish)
	require.NoError(t, err)
	require.NotEqual(t, report.ID, refreshed.ID)
	require.Equal(t, 2, repo.productCalls)
}

func TestGenerateReportLocaleKeysSeparately(t *testing.T) {
	repo := &mockRepo{products: []inventory.Product{{ID: 1, StockCurrent: 1, CostPrice: 1}}}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	ctx := context.Background()
	es, err := svc.GenerateReport(ctx, ReportABCClassification, Filters{}, language.Spanish)
	require.NoError(t, err)
	require.Equal(t, "Clasificación ABC", es.Title)

	en, err := svc.GenerateReport(ctx, ReportABCClassification, Filters{}, language.English)
	require.NoError(t, err)
	require.Equal(t, "ABC classification", en.Title)
	require.Equal(t, 2, repo.productCalls)
}

func TestGenerateReportValidatesBeforeFetch(t *testing.T) {
	repo := &mockRepo{}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	from := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -5)
	_, err := svc.GenerateReport(context.Background(), ReportMovements, Filters{DateFrom: &from, DateTo: &to}, language.Spanish)
	require.ErrorIs(t, err, ErrInvalidFilters)
	require.Zero(t, repo.productCalls)
	require.Zero(t, repo.movementCalls)

	_, err = svc.GenerateReport(context.Background(), ReportMovements, Filters{DaysAhead: -1}, language.Spanish)
	require.ErrorIs(t, err, ErrInvalidFilters)

	_, err = svc.GenerateReport(context.Background(), ReportMovements, Filters{Period: "DECADE"}, language.Spanish)
	require.ErrorIs(t, err, ErrInvalidFilters)
}

func TestGenerateReportUnknownType(t *testing.T) {
	svc, cleanup := newTestService(t, &mockRepo{})
	defer cleanup()

	_, err := svc.GenerateReport(context.Background(), ReportType("WEATHER"), Filters{}, language.Spanish)
	require.ErrorIs(t, err, ErrUnknownReportType)
}

func TestGenerateReportPropagatesStoreErrors(t *testing.T) {
	repo := &mockRepo{
		movementErr: fmt.Errorf("%w: connection refused", inventory.ErrUnavailable),
	}
	svc, cleanup := newTestService(t, repo)
	defer cleanup()

	_, err := svc.GenerateReport(context.Background(), ReportInventorySummary, Filters{}, language.Spanish)
	require.ErrorIs(t, err, inventory.ErrUnavailable)
}

func TestGenerateReportDefaultWindow(t *testing.T) {
	svc, cleanup := newTestService(t, &mockRepo{})
	defer cleanup()

	report, err := svc.GenerateReport(context.Background(), ReportMovements, Filters{}, language.Spanish)
	require.NoError(t, err)
	require.NotNil(t, report.Filters.DateFrom)
	require.NotNil(t, report.Filters.DateTo)
	require.True(t, report.Filters.DateTo.AddDate(0, 0, -30).Equal(*report.Filters.DateFrom))
}

func TestGenerateReportWithoutCache(t *testing.T) {
	repo := &mockRepo{batches: []inventory.Batch{{ID: 1, Status: inventory.BatchDefective, QuantityTotal: 10, QuantityDefective: 9}}}
	svc := NewService(repo, nil)

	report, err := svc.GenerateReport(context.Background(), ReportBatchAnomalies, Filters{}, language.English)
	require.NoError(t, err)
	require.Equal(t, "Batch anomalies", report.Title)
	require.InDelta(t, 1, report.KPIs["critical"], 0.0001)
	require.Equal(t, 1, repo.batchCalls)
}
