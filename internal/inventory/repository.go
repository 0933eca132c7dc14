package inventory

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides read-only PostgreSQL access to the warehouse data. The
// analytics engine issues at most a constant number of list calls per report;
// all filtering happens in SQL, all derivation happens in memory afterwards.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListProducts returns products matching the filter. Inactive products are
// excluded unless the filter opts in.
func (r *Repository) ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error) {
	var (
		conds []string
		args  []interface{}
	)
	if !filter.IncludeInactive {
		conds = append(conds, "is_active = TRUE")
	}
	if filter.Warehouse != "" {
		args = append(args, filter.Warehouse)
		conds = append(conds, "warehouse = $"+strconv.Itoa(len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, "category = $"+strconv.Itoa(len(args)))
	}
	if filter.ProductID != 0 {
		args = append(args, filter.ProductID)
		conds = append(conds, "id = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT id, code, name, cost_price, sale_price, stock_current, stock_min, stock_max,
warehouse, aisle, shelf, COALESCE(category, ''), is_active, is_batch_tracked
FROM products` + whereClause(conds) + " ORDER BY name"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreErr("list products", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.CostPrice, &p.SalePrice, &p.StockCurrent,
			&p.StockMin, &p.StockMax, &p.Warehouse, &p.Aisle, &p.Shelf, &p.Category,
			&p.IsActive, &p.IsBatchTracked); err != nil {
			return nil, wrapStoreErr("scan product", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("list products", err)
	}
	return products, nil
}

// ListMovements returns movements matching the filter ordered by movement date.
// Date-range reports issue a single range query here instead of one query per
// calendar day.
func (r *Repository) ListMovements(ctx context.Context, filter MovementFilter) ([]Movement, error) {
	var (
		conds []string
		args  []interface{}
	)
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		conds = append(conds, "movement_date >= $"+strconv.Itoa(len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		conds = append(conds, "movement_date <= $"+strconv.Itoa(len(args)))
	}
	if filter.Warehouse != "" {
		args = append(args, filter.Warehouse)
		conds = append(conds, "warehouse = $"+strconv.Itoa(len(args)))
	}
	if filter.ProductID != 0 {
		args = append(args, filter.ProductID)
		conds = append(conds, "product_id = $"+strconv.Itoa(len(args)))
	}
	if filter.UserID != 0 {
		args = append(args, filter.UserID)
		conds = append(conds, "user_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		conds = append(conds, "movement_type = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT id, product_id, batch_id, user_id, movement_type, quantity, movement_date,
warehouse, COALESCE(reason, '')
FROM stock_movements` + whereClause(conds) + " ORDER BY movement_date"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreErr("list movements", err)
	}
	defer rows.Close()

	var movements []Movement
	for rows.Next() {
		var m Movement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.BatchID, &m.UserID, &m.Type, &m.Quantity,
			&m.MovementDate, &m.Warehouse, &m.Reason); err != nil {
			return nil, wrapStoreErr("scan movement", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("list movements", err)
	}
	return movements, nil
}

// ListBatches returns batches matching the filter.
func (r *Repository) ListBatches(ctx context.Context, filter BatchFilter) ([]Batch, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.ProductID != 0 {
		args = append(args, filter.ProductID)
		conds = append(conds, "product_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conds = append(conds, "status = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT id, product_id, supplier_id, status, quantity_total, quantity_available,
quantity_reserved, quantity_defective, expiry_date, quality_score, updated_at
FROM batches` + whereClause(conds) + " ORDER BY updated_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreErr("list batches", err)
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		var b Batch
		if err := rows.Scan(&b.ID, &b.ProductID, &b.SupplierID, &b.Status, &b.QuantityTotal,
			&b.QuantityAvailable, &b.QuantityReserved, &b.QuantityDefective, &b.ExpiryDate,
			&b.QualityScore, &b.UpdatedAt); err != nil {
			return nil, wrapStoreErr("scan batch", err)
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("list batches", err)
	}
	return batches, nil
}

func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func wrapStoreErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%w: %s: %s (%s)", ErrUnavailable, op, pgErr.Message, pgErr.Code)
	}
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}
