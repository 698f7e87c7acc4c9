package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/aaryaethnics/storefront-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo read-only aggregate queries behind the admin dashboard.
// Cancelled orders are excluded from revenue and best sellers.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// CountOrdersByStatus groups orders placed in [from, to] by status.
func (r *AnalyticsRepo) CountOrdersByStatus(ctx context.Context, from, to time.Time) ([]repository.OrderStatusCount, error) {
	const query = `
	SELECT status, COUNT(*)
	FROM orders
	WHERE created_at BETWEEN $1 AND $2
	GROUP BY status
	ORDER BY status`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.CountOrdersByStatus: %w", err)
	}
	defer rows.Close()

	var results []repository.OrderStatusCount
	for rows.Next() {
		var row repository.OrderStatusCount
		if err := rows.Scan(&row.Status, &row.Count); err != nil {
			return nil, fmt.Errorf("analytics.CountOrdersByStatus scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// Revenue sums totals of non-cancelled orders in the period. COALESCE
// returns zero for a period with no sales.
func (r *AnalyticsRepo) Revenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(total), 0)
	FROM orders
	WHERE created_at BETWEEN $1 AND $2
	  AND status <> 'cancelled'`

	var revenue decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, from, to).Scan(&revenue); err != nil {
		return decimal.Zero, fmt.Errorf("analytics.Revenue: %w", err)
	}
	return revenue, nil
}

// TopProducts returns the `limit` products with the highest revenue in
// the period.
func (r *AnalyticsRepo) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.TopProduct, error) {
	const query = `
	SELECT
	    i.product_id,
	    i.name,
	    SUM(i.quantity)  AS units,
	    SUM(i.subtotal)  AS revenue
	FROM order_items i
	JOIN orders o ON o.id = i.order_id
	WHERE o.created_at BETWEEN $1 AND $2
	  AND o.status <> 'cancelled'
	GROUP BY i.product_id, i.name
	ORDER BY revenue DESC
	LIMIT $3`

	rows, err := r.pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.TopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProduct
	for rows.Next() {
		var row repository.TopProduct
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Units, &row.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.TopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	if results == nil {
		results = []repository.TopProduct{}
	}
	return results, rows.Err()
}
