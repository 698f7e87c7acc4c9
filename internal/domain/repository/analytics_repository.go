package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusCount is one slice of the dashboard status widget.
type OrderStatusCount struct {
	Status string
	Count  int
}

// TopProduct is one row of the dashboard best-sellers widget.
type TopProduct struct {
	ProductID string
	Name      string
	Units     int
	Revenue   decimal.Decimal
}

// AnalyticsRepository runs the read-only aggregate queries behind the
// admin dashboard.
type AnalyticsRepository interface {
	CountOrdersByStatus(ctx context.Context, from, to time.Time) ([]OrderStatusCount, error)
	Revenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error)
}
