package dto

import "github.com/shopspring/decimal"

// StatusCountDTO one slice of the orders-by-status widget.
type StatusCountDTO struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// TopProductDTO one row of the best-sellers widget.
type TopProductDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Units     int             `json:"units"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// DashboardSummaryDTO the admin dashboard payload.
type DashboardSummaryDTO struct {
	TodayOrders    []StatusCountDTO `json:"today_orders"`
	MonthlyOrders  []StatusCountDTO `json:"monthly_orders"`
	TodayRevenue   decimal.Decimal  `json:"today_revenue"`
	MonthlyRevenue decimal.Decimal  `json:"monthly_revenue"`
	TopProducts    []TopProductDTO  `json:"top_products"`
}
