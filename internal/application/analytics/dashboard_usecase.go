package analytics

import (
	"context"
	"time"

	"github.com/aaryaethnics/storefront-api/internal/application/dto"
	"github.com/aaryaethnics/storefront-api/internal/domain/repository"
)

const topProductsLimit = 5

// DashboardUseCase assembles the admin dashboard summary from the
// aggregate queries.
type DashboardUseCase struct {
	repo repository.AnalyticsRepository
}

func NewDashboardUseCase(repo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// GetSummary returns order counts and revenue for today and the current
// month, plus the monthly best sellers.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	todayCounts, err := uc.repo.CountOrdersByStatus(ctx, dayStart, now)
	if err != nil {
		return nil, err
	}
	monthCounts, err := uc.repo.CountOrdersByStatus(ctx, monthStart, now)
	if err != nil {
		return nil, err
	}
	todayRevenue, err := uc.repo.Revenue(ctx, dayStart, now)
	if err != nil {
		return nil, err
	}
	monthRevenue, err := uc.repo.Revenue(ctx, monthStart, now)
	if err != nil {
		return nil, err
	}
	top, err := uc.repo.TopProducts(ctx, monthStart, now, topProductsLimit)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardSummaryDTO{
		TodayOrders:    toStatusCounts(todayCounts),
		MonthlyOrders:  toStatusCounts(monthCounts),
		TodayRevenue:   todayRevenue,
		MonthlyRevenue: monthRevenue,
		TopProducts:    toTopProducts(top),
	}, nil
}

func toStatusCounts(rows []repository.OrderStatusCount) []dto.StatusCountDTO {
	out := make([]dto.StatusCountDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StatusCountDTO{Status: r.Status, Count: r.Count})
	}
	return out
}

func toTopProducts(rows []repository.TopProduct) []dto.TopProductDTO {
	out := make([]dto.TopProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProductDTO{
			ProductID: r.ProductID,
			Name:      r.Name,
			Units:     r.Units,
			Revenue:   r.Revenue,
		})
	}
	return out
}
