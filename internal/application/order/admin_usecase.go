package order

import (
	"context"

	"github.com/aaryaethnics/storefront-api/internal/application/dto"
	"github.com/aaryaethnics/storefront-api/internal/domain"
	"github.com/aaryaethnics/storefront-api/internal/domain/entity"
	"github.com/aaryaethnics/storefront-api/internal/domain/repository"
)

// allowedTransitions order status machine. cancelled is reachable until
// the order ships; delivered and cancelled are terminal.
var allowedTransitions = map[string][]string{
	entity.OrderStatusPending:   {entity.OrderStatusConfirmed, entity.OrderStatusCancelled},
	entity.OrderStatusConfirmed: {entity.OrderStatusShipped, entity.OrderStatusCancelled},
	entity.OrderStatusShipped:   {entity.OrderStatusDelivered},
}

// AdminUseCase order operations for the admin panel.
type AdminUseCase struct {
	repo    repository.OrderRepository
	receipt ReceiptGenerator
}

// NewAdminUseCase builds the use case.
func NewAdminUseCase(repo repository.OrderRepository, receipt ReceiptGenerator) *AdminUseCase {
	return &AdminUseCase{repo: repo, receipt: receipt}
}

// GetByID fetches one order with its items.
func (uc *AdminUseCase) GetByID(id string) (*dto.OrderResponse, error) {
	order, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return toOrderResponse(order), nil
}

// List pages through orders, optionally filtered by status.
func (uc *AdminUseCase) List(status string, limit, offset int) (*dto.OrderListResponse, error) {
	list, err := uc.repo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// UpdateStatus applies a status transition. Illegal transitions return
// domain.ErrConflict; an unknown order returns nil, nil.
func (uc *AdminUseCase) UpdateStatus(id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	order, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	if !transitionAllowed(order.Status, in.Status) {
		return nil, domain.ErrConflict
	}
	if err := uc.repo.UpdateStatus(id, in.Status); err != nil {
		return nil, err
	}
	order.Status = in.Status
	return toOrderResponse(order), nil
}

// ReceiptPDF renders the printable receipt for one order.
func (uc *AdminUseCase) ReceiptPDF(ctx context.Context, id string) ([]byte, error) {
	order, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return uc.receipt.GenerateReceipt(ctx, order)
}

func transitionAllowed(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
