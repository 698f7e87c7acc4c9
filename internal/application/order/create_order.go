// Package order implements checkout: payload validation, server-side
// repricing and transactional persistence, plus the admin-side order
// operations.
package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aaryaethnics/storefront-api/internal/application/dto"
	"github.com/aaryaethnics/storefront-api/internal/domain"
	"github.com/aaryaethnics/storefront-api/internal/domain/entity"
	"github.com/aaryaethnics/storefront-api/internal/domain/repository"
)

// Pricing checkout pricing policy.
type Pricing struct {
	ShippingFee     decimal.Decimal // flat fee per order
	FreeShippingMin decimal.Decimal // subtotal at/above which shipping is free; zero disables
}

// CreateOrderUseCase validates a checkout payload, reprices every line
// from the catalog and persists the order atomically. Client-sent totals
// are never trusted.
type CreateOrderUseCase struct {
	tx          TxRunner
	productRepo repository.ProductRepository
	pricing     Pricing
	validate    *validator.Validate
}

// NewCreateOrderUseCase builds the use case.
func NewCreateOrderUseCase(tx TxRunner, productRepo repository.ProductRepository, pricing Pricing) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		tx:          tx,
		productRepo: productRepo,
		pricing:     pricing,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Create places an order. userID is empty for guest checkout. Returns
// *ValidationError for a rejected payload, domain.ErrNotFound when a line
// references an unknown product or variant.
func (uc *CreateOrderUseCase) Create(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, asValidationError(err)
	}

	now := time.Now()
	order := &entity.Order{
		ID:           uuid.New().String(),
		Number:       newOrderNumber(now),
		UserID:       userID,
		Status:       entity.OrderStatusPending,
		CustomerName: in.CustomerName,
		Email:        in.Email,
		Phone:        in.Phone,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		City:         in.City,
		State:        in.State,
		PostalCode:   in.PostalCode,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	subtotal := decimal.Zero
	for _, item := range in.Items {
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.IsActive {
			return nil, domain.ErrNotFound
		}
		unitPrice := product.Price
		options := ""
		if item.VariantID != "" {
			variant, err := uc.productRepo.GetVariant(item.VariantID)
			if err != nil {
				return nil, err
			}
			if variant == nil || variant.ProductID != product.ID {
				return nil, domain.ErrNotFound
			}
			unitPrice = unitPrice.Add(variant.PriceDelta)
			options = optionsDisplay(variant.Options)
		}
		if order.Currency == "" {
			order.Currency = product.Currency
		} else if order.Currency != product.Currency {
			return nil, domain.ErrCurrencyMismatch
		}
		lineSubtotal := unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineSubtotal)
		order.Items = append(order.Items, entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: product.ID,
			VariantID: item.VariantID,
			Name:      product.Name,
			Options:   options,
			UnitPrice: unitPrice,
			Quantity:  item.Quantity,
			Subtotal:  lineSubtotal,
		})
	}

	order.Subtotal = subtotal
	order.ShippingFee = uc.shippingFor(subtotal)
	order.Total = subtotal.Add(order.ShippingFee)

	err := uc.tx.RunOrder(ctx, func(orderRepo repository.OrderRepository) error {
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}
	return toOrderResponse(order), nil
}

func (uc *CreateOrderUseCase) shippingFor(subtotal decimal.Decimal) decimal.Decimal {
	if uc.pricing.FreeShippingMin.IsPositive() && subtotal.GreaterThanOrEqual(uc.pricing.FreeShippingMin) {
		return decimal.Zero
	}
	return uc.pricing.ShippingFee
}

// newOrderNumber generates the human-facing number, e.g. AE-20260829-4F2A.
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.New().String()[:4])
	return fmt.Sprintf("AE-%s-%s", now.Format("20060102"), suffix)
}

// optionsDisplay renders variant options JSON as "color: Maroon, size: M"
// with stable key order.
func optionsDisplay(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+m[k])
	}
	return strings.Join(parts, ", ")
}

func asValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return &ValidationError{Fields: fields}
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Name:      it.Name,
			Options:   it.Options,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal,
		})
	}
	return &dto.OrderResponse{
		ID:           o.ID,
		Number:       o.Number,
		Status:       o.Status,
		CustomerName: o.CustomerName,
		Email:        o.Email,
		Phone:        o.Phone,
		AddressLine1: o.AddressLine1,
		AddressLine2: o.AddressLine2,
		City:         o.City,
		State:        o.State,
		PostalCode:   o.PostalCode,
		Subtotal:     o.Subtotal,
		ShippingFee:  o.ShippingFee,
		Total:        o.Total,
		Currency:     o.Currency,
		Items:        items,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}
