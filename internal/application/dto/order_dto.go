package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderItemRequest one line of an order-creation payload. The unit
// price is looked up server-side; client figures are advisory only.
type CreateOrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest the validated checkout payload. These rules mirror
// the storefront's client-side checks; this server copy is the
// authoritative gate.
type CreateOrderRequest struct {
	CustomerName string                   `json:"customer_name" validate:"required,min=2,max=120"`
	Email        string                   `json:"email" validate:"required,email,max=254"`
	Phone        string                   `json:"phone" validate:"required,min=8,max=15"`
	AddressLine1 string                   `json:"address_line1" validate:"required,min=4,max=200"`
	AddressLine2 string                   `json:"address_line2" validate:"max=200"`
	City         string                   `json:"city" validate:"required,min=2,max=80"`
	State        string                   `json:"state" validate:"required,min=2,max=80"`
	PostalCode   string                   `json:"postal_code" validate:"required,min=4,max=10"`
	Items        []CreateOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderItemResponse one line of a placed order.
type OrderItemResponse struct {
	ProductID string          `json:"product_id"`
	VariantID string          `json:"variant_id,omitempty"`
	Name      string          `json:"name"`
	Options   string          `json:"options,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse order output.
type OrderResponse struct {
	ID           string              `json:"id"`
	Number       string              `json:"number"`
	Status       string              `json:"status"`
	CustomerName string              `json:"customer_name"`
	Email        string              `json:"email"`
	Phone        string              `json:"phone"`
	AddressLine1 string              `json:"address_line1"`
	AddressLine2 string              `json:"address_line2,omitempty"`
	City         string              `json:"city"`
	State        string              `json:"state"`
	PostalCode   string              `json:"postal_code"`
	Subtotal     decimal.Decimal     `json:"subtotal"`
	ShippingFee  decimal.Decimal     `json:"shipping_fee"`
	Total        decimal.Decimal     `json:"total"`
	Currency     string              `json:"currency"`
	Items        []OrderItemResponse `json:"items"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// OrderListResponse paginated order list for the admin panel.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// UpdateOrderStatusRequest admin status transition.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed shipped delivered cancelled"`
}
