package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. Transitions: pending -> confirmed -> shipped -> delivered,
// with cancelled reachable from pending or confirmed.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Order is a placed storefront order. Totals are recomputed server-side at
// creation; the client-provided figures are never trusted.
type Order struct {
	ID            string
	Number        string // human-facing order number, e.g. AE-20260829-4821
	UserID        string // empty for guest checkout
	Status        string
	CustomerName  string
	Email         string
	Phone         string
	AddressLine1  string
	AddressLine2  string
	City          string
	State         string
	PostalCode    string
	Subtotal      decimal.Decimal
	ShippingFee   decimal.Decimal
	Total         decimal.Decimal
	Currency      string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items []OrderItem
}

// OrderItem is one line of a placed order, priced at order time.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	VariantID   string // empty when the product has no variants
	Name        string
	Options     string // display form, e.g. "size: M, color: Maroon"
	UnitPrice   decimal.Decimal
	Quantity    int
	Subtotal    decimal.Decimal
}
