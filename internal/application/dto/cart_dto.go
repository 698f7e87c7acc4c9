package dto

import "github.com/shopspring/decimal"

// CartOptionDTO one chosen option key/value.
type CartOptionDTO struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// AddCartItemRequest input to add a line to the session cart. Quantity ≤ 0
// is coerced to 1 by the add path.
type AddCartItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	VariantID string          `json:"variant_id"`
	Options   []CartOptionDTO `json:"options" validate:"dive"`
	Quantity  int             `json:"quantity"`
}

// UpdateCartItemRequest input to change a line quantity; ≤ 0 removes it.
type UpdateCartItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	VariantID string          `json:"variant_id"`
	Options   []CartOptionDTO `json:"options" validate:"dive"`
	Quantity  int             `json:"quantity"`
}

// CartLineResponse one cart line.
type CartLineResponse struct {
	ProductID string          `json:"product_id"`
	VariantID string          `json:"variant_id,omitempty"`
	Options   []CartOptionDTO `json:"options,omitempty"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Currency  string          `json:"currency"`
}

// CartResponse full cart state plus derived totals.
type CartResponse struct {
	Lines      []CartLineResponse `json:"lines"`
	TotalItems int                `json:"total_items"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	Currency   string             `json:"currency,omitempty"`
	IsOpen     bool               `json:"is_open"`
	IsSyncing  bool               `json:"is_syncing,omitempty"`
}

// CheckoutURLResponse remote checkout URL after a successful sync.
type CheckoutURLResponse struct {
	CheckoutURL string `json:"checkout_url"`
}
