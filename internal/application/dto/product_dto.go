package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest input to create a product. Slug is derived from
// the name server-side.
type CreateProductRequest struct {
	CategoryID   string                 `json:"category_id" validate:"required"`
	Name         string                 `json:"name" validate:"required,min=1,max=200"`
	Description  string                 `json:"description"`
	Price        decimal.Decimal        `json:"price"`
	ComparePrice decimal.Decimal        `json:"compare_price"`
	Currency     string                 `json:"currency" validate:"omitempty,len=3"`
	Images       json.RawMessage        `json:"images"`
	IsActive     *bool                  `json:"is_active"`
	IsFeatured   bool                   `json:"is_featured"`
	Variants     []CreateVariantRequest `json:"variants" validate:"dive"`
}

// CreateVariantRequest one purchasable option combination.
type CreateVariantRequest struct {
	SKU        string          `json:"sku" validate:"required,min=1,max=100"`
	Options    json.RawMessage `json:"options"`
	PriceDelta decimal.Decimal `json:"price_delta"`
	InStock    *bool           `json:"in_stock"`
}

// UpdateProductRequest input to update a product.
type UpdateProductRequest struct {
	CategoryID   *string          `json:"category_id"`
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	ComparePrice *decimal.Decimal `json:"compare_price"`
	Images       json.RawMessage  `json:"images"`
	IsActive     *bool            `json:"is_active"`
	IsFeatured   *bool            `json:"is_featured"`
}

// VariantResponse one variant in a product response.
type VariantResponse struct {
	ID         string          `json:"id"`
	SKU        string          `json:"sku"`
	Options    json.RawMessage `json:"options"`
	PriceDelta decimal.Decimal `json:"price_delta"`
	InStock    bool            `json:"in_stock"`
}

// ProductResponse product output.
type ProductResponse struct {
	ID           string            `json:"id"`
	CategoryID   string            `json:"category_id"`
	Name         string            `json:"name"`
	Slug         string            `json:"slug"`
	Description  string            `json:"description"`
	Price        decimal.Decimal   `json:"price"`
	ComparePrice decimal.Decimal   `json:"compare_price"`
	Currency     string            `json:"currency"`
	Images       json.RawMessage   `json:"images"`
	IsActive     bool              `json:"is_active"`
	IsFeatured   bool              `json:"is_featured"`
	Variants     []VariantResponse `json:"variants"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// ProductListResponse paginated product list.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
