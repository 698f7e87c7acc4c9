package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a storefront catalog item. Price is the selling price in the
// catalog currency; ComparePrice, when set, is the struck-through MRP.
// Images and option values arrive as JSON from the admin panel and are kept
// opaque here.
type Product struct {
	ID           string
	CategoryID   string
	Name         string
	Slug         string // unique within the catalog
	Description  string
	Price        decimal.Decimal
	ComparePrice decimal.Decimal // zero when there is no discount
	Currency     string          // ISO code, e.g. INR
	Images       json.RawMessage
	IsActive     bool
	IsFeatured   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Variants []ProductVariant
}

// ProductVariant is a purchasable combination of option values
// (size, color) for a product. PriceDelta adjusts the product price.
type ProductVariant struct {
	ID         string
	ProductID  string
	SKU        string
	Options    json.RawMessage // e.g. {"size":"M","color":"Maroon"}
	PriceDelta decimal.Decimal
	InStock    bool
}
