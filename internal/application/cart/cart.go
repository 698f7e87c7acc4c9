// Package cart implements the shopping cart stores: the shared line-item
// contract, the locally persisted variant and the remotely synced variant
// used for external checkout.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/aaryaethnics/storefront-api/internal/domain"
)

// ProductRef identifies a purchasable item. VariantID is empty for
// products without variants.
type ProductRef struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id,omitempty"`
}

// Option is one chosen key/value pair (size, color). Options are an
// ordered set: two lines with the same ref but different options are
// distinct lines.
type Option struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Line is one cart entry. UnitPrice is captured from the catalog at add
// time and not re-fetched on reads.
type Line struct {
	Ref       ProductRef      `json:"ref"`
	Options   []Option        `json:"options,omitempty"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Currency  string          `json:"currency"`
}

// Subtotal is quantity × unit price.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func sameLine(a, b Line) bool {
	if a.Ref != b.Ref || len(a.Options) != len(b.Options) {
		return false
	}
	for i := range a.Options {
		if a.Options[i] != b.Options[i] {
			return false
		}
	}
	return true
}

// Store holds the ordered line list and the drawer visibility flag. It is
// the shared contract of LocalCart and SyncedCart; a zero Store is a valid
// empty, closed cart. Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	lines []Line
	open  bool
}

// AddItem merges qty into an existing line with the same ref+options, or
// appends a new line. qty ≤ 0 is coerced to 1 (only update/remove treat
// non-positive values as removal). Opens the cart drawer. The only error
// is a currency mismatch against the lines already present.
func (s *Store) AddItem(line Line, qty int) error {
	if qty <= 0 {
		qty = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) > 0 && s.lines[0].Currency != line.Currency {
		return domain.ErrCurrencyMismatch
	}
	for i := range s.lines {
		if sameLine(s.lines[i], line) {
			s.lines[i].Quantity += qty
			s.open = true
			return nil
		}
	}
	line.Quantity = qty
	s.lines = append(s.lines, line)
	s.open = true
	return nil
}

// UpdateQuantity sets the quantity of the matching line; ≤ 0 removes the
// line. No-op when no line matches.
func (s *Store) UpdateQuantity(ref ProductRef, options []Option, qty int) {
	key := Line{Ref: ref, Options: options}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if !sameLine(s.lines[i], key) {
			continue
		}
		if qty <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		} else {
			s.lines[i].Quantity = qty
		}
		return
	}
}

// RemoveItem deletes the matching line; no-op when absent.
func (s *Store) RemoveItem(ref ProductRef, options []Option) {
	s.UpdateQuantity(ref, options, 0)
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()
}

// Lines returns a copy of the line list in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalItems is the sum of all quantities, recomputed on each call.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice is the sum of line subtotals, recomputed on each call.
// Single-currency carts only; AddItem rejects mixed currencies.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Currency of the cart; empty while the cart is empty.
func (s *Store) Currency() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.lines) == 0 {
		return ""
	}
	return s.lines[0].Currency
}

// IsOpen reports the drawer visibility flag. Not persisted.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// SetOpen shows or hides the cart drawer.
func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	s.open = open
	s.mu.Unlock()
}

// restore replaces the line list wholesale (rehydration path).
func (s *Store) restore(lines []Line) {
	s.mu.Lock()
	s.lines = lines
	s.mu.Unlock()
}
