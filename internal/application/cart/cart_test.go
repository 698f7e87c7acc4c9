package cart_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaryaethnics/storefront-api/internal/application/cart"
	"github.com/aaryaethnics/storefront-api/internal/domain"
)

func inr(amount int64) decimal.Decimal { return decimal.NewFromInt(amount) }

func line(productID string, price int64, options ...cart.Option) cart.Line {
	return cart.Line{
		Ref:       cart.ProductRef{ProductID: productID},
		Options:   options,
		Name:      productID,
		UnitPrice: inr(price),
		Currency:  "INR",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Merge semantics
// ──────────────────────────────────────────────────────────────────────────────

// Adding the same ref+options twice merges into one line, not two.
func TestStore_AddItem_MergesDuplicates(t *testing.T) {
	var s cart.Store

	require.NoError(t, s.AddItem(line("p1", 500, cart.Option{Key: "size", Value: "M"}), 1))
	require.NoError(t, s.AddItem(line("p1", 500, cart.Option{Key: "size", Value: "M"}), 1))

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

// Same product with different options stays a distinct line.
func TestStore_AddItem_DifferentOptionsStayDistinct(t *testing.T) {
	var s cart.Store

	require.NoError(t, s.AddItem(line("p1", 500, cart.Option{Key: "size", Value: "M"}), 1))
	require.NoError(t, s.AddItem(line("p1", 500, cart.Option{Key: "size", Value: "L"}), 1))

	assert.Len(t, s.Lines(), 2)
}

// addItem(same key, qty 2) after qty 1 → one line, quantity 3, total 1500.
func TestStore_AddItem_MergeAccumulatesQuantityAndTotal(t *testing.T) {
	var s cart.Store
	l := line("p1", 500, cart.Option{Key: "size", Value: "M"})

	require.NoError(t, s.AddItem(l, 1))
	require.NoError(t, s.AddItem(l, 2))

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.True(t, s.TotalPrice().Equal(inr(1500)), "total = 3 × 500")
}

// qty ≤ 0 on the add path is coerced to 1, never a removal signal.
func TestStore_AddItem_NonPositiveQuantityCoercedToOne(t *testing.T) {
	var s cart.Store

	require.NoError(t, s.AddItem(line("p1", 100), 0))
	require.NoError(t, s.AddItem(line("p2", 100), -3))

	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
}

// Mixed currencies are unsupported: the second currency is rejected.
func TestStore_AddItem_CurrencyMismatchRejected(t *testing.T) {
	var s cart.Store
	require.NoError(t, s.AddItem(line("p1", 100), 1))

	usd := line("p2", 100)
	usd.Currency = "USD"
	err := s.AddItem(usd, 1)

	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)
	assert.Len(t, s.Lines(), 1, "rejected line must not be appended")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / remove
// ──────────────────────────────────────────────────────────────────────────────

// updateQuantity(…, 0) removes the line; a second call is a no-op.
func TestStore_UpdateQuantity_ZeroRemovesLine(t *testing.T) {
	var s cart.Store
	opts := []cart.Option{{Key: "size", Value: "M"}}
	require.NoError(t, s.AddItem(line("p1", 500, opts...), 2))

	ref := cart.ProductRef{ProductID: "p1"}
	s.UpdateQuantity(ref, opts, 0)
	assert.Empty(t, s.Lines())

	s.UpdateQuantity(ref, opts, 5) // no matching line anymore
	assert.Empty(t, s.Lines())
}

func TestStore_UpdateQuantity_SetsNewValue(t *testing.T) {
	var s cart.Store
	require.NoError(t, s.AddItem(line("p1", 500), 2))

	s.UpdateQuantity(cart.ProductRef{ProductID: "p1"}, nil, 7)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 7, lines[0].Quantity)
}

func TestStore_RemoveItem_AbsentIsNoop(t *testing.T) {
	var s cart.Store
	require.NoError(t, s.AddItem(line("p1", 500), 1))

	s.RemoveItem(cart.ProductRef{ProductID: "ghost"}, nil)

	assert.Len(t, s.Lines(), 1)
}

func TestStore_Clear(t *testing.T) {
	var s cart.Store
	require.NoError(t, s.AddItem(line("p1", 500), 1))
	require.NoError(t, s.AddItem(line("p2", 300), 1))

	s.Clear()

	assert.Empty(t, s.Lines())
	assert.Equal(t, 0, s.TotalItems())
}

// ──────────────────────────────────────────────────────────────────────────────
// Derived totals
// ──────────────────────────────────────────────────────────────────────────────

// Lines [(100 × 2), (50 × 1)] → 3 items, total 250.
func TestStore_Totals(t *testing.T) {
	var s cart.Store
	require.NoError(t, s.AddItem(line("p1", 100), 2))
	require.NoError(t, s.AddItem(line("p2", 50), 1))

	assert.Equal(t, 3, s.TotalItems())
	assert.True(t, s.TotalPrice().Equal(inr(250)))
}

func TestStore_TotalsOnEmptyCart(t *testing.T) {
	var s cart.Store
	assert.Equal(t, 0, s.TotalItems())
	assert.True(t, s.TotalPrice().IsZero())
	assert.Equal(t, "", s.Currency())
}

// ──────────────────────────────────────────────────────────────────────────────
// Drawer state machine
// ──────────────────────────────────────────────────────────────────────────────

// closed → (addItem) → open → (setOpen false) → closed → (setOpen true) → open.
func TestStore_DrawerVisibility(t *testing.T) {
	var s cart.Store
	assert.False(t, s.IsOpen(), "initial state is closed")

	require.NoError(t, s.AddItem(line("p1", 100), 1))
	assert.True(t, s.IsOpen(), "addItem opens the drawer")

	s.SetOpen(false)
	assert.False(t, s.IsOpen())

	s.SetOpen(true)
	assert.True(t, s.IsOpen())
}

// Insertion order is preserved; merging never reorders.
func TestStore_LinesKeepInsertionOrder(t *testing.T) {
	var s cart.Store
	require.NoError(t, s.AddItem(line("p1", 100), 1))
	require.NoError(t, s.AddItem(line("p2", 200), 1))
	require.NoError(t, s.AddItem(line("p1", 100), 1)) // merge into first

	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "p1", lines[0].Ref.ProductID)
	assert.Equal(t, "p2", lines[1].Ref.ProductID)
}
