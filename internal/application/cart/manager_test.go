package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaryaethnics/storefront-api/internal/application/cart"
)

// ──────────────────────────────────────────────────────────────────────────────
// Manager
// ──────────────────────────────────────────────────────────────────────────────

func TestManager_SameInstancePerSession(t *testing.T) {
	m := cart.NewManager(newMemStorage(), nil)

	a, err := m.Get("sess-1")
	require.NoError(t, err)
	b, err := m.Get("sess-1")
	require.NoError(t, err)
	other, err := m.Get("sess-2")
	require.NoError(t, err)

	assert.Same(t, a, b, "one cart per session")
	assert.NotSame(t, a, other)
}

func TestManager_RehydratesFromSnapshot(t *testing.T) {
	storage := newMemStorage()
	snap := `{"lines":[{"ref":{"product_id":"p1"},"name":"Kurta","quantity":2,"unit_price":"500","currency":"INR"}]}`
	require.NoError(t, storage.Save("sess-1", []byte(snap)))

	m := cart.NewManager(storage, nil)
	c, err := m.Get("sess-1")
	require.NoError(t, err)

	assert.Equal(t, 2, c.TotalItems())
	assert.False(t, c.IsOpen(), "drawer state is not persisted")
}

func TestManager_CorruptSnapshotIsAnError(t *testing.T) {
	storage := newMemStorage()
	require.NoError(t, storage.Save("sess-1", []byte("{not json")))

	_, err := cart.NewManager(storage, nil).Get("sess-1")
	require.Error(t, err)
}

func TestSessionCart_MutationsPersist(t *testing.T) {
	storage := newMemStorage()

	c, err := cart.NewManager(storage, nil).Get("sess-1")
	require.NoError(t, err)
	require.NoError(t, c.AddItem(line("p1", 500), 3))

	// A fresh manager sees the snapshot written by the first.
	c2, err := cart.NewManager(storage, nil).Get("sess-1")
	require.NoError(t, err)
	assert.Equal(t, 3, c2.TotalItems())
}

func TestSessionCart_ClearDropsSnapshot(t *testing.T) {
	storage := newMemStorage()

	c, err := cart.NewManager(storage, nil).Get("sess-1")
	require.NoError(t, err)
	require.NoError(t, c.AddItem(line("p1", 500), 1))
	require.NoError(t, c.Clear())

	data, err := storage.Load("sess-1")
	require.NoError(t, err)
	assert.Nil(t, data)
}
