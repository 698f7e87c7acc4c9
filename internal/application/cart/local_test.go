package cart_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaryaethnics/storefront-api/internal/application/cart"
)

// memStorage is an in-memory cart.Storage for tests.
type memStorage struct {
	data    map[string][]byte
	saveErr error
}

func newMemStorage() *memStorage { return &memStorage{data: map[string][]byte{}} }

func (m *memStorage) Load(key string) ([]byte, error) { return m.data[key], nil }
func (m *memStorage) Save(key string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data[key] = data
	return nil
}
func (m *memStorage) Delete(key string) error {
	delete(m.data, key)
	return nil
}

const cartKey = "cart:session-1"

// ──────────────────────────────────────────────────────────────────────────────
// Persistence round-trip
// ──────────────────────────────────────────────────────────────────────────────

// Mutate, drop the in-memory cart, rehydrate from the snapshot: lines come
// back identical in order and values.
func TestLocalCart_PersistenceRoundTrip(t *testing.T) {
	storage := newMemStorage()

	c, err := cart.NewLocalCart(storage, cartKey)
	require.NoError(t, err)
	require.NoError(t, c.AddItem(line("p1", 500, cart.Option{Key: "size", Value: "M"}), 2))
	require.NoError(t, c.AddItem(line("p2", 300), 1))
	require.NoError(t, c.UpdateQuantity(cart.ProductRef{ProductID: "p2"}, nil, 4))
	want := c.Lines()

	rehydrated, err := cart.NewLocalCart(storage, cartKey)
	require.NoError(t, err)

	got := rehydrated.Lines()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Ref, got[i].Ref)
		assert.Equal(t, want[i].Options, got[i].Options)
		assert.Equal(t, want[i].Quantity, got[i].Quantity)
		assert.True(t, want[i].UnitPrice.Equal(got[i].UnitPrice))
		assert.Equal(t, want[i].Currency, got[i].Currency)
	}
}

// The drawer flag is transient: a rehydrated cart starts closed.
func TestLocalCart_DrawerNotPersisted(t *testing.T) {
	storage := newMemStorage()

	c, err := cart.NewLocalCart(storage, cartKey)
	require.NoError(t, err)
	require.NoError(t, c.AddItem(line("p1", 100), 1))
	require.True(t, c.IsOpen())

	rehydrated, err := cart.NewLocalCart(storage, cartKey)
	require.NoError(t, err)
	assert.False(t, rehydrated.IsOpen())
}

func TestLocalCart_MissingSnapshotYieldsEmptyCart(t *testing.T) {
	c, err := cart.NewLocalCart(newMemStorage(), cartKey)
	require.NoError(t, err)
	assert.Empty(t, c.Lines())
}

func TestLocalCart_CorruptSnapshotIsAnError(t *testing.T) {
	storage := newMemStorage()
	storage.data[cartKey] = []byte("{not json")

	_, err := cart.NewLocalCart(storage, cartKey)
	assert.Error(t, err)
}

// Clear drops both the lines and the durable snapshot.
func TestLocalCart_ClearDropsSnapshot(t *testing.T) {
	storage := newMemStorage()
	c, err := cart.NewLocalCart(storage, cartKey)
	require.NoError(t, err)
	require.NoError(t, c.AddItem(line("p1", 100), 1))
	require.NotEmpty(t, storage.data[cartKey])

	require.NoError(t, c.Clear())

	assert.Empty(t, c.Lines())
	assert.Empty(t, storage.data[cartKey])
}

// A failing save surfaces to the caller; the in-memory state keeps the
// mutation (snapshot is eventually consistent with memory, not the
// reverse).
func TestLocalCart_SaveFailureSurfaces(t *testing.T) {
	storage := newMemStorage()
	c, err := cart.NewLocalCart(storage, cartKey)
	require.NoError(t, err)

	storage.saveErr = errors.New("disk full")
	err = c.AddItem(line("p1", 100), 1)

	assert.Error(t, err)
	assert.Len(t, c.Lines(), 1)
}
