package cart

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapStorage is an in-memory Storage with an optional per-key gate that
// blocks Load until released.
type mapStorage struct {
	mu        sync.Mutex
	snapshots map[string][]byte
	gates     map[string]chan struct{}
}

func newMapStorage() *mapStorage {
	return &mapStorage{snapshots: map[string][]byte{}, gates: map[string]chan struct{}{}}
}

func (s *mapStorage) gate(key string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := make(chan struct{})
	s.gates[key] = g
	return g
}

func (s *mapStorage) Load(key string) ([]byte, error) {
	s.mu.Lock()
	g := s.gates[key]
	s.mu.Unlock()
	if g != nil {
		<-g
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshots[key], nil
}

func (s *mapStorage) Save(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[key] = data
	return nil
}

func (s *mapStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, key)
	return nil
}

// fakeClock steps time manually.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestManager() (*Manager, *mapStorage, *fakeClock) {
	storage := newMapStorage()
	clock := &fakeClock{t: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	m := NewManager(storage, nil)
	m.now = clock.now
	return m, storage, clock
}

// ──────────────────────────────────────────────────────────────────────────────
// Idle eviction
// ──────────────────────────────────────────────────────────────────────────────

// Idle sessions fall out of the cache; the snapshot store makes the next
// access lossless, but it is a fresh instance.
func TestManager_EvictsIdleSessions(t *testing.T) {
	m, _, clock := newTestManager()

	stale, err := m.Get("stale")
	require.NoError(t, err)
	require.NoError(t, stale.AddItem(Line{Ref: ProductRef{ProductID: "p1"}, UnitPrice: decimal.NewFromInt(500), Currency: "INR"}, 2))

	clock.advance(sessionTTL + time.Minute)

	// Any access sweeps; a different session triggers the eviction.
	_, err = m.Get("other")
	require.NoError(t, err)
	assert.NotContains(t, m.carts, "stale")

	// Lines rehydrate from the snapshot on the next access.
	again, err := m.Get("stale")
	require.NoError(t, err)
	assert.NotSame(t, stale, again, "evicted session gets a fresh instance")
	assert.Equal(t, 2, again.TotalItems())
}

func TestManager_ActiveSessionsSurviveSweeps(t *testing.T) {
	m, _, clock := newTestManager()

	c, err := m.Get("live")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		clock.advance(sessionTTL / 2)
		got, err := m.Get("live")
		require.NoError(t, err)
		assert.Same(t, c, got, "touched session never expires")
	}
}

// A cart mid-sync is skipped by the sweep so the handle the sync is
// about to assign is not lost.
func TestManager_SweepSkipsSyncingCart(t *testing.T) {
	m, _, clock := newTestManager()

	c, err := m.Get("busy")
	require.NoError(t, err)
	c.syncMu.Lock()
	c.syncing = true
	c.syncMu.Unlock()

	clock.advance(sessionTTL + time.Minute)
	_, err = m.Get("other")
	require.NoError(t, err)
	assert.Contains(t, m.carts, "busy")

	c.syncMu.Lock()
	c.syncing = false
	c.syncMu.Unlock()
	clock.advance(sessionTTL + time.Minute)
	_, err = m.Get("other")
	require.NoError(t, err)
	assert.NotContains(t, m.carts, "busy")
}

// ──────────────────────────────────────────────────────────────────────────────
// First-access rehydration concurrency
// ──────────────────────────────────────────────────────────────────────────────

// A slow snapshot load for one session must not block another session.
func TestManager_SlowLoadDoesNotBlockOtherSessions(t *testing.T) {
	m, storage, _ := newTestManager()
	release := storage.gate("slow")

	started := make(chan struct{})
	go func() {
		close(started)
		_, _ = m.Get("slow")
	}()
	<-started

	done := make(chan error, 1)
	go func() {
		_, err := m.Get("fast")
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("unrelated session blocked behind a slow snapshot load")
	}
	close(release)
}

// Two concurrent first accesses for the same session converge on one
// instance.
func TestManager_ConcurrentFirstAccessSharesInstance(t *testing.T) {
	m, storage, _ := newTestManager()
	release := storage.gate("s")

	type result struct {
		cart *SessionCart
		err  error
	}
	results := make(chan result, 2)
	for i := 0; i < 2; i++ {
		go func() {
			c, err := m.Get("s")
			results <- result{cart: c, err: err}
		}()
	}

	// Both goroutines are loading; let them race to insert.
	close(release)
	first := <-results
	second := <-results
	require.NoError(t, first.err)
	require.NoError(t, second.err)
	assert.Same(t, first.cart, second.cart)
}
