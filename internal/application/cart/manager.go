package cart

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// SessionCart is the cart variant served over HTTP: lines are persisted
// per session like LocalCart and reconciled against the remote backend
// like SyncedCart.
type SessionCart struct {
	*SyncedCart
	storage Storage
	key     string
}

// AddItem merges or appends the line, then persists.
func (c *SessionCart) AddItem(line Line, qty int) error {
	if err := c.Store.AddItem(line, qty); err != nil {
		return err
	}
	return c.persist()
}

// UpdateQuantity updates or removes the line, then persists.
func (c *SessionCart) UpdateQuantity(ref ProductRef, options []Option, qty int) error {
	c.Store.UpdateQuantity(ref, options, qty)
	return c.persist()
}

// RemoveItem removes the line, then persists.
func (c *SessionCart) RemoveItem(ref ProductRef, options []Option) error {
	c.Store.RemoveItem(ref, options)
	return c.persist()
}

// Clear empties the cart and drops the snapshot. The remote handle is
// kept; the next sync pushes the empty line list.
func (c *SessionCart) Clear() error {
	c.Store.Clear()
	if err := c.storage.Delete(c.key); err != nil {
		return fmt.Errorf("delete cart snapshot: %w", err)
	}
	return nil
}

func (c *SessionCart) persist() error {
	data, err := json.Marshal(snapshot{Lines: c.Lines()})
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	if err := c.storage.Save(c.key, data); err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	return nil
}

// sessionTTL evicts carts idle past this long. Session ids are
// client-chosen, so the cache must not grow with every id ever seen;
// the snapshot store makes rehydration after eviction lossless.
const sessionTTL = 30 * time.Minute

type sessionEntry struct {
	cart     *SessionCart
	lastSeen time.Time
}

// Manager hands out one SessionCart per session id, rehydrating from
// storage on first access. Idle sessions are evicted. Safe for
// concurrent use.
type Manager struct {
	storage Storage
	client  RemoteCartClient
	ttl     time.Duration
	now     func() time.Time

	mu    sync.Mutex
	carts map[string]*sessionEntry
}

func NewManager(storage Storage, client RemoteCartClient) *Manager {
	return &Manager{
		storage: storage,
		client:  client,
		ttl:     sessionTTL,
		now:     time.Now,
		carts:   map[string]*sessionEntry{},
	}
}

// Get returns the cart for the session, creating and rehydrating it on
// first access. Repeated calls with the same id return the same instance,
// so remote sync state survives across requests.
func (m *Manager) Get(sessionID string) (*SessionCart, error) {
	m.mu.Lock()
	if e, ok := m.carts[sessionID]; ok {
		e.lastSeen = m.now()
		m.evictIdle()
		m.mu.Unlock()
		return e.cart, nil
	}
	m.mu.Unlock()

	// Rehydrate without the lock held; Load is a storage round-trip and
	// must not serialize unrelated sessions.
	c := &SessionCart{
		SyncedCart: NewSyncedCart(m.client),
		storage:    m.storage,
		key:        sessionID,
	}
	data, err := m.storage.Load(sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart snapshot: %w", err)
	}
	if len(data) > 0 {
		var snap snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("decode cart snapshot: %w", err)
		}
		c.restore(snap.Lines)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.carts[sessionID]; ok {
		// A concurrent request rehydrated first; its instance wins.
		e.lastSeen = m.now()
		return e.cart, nil
	}
	m.carts[sessionID] = &sessionEntry{cart: c, lastSeen: m.now()}
	m.evictIdle()
	return c, nil
}

// evictIdle drops sessions idle past the TTL. Caller holds m.mu. A cart
// with a sync in flight is kept so the remote handle it is about to
// receive is not orphaned.
func (m *Manager) evictIdle() {
	cutoff := m.now().Add(-m.ttl)
	for id, e := range m.carts {
		if e.lastSeen.Before(cutoff) && !e.cart.IsSyncing() {
			delete(m.carts, id)
		}
	}
}
