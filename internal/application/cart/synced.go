package cart

import (
	"context"
	"errors"
	"sync"
)

// Sync/checkout sentinels.
var (
	// ErrSyncInFlight is returned when Sync is called while another sync
	// is running. Policy: coalesce — the caller relies on the in-flight
	// sync and re-triggers later (the drawer re-syncs on open).
	ErrSyncInFlight = errors.New("cart sync already in flight")
	// ErrNotSynced is returned by CheckoutURL before a successful sync.
	ErrNotSynced = errors.New("cart not synced yet")
)

// SyncedCart keeps the local line list as a cache over a remote
// authoritative cart. Mutations stay local and optimistic; Sync pushes
// the local state to the remote backend, which alone knows real prices
// and the checkout URL. Only one sync runs at a time.
type SyncedCart struct {
	Store
	client RemoteCartClient

	syncMu      sync.Mutex
	syncing     bool
	handle      string
	checkoutURL string
	resolved    []Line
}

// NewSyncedCart builds a synced cart over the given remote client.
func NewSyncedCart(client RemoteCartClient) *SyncedCart {
	return &SyncedCart{client: client}
}

// Sync reconciles the local lines against the remote cart: the first call
// creates the remote handle seeded with the local lines, later calls
// replace the remote quantities to match local state. On failure the
// local lines are untouched and the error goes back to the caller;
// checkout stays unavailable until a later sync succeeds. A call while
// another sync is in flight returns ErrSyncInFlight (coalesce policy,
// applied consistently).
func (c *SyncedCart) Sync(ctx context.Context) error {
	c.syncMu.Lock()
	if c.syncing {
		c.syncMu.Unlock()
		return ErrSyncInFlight
	}
	c.syncing = true
	handle := c.handle
	c.syncMu.Unlock()

	lines := c.Lines()

	var remote *RemoteCart
	var err error
	if handle == "" {
		remote, err = c.client.CreateCart(ctx, lines)
	} else {
		remote, err = c.client.UpdateCart(ctx, handle, lines)
	}

	c.syncMu.Lock()
	defer c.syncMu.Unlock()
	c.syncing = false
	if err != nil {
		return err
	}
	if remote.Handle != "" {
		c.handle = remote.Handle
	}
	c.checkoutURL = remote.CheckoutURL
	c.resolved = remote.Lines
	return nil
}

// IsSyncing reports whether a sync is in flight; the UI disables checkout
// while true.
func (c *SyncedCart) IsSyncing() bool {
	c.syncMu.Lock()
	defer c.syncMu.Unlock()
	return c.syncing
}

// CheckoutURL returns the remote checkout URL cached by the last
// successful sync, or ErrNotSynced when none has succeeded yet or a sync
// is still in flight.
func (c *SyncedCart) CheckoutURL() (string, error) {
	c.syncMu.Lock()
	defer c.syncMu.Unlock()
	if c.syncing || c.checkoutURL == "" {
		return "", ErrNotSynced
	}
	return c.checkoutURL, nil
}

// ResolvedLines returns the authoritative lines from the last successful
// sync (server-side prices), or nil before one.
func (c *SyncedCart) ResolvedLines() []Line {
	c.syncMu.Lock()
	defer c.syncMu.Unlock()
	out := make([]Line, len(c.resolved))
	copy(out, c.resolved)
	return out
}

// Handle returns the remote cart handle, empty before the first
// successful sync.
func (c *SyncedCart) Handle() string {
	c.syncMu.Lock()
	defer c.syncMu.Unlock()
	return c.handle
}
