package cart_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaryaethnics/storefront-api/internal/application/cart"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

// fakeRemote is a scripted cart.RemoteCartClient.
type fakeRemote struct {
	createCalls int
	updateCalls int
	lastHandle  string
	lastLines   []cart.Line
	failNext    error
	release     chan struct{} // when set, calls block until closed
}

func (f *fakeRemote) answer(lines []cart.Line) (*cart.RemoteCart, error) {
	if f.release != nil {
		<-f.release
	}
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return nil, err
	}
	return &cart.RemoteCart{
		Handle:      "gid://cart/abc123",
		CheckoutURL: "https://checkout.example.com/c/abc123",
		Lines:       lines,
	}, nil
}

func (f *fakeRemote) CreateCart(_ context.Context, lines []cart.Line) (*cart.RemoteCart, error) {
	f.createCalls++
	f.lastLines = lines
	return f.answer(lines)
}

func (f *fakeRemote) UpdateCart(_ context.Context, handle string, lines []cart.Line) (*cart.RemoteCart, error) {
	f.updateCalls++
	f.lastHandle = handle
	f.lastLines = lines
	return f.answer(lines)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sync protocol
// ──────────────────────────────────────────────────────────────────────────────

// First sync creates the remote handle seeded with the local lines; later
// syncs update that handle instead of creating a new one.
func TestSyncedCart_CreateThenUpdate(t *testing.T) {
	remote := &fakeRemote{}
	c := cart.NewSyncedCart(remote)
	require.NoError(t, c.AddItem(line("p1", 500), 2))

	require.NoError(t, c.Sync(context.Background()))
	assert.Equal(t, 1, remote.createCalls)
	assert.Equal(t, 0, remote.updateCalls)
	assert.Equal(t, "gid://cart/abc123", c.Handle())

	require.NoError(t, c.AddItem(line("p2", 300), 1))
	require.NoError(t, c.Sync(context.Background()))
	assert.Equal(t, 1, remote.createCalls)
	assert.Equal(t, 1, remote.updateCalls)
	assert.Equal(t, "gid://cart/abc123", remote.lastHandle)
	assert.Len(t, remote.lastLines, 2)
}

// Checkout URL only becomes available after a successful sync.
func TestSyncedCart_CheckoutURLGatedOnSync(t *testing.T) {
	c := cart.NewSyncedCart(&fakeRemote{})
	require.NoError(t, c.AddItem(line("p1", 500), 1))

	_, err := c.CheckoutURL()
	assert.ErrorIs(t, err, cart.ErrNotSynced)

	require.NoError(t, c.Sync(context.Background()))

	url, err := c.CheckoutURL()
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example.com/c/abc123", url)
}

// A failed sync leaves the local lines exactly as they were and keeps
// checkout disabled.
func TestSyncedCart_FailureDoesNotCorruptLocalState(t *testing.T) {
	remote := &fakeRemote{failNext: errors.New("backend unavailable")}
	c := cart.NewSyncedCart(remote)
	require.NoError(t, c.AddItem(line("p1", 500), 2))
	require.NoError(t, c.AddItem(line("p2", 300), 1))
	before := c.Lines()

	err := c.Sync(context.Background())

	require.Error(t, err)
	assert.Equal(t, before, c.Lines(), "local lines unchanged after failed sync")
	_, err = c.CheckoutURL()
	assert.ErrorIs(t, err, cart.ErrNotSynced)
	assert.False(t, c.IsSyncing(), "flag cleared after failure")

	// a later sync recovers
	require.NoError(t, c.Sync(context.Background()))
	_, err = c.CheckoutURL()
	assert.NoError(t, err)
}

// A sync issued while one is in flight is coalesced: it returns
// ErrSyncInFlight and the remote sees a single call.
func TestSyncedCart_ConcurrentSyncCoalesced(t *testing.T) {
	remote := &fakeRemote{release: make(chan struct{})}
	c := cart.NewSyncedCart(remote)
	require.NoError(t, c.AddItem(line("p1", 500), 1))

	firstDone := make(chan error, 1)
	go func() { firstDone <- c.Sync(context.Background()) }()

	// wait for the first sync to take the flag
	require.Eventually(t, c.IsSyncing, waitFor, tick)

	err := c.Sync(context.Background())
	assert.ErrorIs(t, err, cart.ErrSyncInFlight)

	close(remote.release)
	require.NoError(t, <-firstDone)
	assert.Equal(t, 1, remote.createCalls+remote.updateCalls)
}

// Mutations during an in-flight sync are accepted locally (optimistic).
func TestSyncedCart_MutationsAcceptedWhileSyncing(t *testing.T) {
	remote := &fakeRemote{release: make(chan struct{})}
	c := cart.NewSyncedCart(remote)
	require.NoError(t, c.AddItem(line("p1", 500), 1))

	done := make(chan error, 1)
	go func() { done <- c.Sync(context.Background()) }()
	require.Eventually(t, c.IsSyncing, waitFor, tick)

	require.NoError(t, c.AddItem(line("p2", 300), 1))
	assert.Equal(t, 2, c.TotalItems())

	close(remote.release)
	require.NoError(t, <-done)
}

// ResolvedLines exposes the server-priced lines from the last sync.
func TestSyncedCart_ResolvedLines(t *testing.T) {
	c := cart.NewSyncedCart(&fakeRemote{})
	require.NoError(t, c.AddItem(line("p1", 500), 2))

	assert.Empty(t, c.ResolvedLines())
	require.NoError(t, c.Sync(context.Background()))
	require.Len(t, c.ResolvedLines(), 1)
}
