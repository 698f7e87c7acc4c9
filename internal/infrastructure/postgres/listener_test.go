package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaryaethnics/storefront-api/pkg/logger"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

// fakeNotifyConn scripts wait results: each call to wait consumes one
// queued error (nil = a notification arrived) or blocks until cancel.
type fakeNotifyConn struct {
	waits chan error

	mu       sync.Mutex
	released bool
}

func newFakeNotifyConn() *fakeNotifyConn {
	return &fakeNotifyConn{waits: make(chan error, 8)}
}

func (c *fakeNotifyConn) wait(ctx context.Context) error {
	select {
	case err := <-c.waits:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *fakeNotifyConn) release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.released = true
}

func (c *fakeNotifyConn) isReleased() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}

func testFeedLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func shortReconnectDelay(t *testing.T) {
	t.Helper()
	prev := reconnectDelay
	reconnectDelay = time.Millisecond
	t.Cleanup(func() { reconnectDelay = prev })
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconnect behavior
// ──────────────────────────────────────────────────────────────────────────────

// A dead connection is released and replaced; notifications keep flowing
// on the replacement, with one catch-up change fired for the gap.
func TestCategoryFeed_ReconnectsAfterConnectionLoss(t *testing.T) {
	shortReconnectDelay(t)

	dead := newFakeNotifyConn()
	dead.waits <- errors.New("unexpected EOF")
	fresh := newFakeNotifyConn()

	var connMu sync.Mutex
	connects := 0
	connect := func(context.Context) (notifyConn, error) {
		connMu.Lock()
		defer connMu.Unlock()
		connects++
		return fresh, nil
	}

	changes := make(chan struct{}, 8)
	onChange := func() { changes <- struct{}{} }

	feed := &CategoryFeed{log: testFeedLogger()}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go feed.run(ctx, dead, connect, onChange)

	// Catch-up change after the reconnect.
	select {
	case <-changes:
	case <-time.After(waitFor):
		t.Fatal("no catch-up change after reconnect")
	}
	assert.True(t, dead.isReleased(), "dead connection released")
	connMu.Lock()
	assert.Equal(t, 1, connects)
	connMu.Unlock()

	// Notifications resume on the replacement connection.
	fresh.waits <- nil
	select {
	case <-changes:
	case <-time.After(waitFor):
		t.Fatal("no change for a notification on the new connection")
	}

	cancel()
	require.Eventually(t, fresh.isReleased, waitFor, tick, "replacement released on cancel")
}

// Failed reconnect attempts back off and retry until one succeeds.
func TestCategoryFeed_RetriesFailedReconnect(t *testing.T) {
	shortReconnectDelay(t)

	dead := newFakeNotifyConn()
	dead.waits <- errors.New("connection reset")
	fresh := newFakeNotifyConn()

	var connMu sync.Mutex
	connects := 0
	connect := func(context.Context) (notifyConn, error) {
		connMu.Lock()
		defer connMu.Unlock()
		connects++
		if connects < 3 {
			return nil, errors.New("database still down")
		}
		return fresh, nil
	}

	changes := make(chan struct{}, 8)
	feed := &CategoryFeed{log: testFeedLogger()}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go feed.run(ctx, dead, connect, func() { changes <- struct{}{} })

	select {
	case <-changes:
	case <-time.After(waitFor):
		t.Fatal("no change after reconnect finally succeeded")
	}
	connMu.Lock()
	assert.Equal(t, 3, connects)
	connMu.Unlock()
}

// Cancellation during the backoff window stops the loop without another
// connection attempt.
func TestCategoryFeed_CancelDuringBackoffStops(t *testing.T) {
	prev := reconnectDelay
	reconnectDelay = time.Hour
	t.Cleanup(func() { reconnectDelay = prev })

	dead := newFakeNotifyConn()
	dead.waits <- errors.New("connection reset")

	var connMu sync.Mutex
	connects := 0
	connect := func(context.Context) (notifyConn, error) {
		connMu.Lock()
		defer connMu.Unlock()
		connects++
		return newFakeNotifyConn(), nil
	}

	done := make(chan struct{})
	feed := &CategoryFeed{log: testFeedLogger()}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		feed.run(ctx, dead, connect, func() {})
		close(done)
	}()

	require.Eventually(t, dead.isReleased, waitFor, tick, "dead connection released before backoff")
	cancel()

	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("run did not stop on cancel")
	}
	connMu.Lock()
	assert.Equal(t, 0, connects)
	connMu.Unlock()
}
