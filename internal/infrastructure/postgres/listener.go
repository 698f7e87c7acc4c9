package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aaryaethnics/storefront-api/internal/application/catalog"
	"github.com/aaryaethnics/storefront-api/pkg/logger"
)

var _ catalog.ChangeFeed = (*CategoryFeed)(nil)

// categoryChannel is raised by triggers on the categories table.
const categoryChannel = "category_changed"

// reconnectDelay spaces re-LISTEN attempts after a connection failure.
var reconnectDelay = time.Second

// CategoryFeed delivers category table change notifications over
// PostgreSQL LISTEN/NOTIFY. Each Subscribe holds a dedicated connection;
// a broken connection is released and replaced, since pgx does not
// resurrect it.
type CategoryFeed struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewCategoryFeed(pool *pgxpool.Pool, log *logger.Logger) *CategoryFeed {
	return &CategoryFeed{pool: pool, log: log}
}

// notifyConn is the slice of a pooled connection the listen loop uses.
type notifyConn interface {
	wait(ctx context.Context) error
	release()
}

type pooledNotifyConn struct {
	conn *pgxpool.Conn
}

func (c *pooledNotifyConn) wait(ctx context.Context) error {
	_, err := c.conn.Conn().WaitForNotification(ctx)
	return err
}

func (c *pooledNotifyConn) release() { c.conn.Release() }

// listen acquires a connection and issues LISTEN on it.
func (f *CategoryFeed) listen(ctx context.Context) (notifyConn, error) {
	conn, err := f.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire listen connection: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+categoryChannel); err != nil {
		conn.Release()
		return nil, fmt.Errorf("listen %s: %w", categoryChannel, err)
	}
	return &pooledNotifyConn{conn: conn}, nil
}

// Subscribe starts listening and invokes onChange for every notification
// until cancel is called. Notifications carry no payload; subscribers
// reload on their own.
func (f *CategoryFeed) Subscribe(onChange func()) (func(), error) {
	ctx, cancel := context.WithCancel(context.Background())

	conn, err := f.listen(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	go f.run(ctx, conn, f.listen, onChange)

	return cancel, nil
}

// run pumps notifications until ctx is cancelled. A wait error outside
// cancellation means the connection is dead: it is released and a fresh
// one is acquired with LISTEN re-issued, then onChange fires once to
// cover anything missed while disconnected.
func (f *CategoryFeed) run(ctx context.Context, conn notifyConn, connect func(context.Context) (notifyConn, error), onChange func()) {
	defer func() {
		if conn != nil {
			conn.release()
		}
	}()

	for {
		err := conn.wait(ctx)
		if err == nil {
			onChange()
			continue
		}
		if ctx.Err() != nil {
			return
		}
		f.log.Error().Err(err).Msg("category feed interrupted")

		conn.release()
		conn = nil
		for conn == nil {
			select {
			case <-time.After(reconnectDelay):
			case <-ctx.Done():
				return
			}
			c, err := connect(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				f.log.Error().Err(err).Msg("category feed reconnect failed")
				continue
			}
			conn = c
		}
		onChange()
	}
}
