package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aaryaethnics/storefront-api/internal/application/cart"
)

var _ cart.Storage = (*CartSnapshotRepo)(nil)

// CartSnapshotRepo persists cart snapshots keyed by session id. The
// snapshot body is the cart's own JSON; this adapter stores it opaquely.
type CartSnapshotRepo struct {
	q Querier
}

func NewCartSnapshotRepository(q Querier) *CartSnapshotRepo {
	return &CartSnapshotRepo{q: q}
}

// Load returns the snapshot for key, (nil, nil) when none has been saved.
func (r *CartSnapshotRepo) Load(key string) ([]byte, error) {
	var data []byte
	err := r.q.QueryRow(context.Background(),
		`SELECT snapshot FROM cart_snapshots WHERE session_id = $1`, key,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load cart snapshot: %w", err)
	}
	return data, nil
}

func (r *CartSnapshotRepo) Save(key string, data []byte) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO cart_snapshots (session_id, snapshot, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (session_id) DO UPDATE SET snapshot = EXCLUDED.snapshot, updated_at = now()`,
		key, data,
	)
	if err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	return nil
}

func (r *CartSnapshotRepo) Delete(key string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM cart_snapshots WHERE session_id = $1`, key,
	)
	if err != nil {
		return fmt.Errorf("delete cart snapshot: %w", err)
	}
	return nil
}
