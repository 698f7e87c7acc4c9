package cart

import (
	"encoding/json"
	"fmt"
)

// snapshot is the persisted shape. Only the lines are durable; the drawer
// flag is transient UI state.
type snapshot struct {
	Lines []Line `json:"lines"`
}

// LocalCart is a self-contained cart persisted to durable key/value
// storage after every mutation and rehydrated on construction. The
// in-memory state is authoritative; the snapshot is eventually consistent
// with it, never the reverse.
type LocalCart struct {
	Store
	storage Storage
	key     string
}

// NewLocalCart builds the cart and rehydrates any snapshot stored under
// key. A missing snapshot yields an empty cart; a corrupt one is an error.
func NewLocalCart(storage Storage, key string) (*LocalCart, error) {
	c := &LocalCart{storage: storage, key: key}
	data, err := storage.Load(key)
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
	return c, nil
}

// AddItem merges or appends the line, then persists.
func (c *LocalCart) AddItem(line Line, qty int) error {
	if err := c.Store.AddItem(line, qty); err != nil {
		return err
	}
	return c.persist()
}

// UpdateQuantity updates or removes the line, then persists.
func (c *LocalCart) UpdateQuantity(ref ProductRef, options []Option, qty int) error {
	c.Store.UpdateQuantity(ref, options, qty)
	return c.persist()
}

// RemoveItem removes the line, then persists.
func (c *LocalCart) RemoveItem(ref ProductRef, options []Option) error {
	c.Store.RemoveItem(ref, options)
	return c.persist()
}

// Clear empties the cart and drops the snapshot.
func (c *LocalCart) Clear() error {
	c.Store.Clear()
	if err := c.storage.Delete(c.key); err != nil {
		return fmt.Errorf("delete cart snapshot: %w", err)
	}
	return nil
}

func (c *LocalCart) persist() error {
	data, err := json.Marshal(snapshot{Lines: c.Lines()})
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	if err := c.storage.Save(c.key, data); err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	return nil
}
