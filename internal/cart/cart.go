// Package cart holds the client-side shopping cart aggregate: a list of
// product snapshots with quantities, persisted to device-local storage on
// every change. The server never merges carts; a cart only reaches the
// backend as the payload of an order submission.
package cart

import (
	"go.uber.org/zap"

	"github.com/omaradel73/zamazon-v2/internal/domain"
)

// Line pairs a product snapshot with a quantity. Totals use the snapshot
// price, not a live catalog lookup.
type Line struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Store persists the aggregate between sessions. Write failures are
// non-fatal: the in-memory cart stays usable.
type Store interface {
	Load() ([]Line, error)
	Save(lines []Line) error
}

// Cart is single-writer by design: one browser session owns it. Concurrent
// edits from two sessions are last-write-wins at the store.
type Cart struct {
	lines []Line
	store Store
	log   *zap.Logger
}

func New(store Store, log *zap.Logger) *Cart {
	c := &Cart{store: store, log: log}
	if store == nil {
		return c
	}
	lines, err := store.Load()
	if err != nil {
		log.Warn("cart: load from storage failed, starting empty", zap.Error(err))
		return c
	}
	c.lines = lines
	return c
}

// AddItem merges by product identity: an already-present product increments
// its line quantity instead of appending a duplicate line.
func (c *Cart) AddItem(p domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			c.lines[i].Quantity += quantity
			c.persist()
			return
		}
	}
	c.lines = append(c.lines, Line{Product: p, Quantity: quantity})
	c.persist()
}

// RemoveItem drops the whole line regardless of quantity.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.persist()
			return
		}
	}
}

// SetQuantity sets a line's quantity, clamping to a minimum of 1. Deleting a
// line requires an explicit RemoveItem.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines[i].Quantity = quantity
			c.persist()
			return
		}
	}
}

func (c *Cart) Clear() {
	c.lines = nil
	c.persist()
}

// Lines returns a copy so callers cannot bypass the merge invariant.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) TotalItems() int {
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for _, l := range c.lines {
		total += l.Product.Price * float64(l.Quantity)
	}
	return total
}

func (c *Cart) persist() {
	if c.store == nil {
		return
	}
	if err := c.store.Save(c.Lines()); err != nil {
		c.log.Warn("cart: save to storage failed, keeping in-memory state", zap.Error(err))
	}
}
