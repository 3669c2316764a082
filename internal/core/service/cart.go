package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/remanmarket/erp-core/internal/core/domain"
)

// StatusReader looks up the current lifecycle status of an inventory item.
type StatusReader interface {
	ItemStatus(ctx context.Context, id string) (domain.ItemStatus, error)
}

// Cart holds selected-but-unordered item snapshots. Lines are deduplicated
// by inventory id and always carry quantity 1. Add re-validates the
// referenced item's status so ordered or sold stock can never enter the
// cart, even if the caller failed to filter candidates.
type Cart struct {
	mu       sync.Mutex
	lines    []domain.CartLine
	statuses StatusReader
}

// NewCart returns an empty cart. statuses may be nil, which disables
// add-time status validation.
func NewCart(statuses StatusReader) *Cart {
	return &Cart{statuses: statuses}
}

// Add appends a line for the snapshotted item. Re-adding an item already
// in the cart is a no-op.
func (c *Cart) Add(ctx context.Context, line domain.CartLine) error {
	if line.InventoryID == "" {
		return fmt.Errorf("cart line needs an inventory id: %w", ErrInvalidState)
	}

	if c.statuses != nil {
		status, err := c.statuses.ItemStatus(ctx, line.InventoryID)
		if err != nil {
			return err
		}
		if status == domain.ItemStatusOrdered || status == domain.ItemStatusSold {
			return fmt.Errorf("item %s is %s: %w", line.InventoryID, status, ErrInvalidState)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, l := range c.lines {
		if l.InventoryID == line.InventoryID {
			return nil
		}
	}

	if line.ID == "" {
		line.ID = uuid.NewString()
	}
	line.Quantity = 1
	c.lines = append(c.lines, line)
	return nil
}

func (c *Cart) Remove(lineID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, l := range c.lines {
		if l.ID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("cart line %s: %w", lineID, ErrNotFound)
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Total recomputes the sum of line prices on every call; nothing is
// cached.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// Lines returns a copy of the current cart lines in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.CartLine(nil), c.lines...)
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}
