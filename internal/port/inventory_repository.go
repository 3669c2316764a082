package port

import (
	"context"
	"time"

	"github.com/remanmarket/erp-core/internal/core/domain"
)

type InventoryRepository interface {
	// GetItem retrieves an item by id, returning nil when absent.
	GetItem(ctx context.Context, id string) (*domain.InventoryItem, error)

	// ListItems returns all items, newest first.
	ListItems(ctx context.Context) ([]domain.InventoryItem, error)

	// SaveItem inserts or replaces an item.
	SaveItem(ctx context.Context, item domain.InventoryItem) error

	// UpdateStatusBatch sets the status of every listed item atomically:
	// if any id is absent, no item is changed.
	UpdateStatusBatch(ctx context.Context, ids []string, status domain.ItemStatus, updatedAt time.Time) error
}
