package port

import (
	"context"

	"github.com/remanmarket/erp-core/internal/core/domain"
)

type OrderRepository interface {
	// GetOrder retrieves an order by id, returning nil when absent.
	GetOrder(ctx context.Context, id string) (*domain.Order, error)

	// ListOrders returns all orders, newest first.
	ListOrders(ctx context.Context) ([]domain.Order, error)

	// SaveOrder inserts or replaces an order together with its line items.
	SaveOrder(ctx context.Context, order domain.Order) error

	// DeleteAllOrders empties the order collection.
	DeleteAllOrders(ctx context.Context) error
}
