package port

import (
	"context"

	"github.com/remanmarket/erp-core/internal/core/domain"
)

// EventPublisher forwards order events to an external broker.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}
