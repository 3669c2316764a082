package domain

import "time"

type OrderEventType string

const (
	EventOrderCreated       OrderEventType = "order.created"
	EventOrderStatusChanged OrderEventType = "order.status_changed"
	EventOrdersCleared      OrderEventType = "orders.cleared"
)

// OrderEvent is published to the optional message broker whenever the
// order collection changes.
type OrderEvent struct {
	ID        string         `json:"id"`
	Type      OrderEventType `json:"type"`
	OrderID   string         `json:"order_id,omitempty"`
	Status    OrderStatus    `json:"status,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
