package domain

import "time"

type NotificationType string

const (
	NotificationOrderConfirmed NotificationType = "order_confirmed"
	NotificationOrderUpdated   NotificationType = "order_updated"
	NotificationGeneral        NotificationType = "general"
)

// Notification is a user-facing message produced by store-level events.
// Entries are append-only; only the read flag ever changes.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	OrderID   string           `json:"order_id,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
