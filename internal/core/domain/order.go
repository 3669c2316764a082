package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status has no outgoing transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// ValidOrderTransition reports whether the order state machine has an edge
// from current to next, regardless of who is asking.
func ValidOrderTransition(current, next OrderStatus) bool {
	switch current {
	case OrderStatusPending:
		return next == OrderStatusConfirmed || next == OrderStatusCancelled
	case OrderStatusConfirmed:
		return next == OrderStatusCompleted || next == OrderStatusCancelled
	}
	return false
}

type Role string

const (
	RoleVendorAdmin Role = "Vendor Admin"
	RoleBuyerAdmin  Role = "Buyer Admin"
	RoleBuyerAgent  Role = "Buyer Agent"
)

// AllowedNextStatuses returns the statuses the role may move an order to
// from current. Unknown roles are read-only and get an empty set.
func AllowedNextStatuses(role Role, current OrderStatus) []OrderStatus {
	switch role {
	case RoleVendorAdmin:
		if current == OrderStatusPending {
			return []OrderStatus{OrderStatusConfirmed, OrderStatusCancelled}
		}
	case RoleBuyerAdmin, RoleBuyerAgent:
		switch current {
		case OrderStatusPending:
			return []OrderStatus{OrderStatusCancelled}
		case OrderStatusConfirmed:
			return []OrderStatus{OrderStatusCompleted, OrderStatusCancelled}
		}
	}
	return nil
}

// RoleCanTransition reports whether role may move an order from current
// to next.
func RoleCanTransition(role Role, current, next OrderStatus) bool {
	for _, s := range AllowedNextStatuses(role, current) {
		if s == next {
			return true
		}
	}
	return false
}

// PredefinedCancellationReasons is the fixed reason set offered on
// cancellation; free-text reasons are accepted alongside it.
var PredefinedCancellationReasons = []string{
	"Price Mismatch",
	"Out of Stock",
	"Quality Issues",
	"Delivery Issues",
}

// NormalizeCancellationReasons trims the supplied reasons and drops blank
// entries. Cancellation requires at least one surviving reason.
func NormalizeCancellationReasons(reasons []string) []string {
	var out []string
	for _, r := range reasons {
		r = strings.TrimSpace(r)
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}

// OrderLineItem is a snapshot of an inventory item at order time. Unit
// price and name are captured, not joined live.
type OrderLineItem struct {
	ID          string          `json:"id"`
	InventoryID string          `json:"inventory_id"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

func (l OrderLineItem) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Staff struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Order is an aggregate of line items with its own lifecycle status,
// distinct from inventory status. TotalAmount, TotalQuantity and
// ItemsNumber are derived from Items and must be recalculated after every
// mutation of the line items.
type Order struct {
	ID                  string          `json:"id"`
	OrderNumber         string          `json:"order_number"`
	Status              OrderStatus     `json:"status"`
	Items               []OrderLineItem `json:"items"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	TotalQuantity       int             `json:"total_quantity"`
	ItemsNumber         int             `json:"items_number"`
	CancellationReasons []string        `json:"cancellation_reasons,omitempty"`
	OrderingStaff       Staff           `json:"ordering_staff"`
	DeliveryName        string          `json:"delivery_name,omitempty"`
	DeliveryAddress     string          `json:"delivery_address,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// Recalculate rederives the aggregate fields from the line items.
func (o *Order) Recalculate() {
	total := decimal.Zero
	qty := 0
	for _, l := range o.Items {
		total = total.Add(l.Subtotal())
		qty += l.Quantity
	}
	o.TotalAmount = total
	o.TotalQuantity = qty
	o.ItemsNumber = len(o.Items)
}

// StatusProgression renders the display line for an order status as a
// pure function of the state machine. Cancelled orders show their reasons,
// everything else shows the linear progression up to the current status.
func StatusProgression(status OrderStatus, reasons []string) string {
	if status == OrderStatusCancelled {
		if len(reasons) > 0 {
			return "Status: Cancelled (" + strings.Join(reasons, ", ") + ")"
		}
		return "Status: Cancelled"
	}

	flow := []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusCompleted}
	idx := -1
	for i, s := range flow {
		if s == status {
			idx = i
		}
	}
	if idx == -1 {
		return "Status: " + string(status)
	}

	parts := make([]string, 0, idx+1)
	for _, s := range flow[:idx+1] {
		parts = append(parts, string(s))
	}
	return "Status: " + strings.Join(parts, " → ")
}
