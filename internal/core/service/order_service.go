package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/remanmarket/erp-core/internal/core/domain"
	"github.com/remanmarket/erp-core/internal/port"
)

// OrderService owns the order collection and its role-gated state
// machine: Pending → Confirmed → Completed, with cancellation allowed
// from Pending and Confirmed. Completed and Cancelled are terminal.
type OrderService struct {
	repo      port.OrderRepository
	notifier  Notifier
	publisher port.EventPublisher

	// mu serializes every read-modify-write on the collection so a
	// concurrent apply cannot move an order out of a terminal status.
	mu         sync.Mutex
	nextNumber int
}

// NewOrderService wires the order store. publisher may be nil, which
// disables broker events.
func NewOrderService(repo port.OrderRepository, notifier Notifier, publisher port.EventPublisher) *OrderService {
	return &OrderService{repo: repo, notifier: notifier, publisher: publisher}
}

// StatusChange describes a validated-but-unapplied transition. The caller
// is expected to collect cancellation reasons when ReasonRequired is set,
// then call ApplyStatusChange.
type StatusChange struct {
	OrderID        string             `json:"order_id"`
	From           domain.OrderStatus `json:"from"`
	To             domain.OrderStatus `json:"to"`
	ReasonRequired bool               `json:"reason_required"`
}

// Checkout snapshots the cart into a new Pending order and empties the
// cart. After this call the order is fully decoupled from cart and
// inventory pricing.
func (s *OrderService) Checkout(ctx context.Context, cart *Cart, staff domain.Staff) (domain.Order, error) {
	lines := cart.Lines()
	if len(lines) == 0 {
		return domain.Order{}, fmt.Errorf("cart is empty: %w", ErrInvalidState)
	}

	now := time.Now()
	order := domain.Order{
		ID:            uuid.NewString(),
		Status:        domain.OrderStatusPending,
		OrderingStaff: staff,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, l := range lines {
		order.Items = append(order.Items, domain.OrderLineItem{
			ID:          uuid.NewString(),
			InventoryID: l.InventoryID,
			Name:        l.Name,
			Quantity:    l.Quantity,
			UnitPrice:   l.Price,
		})
	}
	order.Recalculate()

	number, err := s.claimOrderNumber(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	order.OrderNumber = number

	if err := s.repo.SaveOrder(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("save order: %w", err)
	}
	cart.Clear()

	s.notifier.Add(domain.Notification{
		Type:    domain.NotificationOrderConfirmed,
		Title:   "Order Placed",
		Content: fmt.Sprintf("Order %s has been placed", order.OrderNumber),
		OrderID: order.ID,
	})
	s.publish(ctx, domain.OrderEvent{
		Type:    domain.EventOrderCreated,
		OrderID: order.ID,
		Status:  order.Status,
	})
	return order, nil
}

func (s *OrderService) claimOrderNumber(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nextNumber == 0 {
		orders, err := s.repo.ListOrders(ctx)
		if err != nil {
			return "", fmt.Errorf("list orders: %w", err)
		}
		s.nextNumber = len(orders) + 1
	}
	number := fmt.Sprintf("ORD-%05d", s.nextNumber)
	s.nextNumber++
	return number, nil
}

// RequestStatusChange validates that role may move the order to next.
// The transition is not applied here; cancellations first need at least
// one reason collected by the caller.
func (s *OrderService) RequestStatusChange(ctx context.Context, orderID string, next domain.OrderStatus, role domain.Role) (StatusChange, error) {
	order, err := s.get(ctx, orderID)
	if err != nil {
		return StatusChange{}, err
	}
	if !next.Valid() {
		return StatusChange{}, fmt.Errorf("unknown order status %q: %w", next, ErrInvalidState)
	}
	if !domain.RoleCanTransition(role, order.Status, next) {
		return StatusChange{}, fmt.Errorf("role %q may not move order %s from %s to %s: %w",
			role, order.OrderNumber, order.Status, next, ErrForbidden)
	}

	return StatusChange{
		OrderID:        orderID,
		From:           order.Status,
		To:             next,
		ReasonRequired: next == domain.OrderStatusCancelled,
	}, nil
}

// ApplyStatusChange performs a previously requested transition. The
// state-machine edge is re-validated against the current status so a
// stale request cannot corrupt a terminal order; applying the status the
// order already has is a no-op. Reasons are stored only when cancelling
// and at least one non-blank reason is then required.
func (s *OrderService) ApplyStatusChange(ctx context.Context, orderID string, next domain.OrderStatus, reasons []string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.get(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if order.Status == next {
		return order, nil
	}
	if !domain.ValidOrderTransition(order.Status, next) {
		return domain.Order{}, fmt.Errorf("order %s cannot move from %s to %s: %w",
			order.OrderNumber, order.Status, next, ErrInvalidTransition)
	}

	title := "Order Status Updated"
	content := fmt.Sprintf("Order %s status updated to %s", order.OrderNumber, next)
	if next == domain.OrderStatusCancelled {
		normalized := domain.NormalizeCancellationReasons(reasons)
		if len(normalized) == 0 {
			return domain.Order{}, fmt.Errorf("cancellation requires at least one reason: %w", ErrInvalidState)
		}
		order.CancellationReasons = normalized
		title = "Order Cancelled"
		content = fmt.Sprintf("Order %s has been cancelled", order.OrderNumber)
	}

	order.Status = next
	order.UpdatedAt = time.Now()
	if err := s.repo.SaveOrder(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("save order: %w", err)
	}

	s.notifier.Add(domain.Notification{
		Type:    domain.NotificationOrderUpdated,
		Title:   title,
		Content: content,
		OrderID: order.ID,
	})
	s.publish(ctx, domain.OrderEvent{
		Type:    domain.EventOrderStatusChanged,
		OrderID: order.ID,
		Status:  next,
	})
	return order, nil
}

// RemoveLineItem drops the line at index and rederives the aggregates.
// Allowed only while the order is still Pending.
func (s *OrderService) RemoveLineItem(ctx context.Context, orderID string, index int) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.get(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if order.Status != domain.OrderStatusPending {
		return domain.Order{}, fmt.Errorf("order %s is %s, line items can only be removed while Pending: %w",
			order.OrderNumber, order.Status, ErrInvalidState)
	}
	if index < 0 || index >= len(order.Items) {
		return domain.Order{}, fmt.Errorf("order %s has no line item %d: %w", order.OrderNumber, index, ErrNotFound)
	}

	order.Items = append(order.Items[:index], order.Items[index+1:]...)
	order.Recalculate()
	order.UpdatedAt = time.Now()

	if err := s.repo.SaveOrder(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("save order: %w", err)
	}
	return order, nil
}

// ClearAll empties the order collection. Administrative reset.
func (s *OrderService) ClearAll(ctx context.Context) error {
	if err := s.repo.DeleteAllOrders(ctx); err != nil {
		return fmt.Errorf("delete all orders: %w", err)
	}

	s.notifier.Add(domain.Notification{
		Type:    domain.NotificationGeneral,
		Title:   "Data Cleared",
		Content: "All orders have been cleared.",
	})
	s.publish(ctx, domain.OrderEvent{Type: domain.EventOrdersCleared})
	return nil
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, orderID string) (domain.Order, error) {
	return s.get(ctx, orderID)
}

func (s *OrderService) get(ctx context.Context, orderID string) (domain.Order, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return domain.Order{}, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	return *order, nil
}

// publish forwards an event to the broker when one is configured. Broker
// failures never fail the local operation.
func (s *OrderService) publish(ctx context.Context, event domain.OrderEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		slog.Warn("publish order event failed", "type", event.Type, "order_id", event.OrderID, "error", err)
	}
}
