package tests

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/remanmarket/erp-core/internal/adapter/storage"
	"github.com/remanmarket/erp-core/internal/core/domain"
	"github.com/remanmarket/erp-core/internal/core/service"
	"github.com/remanmarket/erp-core/internal/fixture"
)

type testEnv struct {
	inventory     *service.InventoryService
	cart          *service.Cart
	orders        *service.OrderService
	notifications *service.NotificationLog
	preferences   *service.Preferences
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	inventoryRepo := storage.NewMemoryInventory()
	orderRepo := storage.NewMemoryOrders()
	prefRepo := storage.NewMemoryPreferences()

	ctx := context.Background()
	for _, item := range fixture.Items() {
		if err := inventoryRepo.SaveItem(ctx, item); err != nil {
			t.Fatalf("seed item: %v", err)
		}
	}

	notifications := service.NewNotificationLog()
	inventory := service.NewInventoryService(inventoryRepo, notifications)

	return &testEnv{
		inventory:     inventory,
		cart:          service.NewCart(inventory),
		orders:        service.NewOrderService(orderRepo, notifications, nil),
		notifications: notifications,
		preferences:   service.NewPreferences(prefRepo),
	}
}

func (e *testEnv) addToCart(t *testing.T, ctx context.Context, inventoryID string) {
	t.Helper()
	item, err := e.inventory.Get(ctx, inventoryID)
	if err != nil {
		t.Fatalf("get %s: %v", inventoryID, err)
	}
	if err := e.cart.Add(ctx, domain.CartLineFromItem(item)); err != nil {
		t.Fatalf("add %s to cart: %v", inventoryID, err)
	}
}

func TestIntegration_OrderLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	// Browse with a status filter.
	available, err := env.inventory.List(ctx, domain.ItemFilter{Status: domain.ItemStatusAvailable})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(available) < 2 {
		t.Fatalf("expected at least 2 available fixture items, got %d", len(available))
	}

	// Build a cart from two available items and check out.
	env.addToCart(t, ctx, "inv-3")
	env.addToCart(t, ctx, "inv-4")

	unreadBefore := env.notifications.UnreadCount()

	order, err := env.orders.Checkout(ctx, env.cart, domain.Staff{Name: "Demo User", Email: "demo@example.com"})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if order.Status != domain.OrderStatusPending {
		t.Errorf("new order must be Pending, got %s", order.Status)
	}
	if !order.TotalAmount.Equal(decimal.NewFromInt(40500)) {
		t.Errorf("expected total 40500, got %s", order.TotalAmount)
	}
	if env.cart.Len() != 0 {
		t.Error("checkout must empty the cart")
	}
	if env.notifications.UnreadCount() != unreadBefore+1 {
		t.Error("checkout must add exactly one notification")
	}

	// Vendor confirms, buyer completes.
	change, err := env.orders.RequestStatusChange(ctx, order.ID, domain.OrderStatusConfirmed, domain.RoleVendorAdmin)
	if err != nil {
		t.Fatalf("request confirm: %v", err)
	}
	if _, err := env.orders.ApplyStatusChange(ctx, change.OrderID, change.To, nil); err != nil {
		t.Fatalf("apply confirm: %v", err)
	}

	if _, err := env.orders.RequestStatusChange(ctx, order.ID, domain.OrderStatusCompleted, domain.RoleVendorAdmin); err == nil {
		t.Error("vendor admin must not complete a confirmed order")
	}
	change, err = env.orders.RequestStatusChange(ctx, order.ID, domain.OrderStatusCompleted, domain.RoleBuyerAgent)
	if err != nil {
		t.Fatalf("request complete: %v", err)
	}
	final, err := env.orders.ApplyStatusChange(ctx, change.OrderID, change.To, nil)
	if err != nil {
		t.Fatalf("apply complete: %v", err)
	}
	if final.Status != domain.OrderStatusCompleted {
		t.Errorf("expected Completed, got %s", final.Status)
	}

	// Completed is terminal.
	if _, err := env.orders.ApplyStatusChange(ctx, order.ID, domain.OrderStatusCancelled, []string{"Out of Stock"}); err == nil {
		t.Error("completed orders must reject further transitions")
	}
}

func TestIntegration_CancellationFlow(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	env.addToCart(t, ctx, "inv-3")
	order, err := env.orders.Checkout(ctx, env.cart, domain.Staff{Name: "Demo User"})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	change, err := env.orders.RequestStatusChange(ctx, order.ID, domain.OrderStatusCancelled, domain.RoleBuyerAdmin)
	if err != nil {
		t.Fatalf("request cancel: %v", err)
	}
	if !change.ReasonRequired {
		t.Error("cancellation must require a reason")
	}

	if _, err := env.orders.ApplyStatusChange(ctx, order.ID, domain.OrderStatusCancelled, []string{"   "}); err == nil {
		t.Error("blank-only reasons must be rejected")
	}

	cancelled, err := env.orders.ApplyStatusChange(ctx, order.ID, domain.OrderStatusCancelled,
		[]string{"Price Mismatch", "  supplier raised quote  "})
	if err != nil {
		t.Fatalf("apply cancel: %v", err)
	}
	if len(cancelled.CancellationReasons) != 2 {
		t.Fatalf("expected 2 reasons, got %v", cancelled.CancellationReasons)
	}
	if cancelled.CancellationReasons[1] != "supplier raised quote" {
		t.Errorf("reasons must be trimmed, got %q", cancelled.CancellationReasons[1])
	}

	line := domain.StatusProgression(cancelled.Status, cancelled.CancellationReasons)
	if line != "Status: Cancelled (Price Mismatch, supplier raised quote)" {
		t.Errorf("unexpected progression %q", line)
	}
}

func TestIntegration_OrderedItemsAreFrozen(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	// inv-2 is ordered in the fixture set. It can neither go back on
	// the market nor enter a new cart, but it can still be sold.
	err := env.inventory.SetStatus(ctx, []string{"inv-2"}, domain.ItemStatusListed)
	if err == nil {
		t.Error("ordered item must not relist")
	}

	item, err := env.inventory.Get(ctx, "inv-2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if err := env.cart.Add(ctx, domain.CartLineFromItem(item)); err == nil {
		t.Error("ordered item must not enter the cart")
	}

	if err := env.inventory.SetStatus(ctx, []string{"inv-2"}, domain.ItemStatusSold); err != nil {
		t.Errorf("ordered item must be sellable: %v", err)
	}
}

func TestIntegration_BatchStatusAtomicity(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	// inv-3 could be listed, but inv-2 is ordered, so the whole batch fails.
	err := env.inventory.SetStatus(ctx, []string{"inv-3", "inv-2"}, domain.ItemStatusListed)
	if err == nil {
		t.Fatal("expected batch rejection")
	}

	status, err := env.inventory.ItemStatus(ctx, "inv-3")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status != domain.ItemStatusAvailable {
		t.Errorf("inv-3 must be untouched by a failed batch, got %s", status)
	}
}

func TestIntegration_ClearAllOrders(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	env.addToCart(t, ctx, "inv-3")
	if _, err := env.orders.Checkout(ctx, env.cart, domain.Staff{Name: "Demo User"}); err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if err := env.orders.ClearAll(ctx); err != nil {
		t.Fatalf("clear all: %v", err)
	}
	orders, err := env.orders.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("expected no orders after clear, got %d", len(orders))
	}

	// Order numbering continues after a clear within the same process.
	env.addToCart(t, ctx, "inv-4")
	order, err := env.orders.Checkout(ctx, env.cart, domain.Staff{Name: "Demo User"})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if order.OrderNumber != "ORD-00002" {
		t.Errorf("expected ORD-00002, got %s", order.OrderNumber)
	}
}
