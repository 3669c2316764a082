package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRoleTransitionTable(t *testing.T) {
	type edge struct {
		role Role
		from OrderStatus
		to   OrderStatus
	}
	allowed := map[edge]bool{
		{RoleVendorAdmin, OrderStatusPending, OrderStatusConfirmed}: true,
		{RoleVendorAdmin, OrderStatusPending, OrderStatusCancelled}: true,
		{RoleBuyerAdmin, OrderStatusPending, OrderStatusCancelled}:  true,
		{RoleBuyerAdmin, OrderStatusConfirmed, OrderStatusCompleted}: true,
		{RoleBuyerAdmin, OrderStatusConfirmed, OrderStatusCancelled}: true,
		{RoleBuyerAgent, OrderStatusPending, OrderStatusCancelled}:   true,
		{RoleBuyerAgent, OrderStatusConfirmed, OrderStatusCompleted}: true,
		{RoleBuyerAgent, OrderStatusConfirmed, OrderStatusCancelled}: true,
	}

	roles := []Role{RoleVendorAdmin, RoleBuyerAdmin, RoleBuyerAgent, Role("Guest")}
	statuses := []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCancelled}

	for _, role := range roles {
		for _, from := range statuses {
			for _, to := range statuses {
				want := allowed[edge{role, from, to}]
				got := RoleCanTransition(role, from, to)
				if got != want {
					t.Errorf("RoleCanTransition(%s, %s, %s) = %v, want %v", role, from, to, got, want)
				}
			}
		}
	}
}

func TestVendorAdminHasNoConfirmedTransitions(t *testing.T) {
	if next := AllowedNextStatuses(RoleVendorAdmin, OrderStatusConfirmed); len(next) != 0 {
		t.Errorf("expected no transitions, got %v", next)
	}
}

func TestValidOrderTransition(t *testing.T) {
	valid := [][2]OrderStatus{
		{OrderStatusPending, OrderStatusConfirmed},
		{OrderStatusPending, OrderStatusCancelled},
		{OrderStatusConfirmed, OrderStatusCompleted},
		{OrderStatusConfirmed, OrderStatusCancelled},
	}
	for _, v := range valid {
		if !ValidOrderTransition(v[0], v[1]) {
			t.Errorf("expected %s -> %s to be valid", v[0], v[1])
		}
	}

	// Terminal states have no outgoing edges.
	for _, from := range []OrderStatus{OrderStatusCompleted, OrderStatusCancelled} {
		if !from.Terminal() {
			t.Errorf("expected %s to be terminal", from)
		}
		for _, to := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCancelled} {
			if ValidOrderTransition(from, to) {
				t.Errorf("expected no transition out of %s, got %s", from, to)
			}
		}
	}

	if ValidOrderTransition(OrderStatusPending, OrderStatusCompleted) {
		t.Error("Pending must not skip to Completed")
	}
}

func TestRecalculate(t *testing.T) {
	order := Order{
		Items: []OrderLineItem{
			{InventoryID: "a", Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
			{InventoryID: "b", Quantity: 1, UnitPrice: decimal.NewFromInt(250)},
		},
	}
	order.Recalculate()

	if !order.TotalAmount.Equal(decimal.NewFromInt(450)) {
		t.Errorf("expected total 450, got %s", order.TotalAmount)
	}
	if order.TotalQuantity != 3 {
		t.Errorf("expected quantity 3, got %d", order.TotalQuantity)
	}
	if order.ItemsNumber != 2 {
		t.Errorf("expected 2 line items, got %d", order.ItemsNumber)
	}

	order.Items = order.Items[:1]
	order.Recalculate()
	if !order.TotalAmount.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected total 200 after removal, got %s", order.TotalAmount)
	}
}

func TestStatusProgression(t *testing.T) {
	cases := map[string]string{
		string(OrderStatusPending):   "Status: Pending",
		string(OrderStatusConfirmed): "Status: Pending → Confirmed",
		string(OrderStatusCompleted): "Status: Pending → Confirmed → Completed",
	}
	for status, want := range cases {
		if got := StatusProgression(OrderStatus(status), nil); got != want {
			t.Errorf("StatusProgression(%s) = %q, want %q", status, got, want)
		}
	}

	got := StatusProgression(OrderStatusCancelled, []string{"Out of Stock", "Quality Issues"})
	want := "Status: Cancelled (Out of Stock, Quality Issues)"
	if got != want {
		t.Errorf("cancelled progression = %q, want %q", got, want)
	}

	if got := StatusProgression(OrderStatusCancelled, nil); got != "Status: Cancelled" {
		t.Errorf("cancelled without reasons = %q", got)
	}
}

func TestNormalizeCancellationReasons(t *testing.T) {
	got := NormalizeCancellationReasons([]string{" Price Mismatch ", "", "   ", "custom reason"})
	if len(got) != 2 || got[0] != "Price Mismatch" || got[1] != "custom reason" {
		t.Errorf("unexpected normalized reasons: %v", got)
	}

	if got := NormalizeCancellationReasons([]string{"", "  "}); got != nil {
		t.Errorf("expected nil for all-blank reasons, got %v", got)
	}
}
