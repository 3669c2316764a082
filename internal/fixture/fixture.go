// Package fixture supplies the static seed collections that stand in for
// the inbound data feed. A real deployment would replace this with a
// network fetch.
package fixture

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/remanmarket/erp-core/internal/core/domain"
)

func ts(value string) time.Time {
	t, _ := time.Parse(time.RFC3339, value)
	return t
}

// Items returns the seed inventory records.
func Items() []domain.InventoryItem {
	return []domain.InventoryItem{
		{
			ID:          "inv-1",
			Name:        "6.7L Diesel Engine Assembly",
			Type:        "Engine",
			Make:        "Cummins",
			Family:      "Powertrain",
			Possibility: "Remanufacture",
			Status:      domain.ItemStatusListed,
			EstPrice:    decimal.NewFromInt(150000),
			Location:    "Yard A",
			Source:      "Trade-in",
			Photos: []domain.InventoryPhoto{
				{ID: "photo-1", InventoryID: "inv-1", FilePath: "/photos/inv-1-front.jpg", FileName: "inv-1-front.jpg", IsPrimary: true},
			},
			CreatedAt: ts("2024-03-01T08:00:00Z"),
			UpdatedAt: ts("2024-03-01T08:00:00Z"),
		},
		{
			ID:          "inv-2",
			Name:        "Allison 3000 Transmission",
			Type:        "Transmission",
			Make:        "Allison",
			Family:      "Powertrain",
			Possibility: "Resale",
			Status:      domain.ItemStatusOrdered,
			EstPrice:    decimal.NewFromInt(35000),
			Location:    "Yard A",
			Source:      "Auction",
			CreatedAt:   ts("2024-03-02T09:30:00Z"),
			UpdatedAt:   ts("2024-03-12T10:00:00Z"),
		},
		{
			ID:          "inv-3",
			Name:        "Hydraulic Pump Unit",
			Type:        "Hydraulics",
			Family:      "Attachments",
			Possibility: "Remanufacture",
			Status:      domain.ItemStatusAvailable,
			EstPrice:    decimal.NewFromInt(12500),
			Location:    "Warehouse B",
			Source:      "Trade-in",
			CreatedAt:   ts("2024-03-05T11:15:00Z"),
			UpdatedAt:   ts("2024-03-05T11:15:00Z"),
		},
		{
			ID:          "inv-4",
			Name:        "Final Drive, Left",
			Type:        "Drivetrain",
			Make:        "Komatsu",
			Family:      "Undercarriage",
			Subcategory: "Final Drives",
			Possibility: "Resale",
			Status:      domain.ItemStatusAvailable,
			EstPrice:    decimal.NewFromInt(28000),
			Location:    "Warehouse B",
			Source:      "Fleet retirement",
			CreatedAt:   ts("2024-03-07T14:45:00Z"),
			UpdatedAt:   ts("2024-03-07T14:45:00Z"),
		},
		{
			ID:          "inv-5",
			Name:        "Turbocharger Core",
			Type:        "Engine",
			Family:      "Powertrain",
			Subcategory: "Turbochargers",
			Possibility: "Parts",
			Status:      domain.ItemStatusSold,
			EstPrice:    decimal.NewFromInt(4200),
			Location:    "Yard A",
			Source:      "Auction",
			CreatedAt:   ts("2024-02-20T10:00:00Z"),
			UpdatedAt:   ts("2024-03-08T16:20:00Z"),
		},
		{
			ID:          "inv-6",
			Name:        "Operator Cab, Damaged Glass",
			Type:        "Body",
			Family:      "Cab & Controls",
			Possibility: "Parts",
			Status:      domain.ItemStatusDeleted,
			EstPrice:    decimal.NewFromInt(6000),
			Location:    "Yard C",
			Source:      "Trade-in",
			Comment:     "Glass broken on arrival",
			CreatedAt:   ts("2024-02-10T09:00:00Z"),
			UpdatedAt:   ts("2024-02-28T13:00:00Z"),
		},
	}
}

// Orders returns the seed order records. Aggregates are rederived from
// the line items so the seed can never violate the totals invariant.
func Orders() []domain.Order {
	orders := []domain.Order{
		{
			ID:          "order-1",
			OrderNumber: "ORD-00001",
			Status:      domain.OrderStatusPending,
			Items: []domain.OrderLineItem{
				{ID: "line-1", InventoryID: "inv-1", Name: "6.7L Diesel Engine Assembly", Quantity: 1, UnitPrice: decimal.NewFromInt(150000)},
			},
			OrderingStaff:   domain.Staff{Name: "Demo User", Email: "demo@example.com"},
			DeliveryName:    "Demo Recipient",
			DeliveryAddress: "123 Demo Street",
			CreatedAt:       ts("2024-03-15T09:00:00Z"),
			UpdatedAt:       ts("2024-03-15T09:00:00Z"),
		},
		{
			ID:          "order-2",
			OrderNumber: "ORD-00002",
			Status:      domain.OrderStatusConfirmed,
			Items: []domain.OrderLineItem{
				{ID: "line-2", InventoryID: "inv-2", Name: "Allison 3000 Transmission", Quantity: 1, UnitPrice: decimal.NewFromInt(35000)},
			},
			OrderingStaff:   domain.Staff{Name: "Demo User", Email: "demo@example.com"},
			DeliveryName:    "Demo Recipient",
			DeliveryAddress: "123 Demo Street",
			CreatedAt:       ts("2024-03-10T14:00:00Z"),
			UpdatedAt:       ts("2024-03-12T10:00:00Z"),
		},
	}
	for i := range orders {
		orders[i].Recalculate()
	}
	return orders
}

// Notifications returns the seed notification entries, newest first.
func Notifications() []domain.Notification {
	return []domain.Notification{
		{
			ID:        "notif-1",
			Type:      domain.NotificationOrderConfirmed,
			Title:     "Order Confirmed",
			Content:   "Vendor has confirmed order ORD-00002",
			OrderID:   "order-2",
			CreatedAt: ts("2024-03-12T10:00:00Z"),
		},
		{
			ID:        "notif-2",
			Type:      domain.NotificationOrderUpdated,
			Title:     "Order Status Updated",
			Content:   "Order ORD-00001 is awaiting confirmation",
			OrderID:   "order-1",
			CreatedAt: ts("2024-03-15T09:00:00Z"),
		},
	}
}
