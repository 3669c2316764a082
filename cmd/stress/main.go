// Checkout stress driver: hammers the in-memory stores with concurrent
// carts and verifies the order aggregates afterwards.
package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/remanmarket/erp-core/internal/adapter/storage"
	"github.com/remanmarket/erp-core/internal/core/domain"
	"github.com/remanmarket/erp-core/internal/core/service"
	"github.com/remanmarket/erp-core/internal/fixture"
)

const totalCheckouts = 200

func main() {
	ctx := context.Background()

	inventoryRepo := storage.NewMemoryInventory()
	for _, item := range fixture.Items() {
		if err := inventoryRepo.SaveItem(ctx, item); err != nil {
			log.Fatalf("seed inventory: %v", err)
		}
	}

	notifications := service.NewNotificationLog()
	inventory := service.NewInventoryService(inventoryRepo, notifications)
	orders := service.NewOrderService(storage.NewMemoryOrders(), notifications, nil)

	var successCount atomic.Int32
	var failCount atomic.Int32
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalCheckouts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			cart := service.NewCart(inventory)
			if err := cart.Add(ctx, domain.CartLine{
				InventoryID: "inv-3",
				Name:        "Hydraulic Pump Unit",
				Price:       decimal.NewFromInt(12500),
			}); err != nil {
				failCount.Add(1)
				return
			}
			if err := cart.Add(ctx, domain.CartLine{
				InventoryID: "inv-4",
				Name:        "Final Drive, Left",
				Price:       decimal.NewFromInt(28000),
			}); err != nil {
				failCount.Add(1)
				return
			}

			staff := domain.Staff{Name: fmt.Sprintf("agent-%d", n), Email: fmt.Sprintf("agent-%d@example.com", n)}
			if _, err := orders.Checkout(ctx, cart, staff); err != nil {
				failCount.Add(1)
				return
			}
			successCount.Add(1)
		}(i)
	}

	wg.Wait()
	elapsed := time.Since(start)

	placed, err := orders.List(ctx)
	if err != nil {
		log.Fatalf("list orders: %v", err)
	}

	expectedTotal := decimal.NewFromInt(40500)
	badAggregates := 0
	for _, o := range placed {
		if !o.TotalAmount.Equal(expectedTotal) || o.TotalQuantity != 2 || o.ItemsNumber != 2 {
			badAggregates++
		}
	}

	fmt.Printf("checkouts: %d success, %d failed in %s\n", successCount.Load(), failCount.Load(), elapsed)
	fmt.Printf("orders stored: %d, aggregate mismatches: %d\n", len(placed), badAggregates)
	fmt.Printf("notifications emitted: %d (unread %d)\n", len(notifications.MostRecent(totalCheckouts*2)), notifications.UnreadCount())

	if int(successCount.Load()) != len(placed) || badAggregates != 0 {
		log.Fatal("verification failed")
	}
	fmt.Println("verification passed")
}
