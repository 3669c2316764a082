package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/remanmarket/erp-core/internal/core/domain"
)

// MemoryInventory is the canonical in-memory inventory backend. Records
// are owned by the adapter; reads hand out copies only.
type MemoryInventory struct {
	mu    sync.RWMutex
	items map[string]domain.InventoryItem
}

func NewMemoryInventory() *MemoryInventory {
	return &MemoryInventory{items: make(map[string]domain.InventoryItem)}
}

func (m *MemoryInventory) GetItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := item
	cp.Photos = append([]domain.InventoryPhoto(nil), item.Photos...)
	return &cp, nil
}

func (m *MemoryInventory) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]domain.InventoryItem, 0, len(m.items))
	for _, item := range m.items {
		item.Photos = append([]domain.InventoryPhoto(nil), item.Photos...)
		items = append(items, item)
	}
	sortItemsNewestFirst(items)
	return items, nil
}

func (m *MemoryInventory) SaveItem(ctx context.Context, item domain.InventoryItem) error {
	if item.ID == "" {
		return fmt.Errorf("save item: empty id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	item.Photos = append([]domain.InventoryPhoto(nil), item.Photos...)
	m.items[item.ID] = item
	return nil
}

func (m *MemoryInventory) UpdateStatusBatch(ctx context.Context, ids []string, status domain.ItemStatus, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range ids {
		if _, ok := m.items[id]; !ok {
			return fmt.Errorf("update status batch: item %s not found", id)
		}
	}
	for _, id := range ids {
		item := m.items[id]
		item.Status = status
		item.UpdatedAt = updatedAt
		m.items[id] = item
	}
	return nil
}

func sortItemsNewestFirst(items []domain.InventoryItem) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
}

// MemoryOrders is the canonical in-memory order backend.
type MemoryOrders struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func NewMemoryOrders() *MemoryOrders {
	return &MemoryOrders{orders: make(map[string]domain.Order)}
}

func (m *MemoryOrders) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	order, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	cp := copyOrder(order)
	return &cp, nil
}

func (m *MemoryOrders) ListOrders(ctx context.Context) ([]domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	orders := make([]domain.Order, 0, len(m.orders))
	for _, order := range m.orders {
		orders = append(orders, copyOrder(order))
	}
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID > orders[j].ID
	})
	return orders, nil
}

func (m *MemoryOrders) SaveOrder(ctx context.Context, order domain.Order) error {
	if order.ID == "" {
		return fmt.Errorf("save order: empty id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = copyOrder(order)
	return nil
}

func (m *MemoryOrders) DeleteAllOrders(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = make(map[string]domain.Order)
	return nil
}

func copyOrder(o domain.Order) domain.Order {
	o.Items = append([]domain.OrderLineItem(nil), o.Items...)
	o.CancellationReasons = append([]string(nil), o.CancellationReasons...)
	return o
}

// MemoryPreferences keeps preference flags in process memory, for runs
// without a Redis backend.
type MemoryPreferences struct {
	mu    sync.RWMutex
	flags map[string]bool
}

func NewMemoryPreferences() *MemoryPreferences {
	return &MemoryPreferences{flags: make(map[string]bool)}
}

func (m *MemoryPreferences) SetFlag(ctx context.Context, key string, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[key] = value
	return nil
}

func (m *MemoryPreferences) GetFlag(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.flags[key], nil
}
