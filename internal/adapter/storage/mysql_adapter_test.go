package storage

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"

	"github.com/remanmarket/erp-core/internal/core/domain"
)

func getMySQLAdapter(t *testing.T) (*MySQLAdapter, *sql.DB) {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/erpcore?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	adapter := NewMySQLAdapter(db)
	if err := adapter.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return adapter, db
}

func TestMySQLSaveItem_RoundTrip(t *testing.T) {
	adapter, db := getMySQLAdapter(t)
	defer db.Close()

	ctx := context.Background()
	id := "test-item-" + time.Now().Format("20060102150405")
	defer db.ExecContext(ctx, `DELETE FROM inventory WHERE id = ?`, id)

	item := domain.InventoryItem{
		ID:       id,
		Name:     "Engine Block",
		Type:     "Engine",
		Location: "Warehouse A",
		Source:   "Auction",
		Status:   domain.ItemStatusAvailable,
		EstPrice: decimal.RequireFromString("150000.50"),
		Photos: []domain.InventoryPhoto{
			{ID: "p-1", InventoryID: id, FilePath: "/photos/engine.jpg", FileName: "engine.jpg", IsPrimary: true},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}

	if err := adapter.SaveItem(ctx, item); err != nil {
		t.Fatalf("SaveItem failed: %v", err)
	}

	got, err := adapter.GetItem(ctx, id)
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected item, got nil")
	}
	if got.Name != "Engine Block" || got.Status != domain.ItemStatusAvailable {
		t.Errorf("unexpected item: %+v", got)
	}
	if !got.EstPrice.Equal(item.EstPrice) {
		t.Errorf("expected price %s, got %s", item.EstPrice, got.EstPrice)
	}
	if len(got.Photos) != 1 || got.Photos[0].FileName != "engine.jpg" {
		t.Errorf("photos not round-tripped: %+v", got.Photos)
	}

	// Upsert replaces fields.
	item.Status = domain.ItemStatusListed
	if err := adapter.SaveItem(ctx, item); err != nil {
		t.Fatalf("SaveItem upsert failed: %v", err)
	}
	got, _ = adapter.GetItem(ctx, id)
	if got.Status != domain.ItemStatusListed {
		t.Errorf("expected listed after upsert, got %s", got.Status)
	}
}

func TestMySQLGetItem_NotFound(t *testing.T) {
	adapter, db := getMySQLAdapter(t)
	defer db.Close()

	got, err := adapter.GetItem(context.Background(), "nonexistent-item")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Error("expected nil for nonexistent item")
	}
}

func TestMySQLUpdateStatusBatch_RollsBackOnMissing(t *testing.T) {
	adapter, db := getMySQLAdapter(t)
	defer db.Close()

	ctx := context.Background()
	id := "test-batch-" + time.Now().Format("20060102150405")
	defer db.ExecContext(ctx, `DELETE FROM inventory WHERE id = ?`, id)

	item := domain.InventoryItem{
		ID:        id,
		Name:      "Hydraulic Pump",
		Status:    domain.ItemStatusAvailable,
		EstPrice:  decimal.NewFromInt(12500),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := adapter.SaveItem(ctx, item); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	err := adapter.UpdateStatusBatch(ctx, []string{id, "missing-id"}, domain.ItemStatusListed, time.Now())
	if err == nil {
		t.Fatal("expected error for missing id")
	}

	got, _ := adapter.GetItem(ctx, id)
	if got.Status != domain.ItemStatusAvailable {
		t.Errorf("batch must roll back, item is %s", got.Status)
	}

	if err := adapter.UpdateStatusBatch(ctx, []string{id}, domain.ItemStatusListed, time.Now()); err != nil {
		t.Fatalf("UpdateStatusBatch failed: %v", err)
	}
	got, _ = adapter.GetItem(ctx, id)
	if got.Status != domain.ItemStatusListed {
		t.Errorf("expected listed, got %s", got.Status)
	}
}

func TestMySQLSaveOrder_ReplacesLineItems(t *testing.T) {
	adapter, db := getMySQLAdapter(t)
	defer db.Close()

	ctx := context.Background()
	id := "test-order-" + time.Now().Format("20060102150405")
	defer func() {
		db.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = ?`, id)
		db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	}()

	order := domain.Order{
		ID:          id,
		OrderNumber: "ORD-TEST-1",
		Status:      domain.OrderStatusPending,
		Items: []domain.OrderLineItem{
			{ID: id + "-l1", InventoryID: "inv-1", Name: "Engine", Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
			{ID: id + "-l2", InventoryID: "inv-2", Name: "Pump", Quantity: 1, UnitPrice: decimal.NewFromInt(250)},
		},
		OrderingStaff: domain.Staff{Name: "Demo User", Email: "demo@example.com"},
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	order.Recalculate()

	if err := adapter.SaveOrder(ctx, order); err != nil {
		t.Fatalf("SaveOrder failed: %v", err)
	}

	got, err := adapter.GetOrder(ctx, id)
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected order, got nil")
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(got.Items))
	}
	if !got.TotalAmount.Equal(decimal.NewFromInt(350)) {
		t.Errorf("expected total 350, got %s", got.TotalAmount)
	}

	// Saving again with one line must replace, not append.
	order.Items = order.Items[:1]
	order.Recalculate()
	if err := adapter.SaveOrder(ctx, order); err != nil {
		t.Fatalf("SaveOrder replace failed: %v", err)
	}
	got, _ = adapter.GetOrder(ctx, id)
	if len(got.Items) != 1 {
		t.Errorf("expected 1 line item after replace, got %d", len(got.Items))
	}
}

func TestMySQLSaveOrder_CancellationReasons(t *testing.T) {
	adapter, db := getMySQLAdapter(t)
	defer db.Close()

	ctx := context.Background()
	id := "test-cancel-" + time.Now().Format("20060102150405")
	defer func() {
		db.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = ?`, id)
		db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	}()

	order := domain.Order{
		ID:                  id,
		OrderNumber:         "ORD-TEST-2",
		Status:              domain.OrderStatusCancelled,
		CancellationReasons: []string{"Out of Stock", "supplier closed"},
		CreatedAt:           time.Now(),
		UpdatedAt:           time.Now(),
	}

	if err := adapter.SaveOrder(ctx, order); err != nil {
		t.Fatalf("SaveOrder failed: %v", err)
	}

	got, err := adapter.GetOrder(ctx, id)
	if err != nil {
		t.Fatalf("GetOrder failed: %v", err)
	}
	if len(got.CancellationReasons) != 2 || got.CancellationReasons[0] != "Out of Stock" {
		t.Errorf("reasons not round-tripped: %v", got.CancellationReasons)
	}
}
