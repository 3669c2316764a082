package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/remanmarket/erp-core/internal/core/domain"
)

// MySQLAdapter persists inventory and orders in MySQL behind the same
// repository ports the in-memory backend implements.
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

// EnsureSchema creates the tables when missing.
func (m *MySQLAdapter) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS inventory (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			type VARCHAR(128) NOT NULL,
			make VARCHAR(128) NOT NULL DEFAULT '',
			family VARCHAR(128) NOT NULL DEFAULT '',
			subcategory VARCHAR(128) NOT NULL DEFAULT '',
			possibility VARCHAR(128) NOT NULL DEFAULT '',
			status VARCHAR(32) NOT NULL,
			est_price DECIMAL(14,2) NOT NULL,
			location VARCHAR(255) NOT NULL DEFAULT '',
			source VARCHAR(255) NOT NULL DEFAULT '',
			seller_id VARCHAR(64) NOT NULL DEFAULT '',
			comment TEXT,
			remark TEXT,
			photos_json TEXT,
			created_at DATETIME(6) NOT NULL,
			updated_at DATETIME(6) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id VARCHAR(64) PRIMARY KEY,
			order_number VARCHAR(32) NOT NULL,
			status VARCHAR(32) NOT NULL,
			total_amount DECIMAL(14,2) NOT NULL,
			total_quantity INT NOT NULL,
			items_number INT NOT NULL,
			cancellation_reasons_json TEXT,
			staff_name VARCHAR(255) NOT NULL DEFAULT '',
			staff_email VARCHAR(255) NOT NULL DEFAULT '',
			delivery_name VARCHAR(255) NOT NULL DEFAULT '',
			delivery_address VARCHAR(255) NOT NULL DEFAULT '',
			created_at DATETIME(6) NOT NULL,
			updated_at DATETIME(6) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id VARCHAR(64) PRIMARY KEY,
			order_id VARCHAR(64) NOT NULL,
			inventory_id VARCHAR(64) NOT NULL,
			name VARCHAR(255) NOT NULL,
			quantity INT NOT NULL,
			unit_price DECIMAL(14,2) NOT NULL,
			INDEX idx_order_items_order_id (order_id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (m *MySQLAdapter) GetItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	row := m.db.QueryRowContext(ctx, `
		SELECT id, name, type, make, family, subcategory, possibility, status,
		       est_price, location, source, seller_id,
		       COALESCE(comment, ''), COALESCE(remark, ''),
		       COALESCE(photos_json, ''), created_at, updated_at
		FROM inventory WHERE id = ?`, id)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query item: %w", err)
	}
	return item, nil
}

func (m *MySQLAdapter) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, type, make, family, subcategory, possibility, status,
		       est_price, location, source, seller_id,
		       COALESCE(comment, ''), COALESCE(remark, ''),
		       COALESCE(photos_json, ''), created_at, updated_at
		FROM inventory ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	var photosJSON string
	err := row.Scan(
		&item.ID, &item.Name, &item.Type, &item.Make, &item.Family,
		&item.Subcategory, &item.Possibility, &item.Status, &item.EstPrice,
		&item.Location, &item.Source, &item.SellerID, &item.Comment,
		&item.Remark, &photosJSON, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if photosJSON != "" {
		if err := json.Unmarshal([]byte(photosJSON), &item.Photos); err != nil {
			return nil, fmt.Errorf("decode photos: %w", err)
		}
	}
	return &item, nil
}

func (m *MySQLAdapter) SaveItem(ctx context.Context, item domain.InventoryItem) error {
	var photosJSON []byte
	if len(item.Photos) > 0 {
		var err error
		photosJSON, err = json.Marshal(item.Photos)
		if err != nil {
			return fmt.Errorf("encode photos: %w", err)
		}
	}

	_, err := m.db.ExecContext(ctx, `
		INSERT INTO inventory (id, name, type, make, family, subcategory,
			possibility, status, est_price, location, source, seller_id,
			comment, remark, photos_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			name = VALUES(name), type = VALUES(type), make = VALUES(make),
			family = VALUES(family), subcategory = VALUES(subcategory),
			possibility = VALUES(possibility), status = VALUES(status),
			est_price = VALUES(est_price), location = VALUES(location),
			source = VALUES(source), seller_id = VALUES(seller_id),
			comment = VALUES(comment), remark = VALUES(remark),
			photos_json = VALUES(photos_json), updated_at = VALUES(updated_at)`,
		item.ID, item.Name, item.Type, item.Make, item.Family, item.Subcategory,
		item.Possibility, item.Status, item.EstPrice, item.Location, item.Source,
		item.SellerID, item.Comment, item.Remark, string(photosJSON),
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save item: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) UpdateStatusBatch(ctx context.Context, ids []string, status domain.ItemStatus, updatedAt time.Time) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, id := range ids {
		result, err := tx.ExecContext(ctx, `
			UPDATE inventory SET status = ?, updated_at = ? WHERE id = ?`,
			status, updatedAt, id)
		if err != nil {
			return fmt.Errorf("update item %s: %w", id, err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return fmt.Errorf("update status batch: item %s not found", id)
		}
	}

	return tx.Commit()
}

func (m *MySQLAdapter) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	row := m.db.QueryRowContext(ctx, `
		SELECT id, order_number, status, total_amount, total_quantity,
		       items_number, COALESCE(cancellation_reasons_json, ''),
		       staff_name, staff_email, delivery_name, delivery_address,
		       created_at, updated_at
		FROM orders WHERE id = ?`, id)

	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}

	items, err := m.loadLineItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (m *MySQLAdapter) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, order_number, status, total_amount, total_quantity,
		       items_number, COALESCE(cancellation_reasons_json, ''),
		       staff_name, staff_email, delivery_name, delivery_address,
		       created_at, updated_at
		FROM orders ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := m.loadLineItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var reasonsJSON string
	err := row.Scan(
		&order.ID, &order.OrderNumber, &order.Status, &order.TotalAmount,
		&order.TotalQuantity, &order.ItemsNumber, &reasonsJSON,
		&order.OrderingStaff.Name, &order.OrderingStaff.Email,
		&order.DeliveryName, &order.DeliveryAddress,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if reasonsJSON != "" {
		if err := json.Unmarshal([]byte(reasonsJSON), &order.CancellationReasons); err != nil {
			return nil, fmt.Errorf("decode cancellation reasons: %w", err)
		}
	}
	return &order, nil
}

func (m *MySQLAdapter) loadLineItems(ctx context.Context, orderID string) ([]domain.OrderLineItem, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, inventory_id, name, quantity, unit_price
		FROM order_items WHERE order_id = ? ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderLineItem
	for rows.Next() {
		var item domain.OrderLineItem
		if err := rows.Scan(&item.ID, &item.InventoryID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (m *MySQLAdapter) SaveOrder(ctx context.Context, order domain.Order) error {
	var reasonsJSON []byte
	if len(order.CancellationReasons) > 0 {
		var err error
		reasonsJSON, err = json.Marshal(order.CancellationReasons)
		if err != nil {
			return fmt.Errorf("encode cancellation reasons: %w", err)
		}
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, order_number, status, total_amount,
			total_quantity, items_number, cancellation_reasons_json,
			staff_name, staff_email, delivery_name, delivery_address,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			order_number = VALUES(order_number), status = VALUES(status),
			total_amount = VALUES(total_amount),
			total_quantity = VALUES(total_quantity),
			items_number = VALUES(items_number),
			cancellation_reasons_json = VALUES(cancellation_reasons_json),
			staff_name = VALUES(staff_name), staff_email = VALUES(staff_email),
			delivery_name = VALUES(delivery_name),
			delivery_address = VALUES(delivery_address),
			updated_at = VALUES(updated_at)`,
		order.ID, order.OrderNumber, order.Status, order.TotalAmount,
		order.TotalQuantity, order.ItemsNumber, string(reasonsJSON),
		order.OrderingStaff.Name, order.OrderingStaff.Email,
		order.DeliveryName, order.DeliveryAddress,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save order: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = ?`, order.ID); err != nil {
		return fmt.Errorf("clear order items: %w", err)
	}
	for _, item := range order.Items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, inventory_id, name, quantity, unit_price)
			VALUES (?, ?, ?, ?, ?, ?)`,
			item.ID, order.ID, item.InventoryID, item.Name, item.Quantity, item.UnitPrice)
		if err != nil {
			return fmt.Errorf("save order item: %w", err)
		}
	}

	return tx.Commit()
}

func (m *MySQLAdapter) DeleteAllOrders(ctx context.Context) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items`); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM orders`); err != nil {
		return fmt.Errorf("delete orders: %w", err)
	}
	return tx.Commit()
}
