package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/posworks/counterpoint/internal/pos"
)

// CommitCheckout writes one checkout as a single atomic unit of work:
// the order record, one line item per entry, and one inventory decrement
// per entry. Returns the inventory changes in line order so the caller can
// evaluate the replenishment trigger on each post-commit quantity.
//
// Any failure at any step - missing inventory row, constraint violation,
// lock timeout - rolls back the entire unit. The visible state afterwards
// is either "order + all line items + all decrements" or nothing at all.
func (s *Store) CommitCheckout(ctx context.Context, order pos.Order, lines []pos.LineItem) ([]pos.InventoryChange, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("commit checkout: no line items")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("commit checkout: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (order_id, created_at, store_id, customer_id)
		VALUES (?, ?, ?, ?)
	`, order.ID, formatTimestamp(order.CreatedAt), order.StoreID, order.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("commit checkout: insert order %s: %w", order.ID, err)
	}

	changes := make([]pos.InventoryChange, 0, len(lines))
	for _, line := range lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO line_items (order_id, upc, quantity)
			VALUES (?, ?, ?)
		`, order.ID, line.UPC, line.Quantity)
		if err != nil {
			return nil, fmt.Errorf("commit checkout: insert line item %s: %w", line.UPC, err)
		}

		change, err := adjustInventoryTx(ctx, tx, line.UPC, order.StoreID, -line.Quantity)
		if err != nil {
			return nil, fmt.Errorf("commit checkout: %w", err)
		}
		changes = append(changes, change)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit checkout: commit: %w", err)
	}

	return changes, nil
}

// GetOrder retrieves an order by ID. Returns ErrNotFound if absent.
func (s *Store) GetOrder(ctx context.Context, orderID string) (pos.Order, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT order_id, created_at, store_id, customer_id
		FROM orders
		WHERE order_id = ?
	`, orderID)

	var o pos.Order
	var createdAt string
	err := row.Scan(&o.ID, &createdAt, &o.StoreID, &o.CustomerID)
	if errors.Is(err, sql.ErrNoRows) {
		return pos.Order{}, ErrNotFound
	}
	if err != nil {
		return pos.Order{}, fmt.Errorf("get order %s: %w", orderID, err)
	}

	if o.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return pos.Order{}, fmt.Errorf("get order %s: %w", orderID, err)
	}

	return o, nil
}

// ListLineItems returns the line items of an order in UPC order.
// Returns an empty slice (not nil) when the order has no line items.
func (s *Store) ListLineItems(ctx context.Context, orderID string) ([]pos.LineItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT order_id, upc, quantity
		FROM line_items
		WHERE order_id = ?
		ORDER BY upc ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list line items for %s: %w", orderID, err)
	}
	defer rows.Close()

	items := []pos.LineItem{}
	for rows.Next() {
		var li pos.LineItem
		if err := rows.Scan(&li.OrderID, &li.UPC, &li.Quantity); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		items = append(items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate line items: %w", err)
	}

	return items, nil
}
