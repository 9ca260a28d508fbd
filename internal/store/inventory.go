package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/posworks/counterpoint/internal/pos"
)

// GetInventory returns the inventory record for (upc, storeID) joined with
// the item's category. Returns ErrNotFound if no record exists.
//
// This is the read reconciliation is built on; it never locks the row, so
// the returned quantity may be stale by the time a checkout commits.
func (s *Store) GetInventory(ctx context.Context, upc, storeID string) (pos.InventoryRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT inv.upc, inv.store_id, inv.quantity, inv.price, it.category
		FROM inventory inv
		JOIN items it ON it.upc = inv.upc
		WHERE inv.upc = ? AND inv.store_id = ?
	`, upc, storeID)

	var rec pos.InventoryRecord
	var priceStr, catStr string
	err := row.Scan(&rec.UPC, &rec.StoreID, &rec.Quantity, &priceStr, &catStr)
	if errors.Is(err, sql.ErrNoRows) {
		return pos.InventoryRecord{}, ErrNotFound
	}
	if err != nil {
		return pos.InventoryRecord{}, fmt.Errorf("get inventory (%s, %s): %w", upc, storeID, err)
	}

	if rec.Price, err = parsePrice(priceStr); err != nil {
		return pos.InventoryRecord{}, fmt.Errorf("get inventory (%s, %s): %w", upc, storeID, err)
	}
	if rec.Category, err = pos.ParseCategory(catStr); err != nil {
		return pos.InventoryRecord{}, fmt.Errorf("get inventory (%s, %s): %w", upc, storeID, err)
	}

	return rec, nil
}

// UpsertInventory creates or replaces the inventory record for (upc,
// storeID). Used by seeding; the checkout and restock paths only ever
// adjust existing records.
func (s *Store) UpsertInventory(ctx context.Context, rec pos.InventoryRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO inventory (upc, store_id, quantity, price)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(upc, store_id) DO UPDATE SET quantity = excluded.quantity, price = excluded.price
	`, rec.UPC, rec.StoreID, rec.Quantity, rec.Price.String())
	if err != nil {
		return fmt.Errorf("upsert inventory (%s, %s): %w", rec.UPC, rec.StoreID, err)
	}
	return nil
}

// AdjustInventory applies a signed quantity delta to the record for (upc,
// storeID) in its own transaction and returns the pre/post quantities.
// Returns ErrNotFound if the record does not exist.
//
// There is no floor at zero: decrements may drive the quantity negative.
// Callers are expected to hand the returned change to the replenishment
// trigger after their surrounding work commits.
func (s *Store) AdjustInventory(ctx context.Context, upc, storeID string, delta int) (pos.InventoryChange, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return pos.InventoryChange{}, fmt.Errorf("adjust inventory: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	change, err := adjustInventoryTx(ctx, tx, upc, storeID, delta)
	if err != nil {
		return pos.InventoryChange{}, err
	}

	if err := tx.Commit(); err != nil {
		return pos.InventoryChange{}, fmt.Errorf("adjust inventory: commit: %w", err)
	}

	return change, nil
}

// adjustInventoryTx is the shared read-modify-write used by
// AdjustInventory, CommitCheckout, and FulfillRequest inside their
// transactions.
func adjustInventoryTx(ctx context.Context, tx *sql.Tx, upc, storeID string, delta int) (pos.InventoryChange, error) {
	var old int
	err := tx.QueryRowContext(ctx, `
		SELECT quantity FROM inventory WHERE upc = ? AND store_id = ?
	`, upc, storeID).Scan(&old)
	if errors.Is(err, sql.ErrNoRows) {
		return pos.InventoryChange{}, fmt.Errorf("adjust inventory (%s, %s): %w", upc, storeID, ErrNotFound)
	}
	if err != nil {
		return pos.InventoryChange{}, fmt.Errorf("adjust inventory (%s, %s): read: %w", upc, storeID, err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE inventory SET quantity = quantity + ? WHERE upc = ? AND store_id = ?
	`, delta, upc, storeID)
	if err != nil {
		return pos.InventoryChange{}, fmt.Errorf("adjust inventory (%s, %s): update: %w", upc, storeID, err)
	}

	return pos.InventoryChange{
		UPC:         upc,
		StoreID:     storeID,
		OldQuantity: old,
		NewQuantity: old + delta,
	}, nil
}
