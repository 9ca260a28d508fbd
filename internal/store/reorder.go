package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/posworks/counterpoint/internal/pos"
)

// InsertReorderRequest writes a new replenishment request. The request is
// open when ShipmentDate is nil and unassigned when VendorID is empty;
// the replenishment trigger always inserts it that way.
func (s *Store) InsertReorderRequest(ctx context.Context, req pos.ReorderRequest) error {
	var shipDate, vendor any
	if req.ShipmentDate != nil {
		shipDate = formatDay(*req.ShipmentDate)
	}
	if req.VendorID != "" {
		vendor = req.VendorID
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reorder_requests
		(request_id, shipment_date, store_id, vendor_id, upc, quantity, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, req.ID, shipDate, req.StoreID, vendor, req.UPC, req.Quantity, formatTimestamp(req.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert reorder request %s: %w", req.ID, err)
	}

	return nil
}

// ListOpenByStore returns the open (no shipment date) requests for a store,
// oldest first.
func (s *Store) ListOpenByStore(ctx context.Context, storeID string) ([]pos.ReorderRequest, error) {
	return s.listRequests(ctx, `
		SELECT request_id, shipment_date, store_id, vendor_id, upc, quantity, created_at
		FROM reorder_requests
		WHERE store_id = ? AND shipment_date IS NULL
		ORDER BY created_at ASC, request_id ASC
	`, storeID)
}

// ListOpenByVendor returns the open requests assigned to a vendor,
// oldest first. Requests with no vendor assigned are not included.
func (s *Store) ListOpenByVendor(ctx context.Context, vendorID string) ([]pos.ReorderRequest, error) {
	return s.listRequests(ctx, `
		SELECT request_id, shipment_date, store_id, vendor_id, upc, quantity, created_at
		FROM reorder_requests
		WHERE vendor_id = ? AND shipment_date IS NULL
		ORDER BY created_at ASC, request_id ASC
	`, vendorID)
}

// ListShippableByStore returns the requests for a store whose shipment
// date has been set, regardless of whether the date has arrived. The
// restock processor applies the day-granularity gate itself.
func (s *Store) ListShippableByStore(ctx context.Context, storeID string) ([]pos.ReorderRequest, error) {
	return s.listRequests(ctx, `
		SELECT request_id, shipment_date, store_id, vendor_id, upc, quantity, created_at
		FROM reorder_requests
		WHERE store_id = ? AND shipment_date IS NOT NULL
		ORDER BY shipment_date ASC, request_id ASC
	`, storeID)
}

// AssignVendor resolves the vendor of an open, unassigned request.
// Reports false when the request is missing, already closed, or already
// assigned to a vendor.
func (s *Store) AssignVendor(ctx context.Context, requestID, vendorID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE reorder_requests
		SET vendor_id = ?
		WHERE request_id = ? AND shipment_date IS NULL AND vendor_id IS NULL
	`, vendorID, requestID)
	if err != nil {
		return false, fmt.Errorf("assign vendor for request %s: %w", requestID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("assign vendor for request %s: rows affected: %w", requestID, err)
	}
	return n > 0, nil
}

// SetShipmentDate closes an open request by scheduling its delivery.
// The guard clause makes the rejection rules atomic with the write: the
// request must exist, still be open, and belong to the acting vendor.
// Reports false when any of those fail; the caller treats that as a
// per-request rejection, not a batch failure.
func (s *Store) SetShipmentDate(ctx context.Context, requestID, vendorID string, date time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE reorder_requests
		SET shipment_date = ?
		WHERE request_id = ? AND vendor_id = ? AND shipment_date IS NULL
	`, formatDay(date), requestID, vendorID)
	if err != nil {
		return false, fmt.Errorf("set shipment date for request %s: %w", requestID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set shipment date for request %s: rows affected: %w", requestID, err)
	}
	return n > 0, nil
}

// DeleteReorderRequest removes a request. Deleting an absent request is a
// no-op; the restock processor relies on that for idempotent re-runs.
func (s *Store) DeleteReorderRequest(ctx context.Context, requestID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM reorder_requests WHERE request_id = ?
	`, requestID)
	if err != nil {
		return fmt.Errorf("delete reorder request %s: %w", requestID, err)
	}
	return nil
}

// FulfillRequest applies a fulfilled shipment: adds the request's quantity
// to the matching inventory record and deletes the request, atomically.
// Returns the inventory change for trigger evaluation.
//
// If the inventory record no longer exists the transaction rolls back and
// the request is left in place; the caller skips it and continues with the
// rest of the batch.
func (s *Store) FulfillRequest(ctx context.Context, req pos.ReorderRequest) (pos.InventoryChange, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return pos.InventoryChange{}, fmt.Errorf("fulfill request %s: begin tx: %w", req.ID, err)
	}
	defer tx.Rollback() // No-op if committed

	change, err := adjustInventoryTx(ctx, tx, req.UPC, req.StoreID, req.Quantity)
	if err != nil {
		return pos.InventoryChange{}, fmt.Errorf("fulfill request %s: %w", req.ID, err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM reorder_requests WHERE request_id = ?
	`, req.ID)
	if err != nil {
		return pos.InventoryChange{}, fmt.Errorf("fulfill request %s: delete: %w", req.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return pos.InventoryChange{}, fmt.Errorf("fulfill request %s: commit: %w", req.ID, err)
	}

	return change, nil
}

// listRequests runs a reorder request query and scans the rows.
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) listRequests(ctx context.Context, query string, args ...any) ([]pos.ReorderRequest, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reorder requests: %w", err)
	}
	defer rows.Close()

	reqs := []pos.ReorderRequest{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reorder requests: %w", err)
	}

	return reqs, nil
}

func scanRequest(rows *sql.Rows) (pos.ReorderRequest, error) {
	var req pos.ReorderRequest
	var shipDate, vendor sql.NullString
	var createdAt string

	err := rows.Scan(&req.ID, &shipDate, &req.StoreID, &vendor, &req.UPC, &req.Quantity, &createdAt)
	if err != nil {
		return pos.ReorderRequest{}, fmt.Errorf("scan reorder request: %w", err)
	}

	if shipDate.Valid {
		d, err := parseDay(shipDate.String)
		if err != nil {
			return pos.ReorderRequest{}, fmt.Errorf("scan reorder request %s: %w", req.ID, err)
		}
		req.ShipmentDate = &d
	}
	if vendor.Valid {
		req.VendorID = vendor.String
	}
	if req.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return pos.ReorderRequest{}, fmt.Errorf("scan reorder request %s: %w", req.ID, err)
	}

	return req, nil
}
