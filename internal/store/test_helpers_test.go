package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/posworks/counterpoint/internal/pos"
)

// createTestStore creates a new temp-file store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seedReference inserts the baseline reference rows most tests need:
// store "store-1", customer "cust-1", vendor "vend-1", and the given items.
func seedReference(t *testing.T, s *Store, upcs ...string) {
	t.Helper()
	ctx := context.Background()

	if err := s.UpsertStore(ctx, "store-1", "Main Street", "Rochester"); err != nil {
		t.Fatalf("UpsertStore() failed: %v", err)
	}
	if err := s.UpsertCustomer(ctx, "cust-1", "Ada", "Byron", "555-0100"); err != nil {
		t.Fatalf("UpsertCustomer() failed: %v", err)
	}
	if err := s.UpsertVendor(ctx, "vend-1", "Acme Wholesale"); err != nil {
		t.Fatalf("UpsertVendor() failed: %v", err)
	}
	for _, upc := range upcs {
		if err := s.UpsertItem(ctx, upc, "Item "+upc, pos.CategoryItem); err != nil {
			t.Fatalf("UpsertItem(%s) failed: %v", upc, err)
		}
	}
}

// seedInventory inserts an inventory record for store-1.
func seedInventory(t *testing.T, s *Store, upc string, qty int, price string) {
	t.Helper()
	p, err := decimal.NewFromString(price)
	if err != nil {
		t.Fatalf("bad price %q: %v", price, err)
	}
	rec := pos.InventoryRecord{UPC: upc, StoreID: "store-1", Quantity: qty, Price: p}
	if err := s.UpsertInventory(context.Background(), rec); err != nil {
		t.Fatalf("UpsertInventory(%s) failed: %v", upc, err)
	}
}

// testRequest builds a reorder request for store-1 with sensible defaults.
func testRequest(id, upc string, qty int) pos.ReorderRequest {
	return pos.ReorderRequest{
		ID:        id,
		StoreID:   "store-1",
		UPC:       upc,
		Quantity:  qty,
		CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
