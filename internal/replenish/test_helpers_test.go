package replenish

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/posworks/counterpoint/internal/pos"
	"github.com/posworks/counterpoint/internal/store"
)

// testDay is the frozen "now" for replenishment tests. Mid-morning UTC so
// same-day shipment dates at midnight still count as arrived.
var testDay = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	ctx := context.Background()
	require.NoError(t, s.UpsertStore(ctx, "store-1", "Counterpoint Downtown", "Athens"))
	require.NoError(t, s.UpsertVendor(ctx, "vend-1", "Acme Wholesale"))
	require.NoError(t, s.UpsertVendor(ctx, "vend-2", "Globex Supply"))

	return s
}

func seedInventory(t *testing.T, s *store.Store, upc string, qty int) {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, s.UpsertItem(ctx, upc, "Item "+upc, pos.CategoryItem))
	require.NoError(t, s.UpsertInventory(ctx, pos.InventoryRecord{
		UPC:      upc,
		StoreID:  "store-1",
		Quantity: qty,
		Price:    decimal.RequireFromString("2.50"),
		Category: pos.CategoryItem,
	}))
}

// seedRequest inserts a reorder request directly, bypassing the trigger.
// A nil shipDate leaves the request open.
func seedRequest(t *testing.T, s *store.Store, id, upc, vendorID string, qty int, shipDate *time.Time) {
	t.Helper()

	require.NoError(t, s.InsertReorderRequest(context.Background(), pos.ReorderRequest{
		ID:           id,
		ShipmentDate: shipDate,
		StoreID:      "store-1",
		VendorID:     vendorID,
		UPC:          upc,
		Quantity:     qty,
		CreatedAt:    testDay,
	}))
}

func dayPtr(t time.Time) *time.Time {
	d := pos.DateOnly(t)
	return &d
}
