package checkout

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/posworks/counterpoint/internal/pos"
	"github.com/posworks/counterpoint/internal/replenish"
	"github.com/posworks/counterpoint/internal/store"
	"github.com/posworks/counterpoint/internal/testutil"
)

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
	require.NoError(t, s.UpsertCustomer(ctx, "cust-1", "Ada", "Byron", "555-0100"))

	return s
}

func seedInventory(t *testing.T, s *store.Store, upc string, qty int, price string) {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, s.UpsertItem(ctx, upc, "Item "+upc, pos.CategoryItem))
	require.NoError(t, s.UpsertInventory(ctx, pos.InventoryRecord{
		UPC:      upc,
		StoreID:  "store-1",
		Quantity: qty,
		Price:    decimal.RequireFromString(price),
		Category: pos.CategoryItem,
	}))
}

func newTestManager(s *store.Store, ids ...string) *Manager {
	clock := testutil.NewFixedClock(testDay)
	gen := testutil.NewSequenceIDs(ids...)
	trigger := replenish.NewTrigger(s, gen, clock, replenish.WithReorderQuantity(25))
	return NewManager(s, gen, clock, trigger)
}
