package checkout

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/posworks/counterpoint/internal/pos"
	"github.com/posworks/counterpoint/internal/store"
)

// Line is one purchasable entry of a corrected cart. Quantity is the
// amount that will actually be sold; Requested preserves what the cart
// asked for, so a clamp is visible as Quantity < Requested.
type Line struct {
	UPC       string
	Quantity  int
	Requested int
	Price     decimal.Decimal
	Category  pos.Category
}

// Clamped reports whether the line was reduced during reconciliation.
func (l Line) Clamped() bool {
	return l.Quantity < l.Requested
}

// DroppedLine is a cart entry removed during reconciliation because the
// item is unknown at this location or has nothing left to sell.
type DroppedLine struct {
	UPC       string
	Requested int
}

// CorrectedCart is the output of reconciliation: the sellable lines in
// deterministic (UPC) order plus the entries that were dropped. It is a
// snapshot; the session cart it was derived from is never modified.
type CorrectedCart struct {
	StoreID string
	Lines   []Line
	Dropped []DroppedLine
}

// Empty reports whether nothing survived reconciliation.
func (c *CorrectedCart) Empty() bool {
	return len(c.Lines) == 0
}

// Reconciler clamps cart quantities against a location's live inventory.
type Reconciler struct {
	store   *store.Store
	storeID string
}

// NewReconciler creates a reconciler bound to one store location.
func NewReconciler(s *store.Store, storeID string) *Reconciler {
	return &Reconciler{store: s, storeID: storeID}
}

// Reconcile builds a corrected cart from a session cart.
//
// Per entry: a missing inventory record or an available quantity at or
// below zero drops the entry; otherwise the sold quantity is
// min(requested, available). A failed lookup degrades only its own entry.
// Inventory is read, never written.
func (r *Reconciler) Reconcile(ctx context.Context, cart *pos.Cart) *CorrectedCart {
	cc := &CorrectedCart{StoreID: r.storeID}

	upcs := make([]string, 0, cart.Len())
	for upc := range cart.Lines() {
		upcs = append(upcs, upc)
	}
	sort.Strings(upcs)

	for _, upc := range upcs {
		requested := cart.Quantity(upc)

		rec, err := r.store.GetInventory(ctx, upc, r.storeID)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				slog.Warn("inventory lookup failed, dropping cart entry",
					"error", err,
					"upc", upc,
					"store_id", r.storeID,
				)
			}
			cc.Dropped = append(cc.Dropped, DroppedLine{UPC: upc, Requested: requested})
			continue
		}
		if rec.Quantity <= 0 {
			cc.Dropped = append(cc.Dropped, DroppedLine{UPC: upc, Requested: requested})
			continue
		}

		cc.Lines = append(cc.Lines, Line{
			UPC:       upc,
			Quantity:  min(requested, rec.Quantity),
			Requested: requested,
			Price:     rec.Price,
			Category:  rec.Category,
		})
	}

	return cc
}
