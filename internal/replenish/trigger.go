package replenish

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/posworks/counterpoint/internal/pos"
	"github.com/posworks/counterpoint/internal/store"
)

// DefaultReorderQuantity is the quantity requested by auto-generated
// reorder requests when no policy override is configured.
const DefaultReorderQuantity = 100

// Trigger is the replenishment rule evaluated after every successful
// inventory mutation. When a post-update quantity is at or below zero it
// inserts exactly one open reorder request for that (store, item): no
// shipment date, no vendor, and the configured reorder quantity.
//
// The reorder quantity is a fixed, configurable policy rather than a
// demand-derived one; vendor resolution is a separate assignment step.
type Trigger struct {
	store      *store.Store
	ids        pos.IDGenerator
	clock      pos.Clock
	reorderQty int
}

// TriggerOption configures a Trigger.
type TriggerOption func(*Trigger)

// WithReorderQuantity overrides the quantity placed on auto-generated
// reorder requests. Use a small value in tests to keep fixtures readable.
func WithReorderQuantity(n int) TriggerOption {
	return func(t *Trigger) {
		t.reorderQty = n
	}
}

// NewTrigger creates a replenishment trigger bound to a store handle.
func NewTrigger(s *store.Store, ids pos.IDGenerator, clock pos.Clock, opts ...TriggerOption) *Trigger {
	t := &Trigger{
		store:      s,
		ids:        ids,
		clock:      clock,
		reorderQty: DefaultReorderQuantity,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ReorderQuantity returns the configured reorder quantity.
func (t *Trigger) ReorderQuantity() int {
	return t.reorderQty
}

// Fire evaluates the rule for one inventory change. Quantities above zero
// are a no-op. Returns an error only if the reorder insert itself fails;
// callers decide whether that is fatal (it never is on the commit paths -
// see Apply).
func (t *Trigger) Fire(ctx context.Context, change pos.InventoryChange) error {
	if change.NewQuantity > 0 {
		return nil
	}

	req := pos.ReorderRequest{
		ID:        t.ids.NewID(),
		StoreID:   change.StoreID,
		UPC:       change.UPC,
		Quantity:  t.reorderQty,
		CreatedAt: t.clock.Now(),
	}

	if err := t.store.InsertReorderRequest(ctx, req); err != nil {
		return fmt.Errorf("replenishment trigger for (%s, %s): %w", change.UPC, change.StoreID, err)
	}

	slog.Info("reorder request opened",
		"request_id", req.ID,
		"store_id", req.StoreID,
		"upc", req.UPC,
		"quantity", req.Quantity,
		"post_quantity", change.NewQuantity,
	)

	return nil
}

// Apply fires the rule for each change of a committed unit of work.
// Failures are logged and skipped: the inventory mutation has already
// committed, so a failed enqueue must never surface as a commit failure.
func (t *Trigger) Apply(ctx context.Context, changes []pos.InventoryChange) {
	for _, change := range changes {
		if err := t.Fire(ctx, change); err != nil {
			slog.Error("replenishment trigger failed",
				"error", err,
				"upc", change.UPC,
				"store_id", change.StoreID,
				"post_quantity", change.NewQuantity,
			)
		}
	}
}
