package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/posworks/counterpoint/internal/pos"
	"github.com/posworks/counterpoint/internal/replenish"
	"github.com/posworks/counterpoint/internal/store"
)

// ErrEmptyCart reports a commit attempt with no purchasable lines.
var ErrEmptyCart = errors.New("no purchasable lines in cart")

// Manager commits corrected carts. Each commit is one storage transaction:
// the order row, its line items, and every inventory decrement land
// together or not at all. The replenishment trigger runs after the
// transaction commits, so a trigger failure can never undo a sale.
type Manager struct {
	store   *store.Store
	ids     pos.IDGenerator
	clock   pos.Clock
	trigger *replenish.Trigger
}

// NewManager creates a checkout manager.
func NewManager(s *store.Store, ids pos.IDGenerator, clock pos.Clock, trigger *replenish.Trigger) *Manager {
	return &Manager{store: s, ids: ids, clock: clock, trigger: trigger}
}

// Commit turns a corrected cart into a persisted order.
//
// An empty corrected cart fails with ErrEmptyCart before anything is
// written. On any storage failure the whole unit of work rolls back and
// the zero Order is returned; the caller's cart is untouched either way
// and the sale can be retried.
func (m *Manager) Commit(ctx context.Context, cc *CorrectedCart, storeID, customerID string) (pos.Order, error) {
	if cc == nil || cc.Empty() {
		return pos.Order{}, ErrEmptyCart
	}

	order := pos.Order{
		ID:         m.ids.NewID(),
		CreatedAt:  m.clock.Now(),
		StoreID:    storeID,
		CustomerID: customerID,
	}

	lines := make([]pos.LineItem, 0, len(cc.Lines))
	for _, l := range cc.Lines {
		lines = append(lines, pos.LineItem{OrderID: order.ID, UPC: l.UPC, Quantity: l.Quantity})
	}

	changes, err := m.store.CommitCheckout(ctx, order, lines)
	if err != nil {
		return pos.Order{}, fmt.Errorf("commit order %s: %w", order.ID, err)
	}

	slog.Info("checkout committed",
		"order_id", order.ID,
		"store_id", storeID,
		"customer_id", customerID,
		"lines", len(lines),
	)

	m.trigger.Apply(ctx, changes)

	return order, nil
}
