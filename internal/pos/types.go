package pos

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies an item for detail lookups. The set is closed:
// generic items, foods, beverages, and pharmaceuticals. The category only
// routes which item-detail collaborator answers name/attribute queries; it
// never affects checkout or replenishment arithmetic.
type Category string

const (
	CategoryItem     Category = "item"
	CategoryFood     Category = "food"
	CategoryBeverage Category = "beverage"
	CategoryPharma   Category = "pharma"
)

// ParseCategory validates a category string.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryItem, CategoryFood, CategoryBeverage, CategoryPharma:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown item category %q", s)
}

// InventoryRecord is one row of the per-store inventory ledger, keyed by
// (UPC, StoreID). Quantity may go negative transiently: reconciliation is
// advisory, not a lock, so two sessions that both read stale counts can
// jointly over-sell. The replenishment trigger compensates on the next
// mutation rather than preventing the race.
type InventoryRecord struct {
	UPC      string
	StoreID  string
	Quantity int
	Price    decimal.Decimal
	Category Category
}

// InventoryChange captures the pre- and post-update quantities of a single
// inventory mutation. It is the value handed to the replenishment trigger
// after a successful commit.
type InventoryChange struct {
	UPC         string
	StoreID     string
	OldQuantity int
	NewQuantity int
}

// Delta returns the applied quantity change (negative for checkout
// decrements, positive for restocks).
func (c InventoryChange) Delta() int {
	return c.NewQuantity - c.OldQuantity
}

// Order is the parent record of one successful checkout. Immutable after
// creation; its line items reference it by ID.
type Order struct {
	ID         string
	CreatedAt  time.Time
	StoreID    string
	CustomerID string
}

// LineItem is one purchased item within an order. Created exactly once per
// valid cart entry at commit time; never mutated or deleted.
type LineItem struct {
	OrderID  string
	UPC      string
	Quantity int
}

// ReorderRequest is a replenishment record. The trigger creates it open
// (nil shipment date) with the vendor unresolved; the shipment-entry
// workflow sets the date once; the restock processor deletes it after
// applying its quantity back into inventory.
type ReorderRequest struct {
	ID           string
	ShipmentDate *time.Time
	StoreID      string
	VendorID     string // empty until a vendor is assigned
	UPC          string
	Quantity     int
	CreatedAt    time.Time
}

// Open reports whether the request has no shipment scheduled yet.
func (r ReorderRequest) Open() bool {
	return r.ShipmentDate == nil
}

// Fulfillable reports whether the request's shipment has arrived as of the
// given day. Comparison is at day granularity.
func (r ReorderRequest) Fulfillable(today time.Time) bool {
	if r.ShipmentDate == nil {
		return false
	}
	return !DateOnly(*r.ShipmentDate).After(DateOnly(today))
}
