package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/posworks/counterpoint/internal/pos"
)

func testOrder(id string) pos.Order {
	return pos.Order{
		ID:         id,
		CreatedAt:  time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC),
		StoreID:    "store-1",
		CustomerID: "cust-1",
	}
}

func TestCommitCheckout_Basic(t *testing.T) {
	s := createTestStore(t)
	seedReference(t, s, "00000000000001", "00000000000002")
	seedInventory(t, s, "00000000000001", 10, "2.00")
	seedInventory(t, s, "00000000000002", 5, "3.25")

	order := testOrder("ord-1")
	lines := []pos.LineItem{
		{OrderID: "ord-1", UPC: "00000000000001", Quantity: 4},
		{OrderID: "ord-1", UPC: "00000000000002", Quantity: 5},
	}

	changes, err := s.CommitCheckout(context.Background(), order, lines)
	if err != nil {
		t.Fatalf("CommitCheckout() failed: %v", err)
	}

	if len(changes) != 2 {
		t.Fatalf("changes = %d, want 2", len(changes))
	}
	if changes[0].NewQuantity != 6 {
		t.Errorf("first change new quantity = %d, want 6", changes[0].NewQuantity)
	}
	if changes[1].NewQuantity != 0 {
		t.Errorf("second change new quantity = %d, want 0", changes[1].NewQuantity)
	}

	got, err := s.GetOrder(context.Background(), "ord-1")
	if err != nil {
		t.Fatalf("GetOrder() failed: %v", err)
	}
	if !got.CreatedAt.Equal(order.CreatedAt) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, order.CreatedAt)
	}

	items, err := s.ListLineItems(context.Background(), "ord-1")
	if err != nil {
		t.Fatalf("ListLineItems() failed: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("line items = %d, want 2", len(items))
	}
}

func TestCommitCheckout_RollsBackOnMissingInventory(t *testing.T) {
	s := createTestStore(t)
	seedReference(t, s, "00000000000001")
	seedInventory(t, s, "00000000000001", 10, "2.00")

	order := testOrder("ord-1")
	lines := []pos.LineItem{
		{OrderID: "ord-1", UPC: "00000000000001", Quantity: 4},
		// No inventory record for this item - the decrement fails after
		// the order insert and the first line item already succeeded.
		{OrderID: "ord-1", UPC: "99999999999999", Quantity: 1},
	}

	_, err := s.CommitCheckout(context.Background(), order, lines)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	// Full rollback: no order, no line items, inventory untouched.
	if n := countRows(t, s, "orders"); n != 0 {
		t.Errorf("orders = %d, want 0 (rollback)", n)
	}
	if n := countRows(t, s, "line_items"); n != 0 {
		t.Errorf("line_items = %d, want 0 (rollback)", n)
	}
	rec, err := s.GetInventory(context.Background(), "00000000000001", "store-1")
	if err != nil {
		t.Fatalf("GetInventory() failed: %v", err)
	}
	if rec.Quantity != 10 {
		t.Errorf("quantity = %d, want 10 (rollback)", rec.Quantity)
	}
}

func TestCommitCheckout_RollsBackOnDuplicateOrder(t *testing.T) {
	s := createTestStore(t)
	seedReference(t, s, "00000000000001")
	seedInventory(t, s, "00000000000001", 10, "2.00")

	order := testOrder("ord-1")
	lines := []pos.LineItem{{OrderID: "ord-1", UPC: "00000000000001", Quantity: 1}}

	if _, err := s.CommitCheckout(context.Background(), order, lines); err != nil {
		t.Fatalf("first CommitCheckout() failed: %v", err)
	}

	// Same order ID again: constraint violation, nothing further applied.
	_, err := s.CommitCheckout(context.Background(), order, lines)
	if err == nil {
		t.Fatal("second CommitCheckout() should fail on duplicate order id")
	}

	rec, _ := s.GetInventory(context.Background(), "00000000000001", "store-1")
	if rec.Quantity != 9 {
		t.Errorf("quantity = %d, want 9 (only first commit applied)", rec.Quantity)
	}
}

func TestCommitCheckout_RejectsEmptyLines(t *testing.T) {
	s := createTestStore(t)
	seedReference(t, s)

	_, err := s.CommitCheckout(context.Background(), testOrder("ord-1"), nil)
	if err == nil {
		t.Fatal("CommitCheckout() with no lines should fail")
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.GetOrder(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
