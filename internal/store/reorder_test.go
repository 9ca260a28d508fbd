package store

import (
	"context"
	"testing"
	"time"
)

func TestInsertAndListOpen(t *testing.T) {
	s := createTestStore(t)
	seedReference(t, s, "00000000000001")
	ctx := context.Background()

	req := testRequest("req-1", "00000000000001", 100)
	if err := s.InsertReorderRequest(ctx, req); err != nil {
		t.Fatalf("InsertReorderRequest() failed: %v", err)
	}

	open, err := s.ListOpenByStore(ctx, "store-1")
	if err != nil {
		t.Fatalf("ListOpenByStore() failed: %v", err)
	}
	if len(open) != 1 {
		t.Fatalf("open requests = %d, want 1", len(open))
	}
	if !open[0].Open() {
		t.Error("listed request should be open")
	}
	if open[0].VendorID != "" {
		t.Errorf("vendor = %q, want unresolved", open[0].VendorID)
	}
	if open[0].Quantity != 100 {
		t.Errorf("quantity = %d, want 100", open[0].Quantity)
	}
}

func TestListOpenByVendor_ExcludesUnassigned(t *testing.T) {
	s := createTestStore(t)
	seedReference(t, s, "00000000000001")
	ctx := context.Background()

	if err := s.InsertReorderRequest(ctx, testRequest("req-1", "00000000000001", 50)); err != nil {
		t.Fatalf("InsertReorderRequest() failed: %v", err)
	}

	open, err := s.ListOpenByVendor(ctx, "vend-1")
	if err != nil {
		t.Fatalf("ListOpenByVendor() failed: %v", err)
	}
	if len(open) != 0 {
		t.Fatalf("open requests = %d, want 0 (vendor unassigned)", len(open))
	}

	ok, err := s.AssignVendor(ctx, "req-1", "vend-1")
	if err != nil || !ok {
		t.Fatalf("AssignVendor() = %v, %v; want true, nil", ok, err)
	}

	open, err = s.ListOpenByVendor(ctx, "vend-1")
	if err != nil {
		t.Fatalf("ListOpenByVendor() failed: %v", err)
	}
	if len(open) != 1 {
		t.Fatalf("open requests = %d, want 1 after assignment", len(open))
	}
}

func TestAssignVendor_OnlyOnce(t *testing.T) {
	s := createTestStore(t)
	seedReference(t, s, "00000000000001")
	ctx := context.Background()

	if err := s.InsertReorderRequest(ctx, testRequest("req-1", "00000000000001", 50)); err != nil {
		t.Fatalf("InsertReorderRequest() failed: %v", err)
	}

	ok, _ := s.AssignVendor(ctx, "req-1", "vend-1")
	if !ok {
		t.Fatal("first AssignVendor() should succeed")
	}
	ok, _ = s.AssignVendor(ctx, "req-1", "vend-2")
	if ok {
		t.Error("second AssignVendor() should report false")
	}
}

func TestSetShipmentDate(t *testing.T) {
	s := createTestStore(t)
	seedReference(t, s, "00000000000001")
	ctx := context.Background()
	date := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	if err := s.InsertReorderRequest(ctx, testRequest("req-1", "00000000000001", 50)); err != nil {
		t.Fatalf("InsertReorderRequest() failed: %v", err)
	}
	if _, err := s.AssignVendor(ctx, "req-1", "vend-1"); err != nil {
		t.Fatalf("AssignVendor() failed: %v", err)
	}

	ok, err := s.SetShipmentDate(ctx, "req-1", "vend-1", date)
	if err != nil {
		t.Fatalf("SetShipmentDate() failed: %v", err)
	}
	if !ok {
		t.Fatal("SetShipmentDate() should succeed for an open assigned request")
	}

	shippable, err := s.ListShippableByStore(ctx, "store-1")
	if err != nil {
		t.Fatalf("ListShippableByStore() failed: %v", err)
	}
	if len(shippable) != 1 {
		t.Fatalf("shippable = %d, want 1", len(shippable))
	}
	if shippable[0].ShipmentDate == nil || !shippable[0].ShipmentDate.Equal(date) {
		t.Errorf("shipment date = %v, want %v", shippable[0].ShipmentDate, date)
	}
}

func TestSetShipmentDate_Rejections(t *testing.T) {
	s := createTestStore(t)
	seedReference(t, s, "00000000000001")
	ctx := context.Background()
	date := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	if err := s.InsertReorderRequest(ctx, testRequest("req-1", "00000000000001", 50)); err != nil {
		t.Fatalf("InsertReorderRequest() failed: %v", err)
	}
	if _, err := s.AssignVendor(ctx, "req-1", "vend-1"); err != nil {
		t.Fatalf("AssignVendor() failed: %v", err)
	}

	// Wrong vendor
	if ok, _ := s.SetShipmentDate(ctx, "req-1", "vend-9", date); ok {
		t.Error("wrong vendor should be rejected")
	}
	// Unknown request
	if ok, _ := s.SetShipmentDate(ctx, "req-missing", "vend-1", date); ok {
		t.Error("unknown request should be rejected")
	}
	// Already closed
	if ok, _ := s.SetShipmentDate(ctx, "req-1", "vend-1", date); !ok {
		t.Fatal("first close should succeed")
	}
	if ok, _ := s.SetShipmentDate(ctx, "req-1", "vend-1", date); ok {
		t.Error("closing twice should be rejected")
	}
}

func TestFulfillRequest_Atomic(t *testing.T) {
	s := createTestStore(t)
	seedReference(t, s, "00000000000001")
	seedInventory(t, s, "00000000000001", 0, "2.00")
	ctx := context.Background()

	req := testRequest("req-1", "00000000000001", 40)
	if err := s.InsertReorderRequest(ctx, req); err != nil {
		t.Fatalf("InsertReorderRequest() failed: %v", err)
	}

	change, err := s.FulfillRequest(ctx, req)
	if err != nil {
		t.Fatalf("FulfillRequest() failed: %v", err)
	}
	if change.NewQuantity != 40 {
		t.Errorf("new quantity = %d, want 40", change.NewQuantity)
	}
	if n := countRows(t, s, "reorder_requests"); n != 0 {
		t.Errorf("reorder_requests = %d, want 0 (deleted after fulfillment)", n)
	}
}

func TestFulfillRequest_MissingInventoryLeavesRequest(t *testing.T) {
	s := createTestStore(t)
	seedReference(t, s, "00000000000001")
	ctx := context.Background()

	req := testRequest("req-1", "00000000000001", 40)
	if err := s.InsertReorderRequest(ctx, req); err != nil {
		t.Fatalf("InsertReorderRequest() failed: %v", err)
	}

	if _, err := s.FulfillRequest(ctx, req); err == nil {
		t.Fatal("FulfillRequest() should fail without an inventory record")
	}
	if n := countRows(t, s, "reorder_requests"); n != 1 {
		t.Errorf("reorder_requests = %d, want 1 (request kept on failure)", n)
	}
}

func TestDeleteReorderRequest_AbsentIsNoop(t *testing.T) {
	s := createTestStore(t)

	if err := s.DeleteReorderRequest(context.Background(), "missing"); err != nil {
		t.Errorf("DeleteReorderRequest() on absent id should be a no-op, got %v", err)
	}
}
