package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/posworks/counterpoint/internal/pos"
)

// Reference data: stores, customers, vendors, and item details. These are
// written by bulk seeding and read by identity checks and receipts; the
// checkout and replenishment workflows never mutate them.

// UpsertStore creates or updates a store location.
func (s *Store) UpsertStore(ctx context.Context, storeID, name, city string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stores (store_id, name, city) VALUES (?, ?, ?)
		ON CONFLICT(store_id) DO UPDATE SET name = excluded.name, city = excluded.city
	`, storeID, name, city)
	if err != nil {
		return fmt.Errorf("upsert store %s: %w", storeID, err)
	}
	return nil
}

// UpsertCustomer creates or updates a customer.
func (s *Store) UpsertCustomer(ctx context.Context, customerID, firstName, lastName, phone string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO customers (customer_id, first_name, last_name, phone) VALUES (?, ?, ?, ?)
		ON CONFLICT(customer_id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			phone = excluded.phone
	`, customerID, firstName, lastName, phone)
	if err != nil {
		return fmt.Errorf("upsert customer %s: %w", customerID, err)
	}
	return nil
}

// UpsertVendor creates or updates a vendor.
func (s *Store) UpsertVendor(ctx context.Context, vendorID, name string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vendors (vendor_id, name) VALUES (?, ?)
		ON CONFLICT(vendor_id) DO UPDATE SET name = excluded.name
	`, vendorID, name)
	if err != nil {
		return fmt.Errorf("upsert vendor %s: %w", vendorID, err)
	}
	return nil
}

// UpsertItem creates or updates an item's detail record.
func (s *Store) UpsertItem(ctx context.Context, upc, name string, category pos.Category) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO items (upc, name, category) VALUES (?, ?, ?)
		ON CONFLICT(upc) DO UPDATE SET name = excluded.name, category = excluded.category
	`, upc, name, string(category))
	if err != nil {
		return fmt.Errorf("upsert item %s: %w", upc, err)
	}
	return nil
}

// StoreExists reports whether a store location is known.
func (s *Store) StoreExists(ctx context.Context, storeID string) (bool, error) {
	return s.exists(ctx, `SELECT 1 FROM stores WHERE store_id = ?`, storeID)
}

// CustomerExists reports whether a customer is known.
func (s *Store) CustomerExists(ctx context.Context, customerID string) (bool, error) {
	return s.exists(ctx, `SELECT 1 FROM customers WHERE customer_id = ?`, customerID)
}

// VendorExists reports whether a vendor is known.
func (s *Store) VendorExists(ctx context.Context, vendorID string) (bool, error) {
	return s.exists(ctx, `SELECT 1 FROM vendors WHERE vendor_id = ?`, vendorID)
}

// CustomerName returns "First Last" for a customer, or ErrNotFound.
func (s *Store) CustomerName(ctx context.Context, customerID string) (string, error) {
	var first, last string
	err := s.db.QueryRowContext(ctx, `
		SELECT first_name, last_name FROM customers WHERE customer_id = ?
	`, customerID).Scan(&first, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("customer name %s: %w", customerID, err)
	}
	return first + " " + last, nil
}

// ItemName returns the display name for an item, or ErrNotFound. This is
// the category-routed item-detail lookup surface: every category's details
// live behind the same items table, so one query answers for all of them.
func (s *Store) ItemName(ctx context.Context, upc string) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `
		SELECT name FROM items WHERE upc = ?
	`, upc).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("item name %s: %w", upc, err)
	}
	return name, nil
}

func (s *Store) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("existence check: %w", err)
	}
	return true, nil
}
