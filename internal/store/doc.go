// Package store provides SQLite-backed durable storage for the counterpoint
// inventory ledger.
//
// The store owns four record kinds:
//   - Inventory: per-(upc, store) available quantity and unit price
//   - Orders / Line Items: immutable facts written by checkout commits
//   - Reorder Requests: replenishment records, open until a shipment date
//     is set and deleted once fulfilled
//   - Reference data: stores, customers, vendors, and item details
//
// # Consistency contract
//
// CommitCheckout is the one atomic unit of work: the order insert, every
// line-item insert, and every inventory decrement happen in a single
// transaction. No other connection ever observes a partially applied
// checkout. FulfillRequest pairs the inventory add with the request delete
// the same way, which is what makes restock idempotent per request.
//
// Inventory decrements are not floored at zero. Reconciliation reads are
// advisory, so concurrent sessions can jointly drive a quantity negative;
// the replenishment trigger is the compensating control.
//
// # Database configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
