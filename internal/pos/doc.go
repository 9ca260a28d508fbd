// Package pos defines the domain model for the counterpoint point-of-sale
// core: carts, the per-store inventory ledger records, orders and their line
// items, and replenishment (reorder) requests.
//
// The package carries no storage or transaction logic. Records here are
// plain values; internal/store owns persistence and internal/checkout and
// internal/replenish own the workflows that mutate them.
//
// # Identity and time
//
// Orders and reorder requests use generated string identifiers (UUIDv7 in
// production via UUIDv7Generator). All day-granularity decisions (shipment
// gating, date validation) go through the Clock interface so tests can pin
// the calendar.
package pos
