// Package replenish implements the replenishment side of the counterpoint
// core: the reorder trigger evaluated after every inventory mutation, the
// restock processor that applies arrived shipments, and the shipment-entry
// workflow vendors use to close open reorder requests.
//
// The trigger is an explicit post-commit hook, not a storage-native
// trigger: the checkout manager and the restock processor call it after
// their own unit of work has committed. A trigger failure can therefore
// never roll back the inventory mutation that caused it - it is logged and
// the mutation stands.
package replenish
