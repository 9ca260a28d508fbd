// Package checkout implements the sale path of the counterpoint core: the
// quantity reconciler that clamps a cart against live inventory and the
// transaction manager that commits the corrected cart as one atomic unit.
//
// Reconciliation is optimistic. It reads inventory without locks, so the
// quantities it captures can be stale by the time the commit runs; a
// concurrent sale can still drive a quantity negative. The ledger accepts
// that (no floor at zero) and the replenishment trigger picks it up.
package checkout
