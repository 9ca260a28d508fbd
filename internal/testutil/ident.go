package testutil

import (
	"fmt"
	"sync"
)

// SequenceIDs returns a fixed, pre-declared list of ids in order.
//
// Tests that exercise id-generating paths declare exactly the ids they
// expect to be consumed; drawing one id too many panics with a count so
// the leak is visible at the call site rather than as a silent mismatch
// in a later assertion.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type SequenceIDs struct {
	mu   sync.Mutex
	ids  []string
	next int
}

// NewSequenceIDs creates a generator that yields the given ids in order.
func NewSequenceIDs(ids ...string) *SequenceIDs {
	return &SequenceIDs{ids: ids}
}

// NewID returns the next pre-declared id. Implements pos.IDGenerator.
//
// Panics when the sequence is exhausted.
func (g *SequenceIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.next >= len(g.ids) {
		panic(fmt.Sprintf("testutil: id sequence exhausted after %d ids", len(g.ids)))
	}
	id := g.ids[g.next]
	g.next++
	return id
}

// Used reports how many ids have been drawn so far.
func (g *SequenceIDs) Used() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.next
}
