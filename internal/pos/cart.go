package pos

// Cart is the client-side mapping from item UPC to requested quantity.
//
// A cart is owned by exactly one in-progress checkout session and is not
// safe for concurrent use. Invalid or unknown items are allowed in: the
// reconciler drops them later, so add/remove stay cheap and offline.
type Cart struct {
	lines map[string]int
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{lines: make(map[string]int)}
}

// Add adds qty units of an item, accumulating onto any existing entry.
// Non-positive quantities are ignored.
func (c *Cart) Add(upc string, qty int) {
	if qty <= 0 {
		return
	}
	c.lines[upc] += qty
}

// Remove deletes an item from the cart entirely.
// Removing an absent item is a no-op and reports false.
func (c *Cart) Remove(upc string) bool {
	if _, ok := c.lines[upc]; !ok {
		return false
	}
	delete(c.lines, upc)
	return true
}

// Reduce subtracts qty units from an item's entry. If the reduction meets
// or exceeds the held quantity the entry is removed, matching the
// over-remove behavior of the counter workflow. Reports false when the item
// is not in the cart.
func (c *Cart) Reduce(upc string, qty int) bool {
	cur, ok := c.lines[upc]
	if !ok {
		return false
	}
	if qty >= cur {
		delete(c.lines, upc)
		return true
	}
	c.lines[upc] = cur - qty
	return true
}

// Quantity returns the requested quantity for an item (0 when absent).
func (c *Cart) Quantity(upc string) int {
	return c.lines[upc]
}

// Lines returns a copy of the cart contents. Mutating the returned map
// does not affect the cart.
func (c *Cart) Lines() map[string]int {
	out := make(map[string]int, len(c.lines))
	for upc, qty := range c.lines {
		out[upc] = qty
	}
	return out
}

// Len returns the number of distinct items in the cart.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Empty reports whether the cart has no entries.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}
