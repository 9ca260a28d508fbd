package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCart_AddAccumulates(t *testing.T) {
	c := NewCart()
	c.Add("00000000000001", 2)
	c.Add("00000000000001", 3)

	assert.Equal(t, 5, c.Quantity("00000000000001"))
	assert.Equal(t, 1, c.Len())
}

func TestCart_AddIgnoresNonPositive(t *testing.T) {
	c := NewCart()
	c.Add("00000000000001", 0)
	c.Add("00000000000001", -4)

	assert.True(t, c.Empty())
}

func TestCart_Remove(t *testing.T) {
	c := NewCart()
	c.Add("00000000000001", 2)

	assert.True(t, c.Remove("00000000000001"))
	assert.False(t, c.Remove("00000000000001"), "second remove should report absent")
	assert.True(t, c.Empty())
}

func TestCart_Reduce(t *testing.T) {
	c := NewCart()
	c.Add("00000000000001", 5)

	assert.True(t, c.Reduce("00000000000001", 2))
	assert.Equal(t, 3, c.Quantity("00000000000001"))
}

func TestCart_ReduceBeyondHeldRemovesEntry(t *testing.T) {
	c := NewCart()
	c.Add("00000000000001", 2)

	assert.True(t, c.Reduce("00000000000001", 10))
	assert.Zero(t, c.Quantity("00000000000001"))
	assert.True(t, c.Empty())
}

func TestCart_ReduceAbsent(t *testing.T) {
	c := NewCart()
	assert.False(t, c.Reduce("00000000000009", 1))
}

func TestCart_LinesIsACopy(t *testing.T) {
	c := NewCart()
	c.Add("00000000000001", 2)

	lines := c.Lines()
	lines["00000000000001"] = 99

	assert.Equal(t, 2, c.Quantity("00000000000001"))
}
