// Package cart holds the session shopping carts. Carts are ephemeral:
// they live for the authenticated session and are never written to the
// database; checkout converts them into orders.
package cart

import (
	"sync"

	"github.com/PolarBear1017/FoodSheep/apperrors"
)

// Line is one cart entry. A cart never holds two lines for the same
// food: adding an existing food merges by summing quantities.
type Line struct {
	FoodID   uint `json:"food_id"`
	Quantity int  `json:"qty"`
}

// Cart is an ordered list of lines for one session. Safe for
// concurrent use.
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

// AddItem merges quantity into an existing line for the food, or
// appends a new line. Quantity must be positive.
func (c *Cart) AddItem(foodID uint, quantity int) error {
	if quantity <= 0 {
		return apperrors.NewValidationError("quantity", "must be a positive integer")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].FoodID == foodID {
			c.lines[i].Quantity += quantity
			return nil
		}
	}
	c.lines = append(c.lines, Line{FoodID: foodID, Quantity: quantity})
	return nil
}

// AdjustItem changes an existing line's quantity by delta, removing
// the line when the result drops to zero or below. Unknown foods are
// ignored.
func (c *Cart) AdjustItem(foodID uint, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].FoodID != foodID {
			continue
		}
		c.lines[i].Quantity += delta
		if c.lines[i].Quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
		return
	}
}

// RemoveItem drops the line for the food if present.
func (c *Cart) RemoveItem(foodID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].FoodID == foodID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Snapshot returns a copy of the current lines in insertion order.
func (c *Cart) Snapshot() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}
