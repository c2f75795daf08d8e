package cart

import (
	"errors"
	"testing"

	"github.com/PolarBear1017/FoodSheep/apperrors"
)

func TestAddItem_MergesDuplicateFood(t *testing.T) {
	c := &Cart{}
	if err := c.AddItem(1, 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if err := c.AddItem(1, 3); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	lines := c.Snapshot()
	if len(lines) != 1 {
		t.Fatalf("Expected 1 merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Errorf("Expected merged quantity 5, got %d", lines[0].Quantity)
	}
}

func TestAddItem_RejectsNonPositiveQuantity(t *testing.T) {
	c := &Cart{}
	for _, qty := range []int{0, -1} {
		err := c.AddItem(1, qty)
		var verr *apperrors.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("AddItem(1, %d): expected ValidationError, got %v", qty, err)
		}
	}
	if !c.Empty() {
		t.Error("Cart should stay empty after rejected adds")
	}
}

func TestAdjustItem(t *testing.T) {
	c := &Cart{}
	c.AddItem(1, 2)

	c.AdjustItem(1, 1)
	if got := c.Snapshot()[0].Quantity; got != 3 {
		t.Errorf("Expected quantity 3 after +1, got %d", got)
	}

	// dropping to zero removes the line
	c.AdjustItem(1, -3)
	if !c.Empty() {
		t.Error("Expected line removed when quantity reaches 0")
	}

	// adjusting a missing line is a no-op
	c.AdjustItem(99, 1)
	if !c.Empty() {
		t.Error("Adjusting an unknown food must not create a line")
	}
}

func TestRemoveItem(t *testing.T) {
	c := &Cart{}
	c.AddItem(1, 1)
	c.AddItem(2, 1)

	c.RemoveItem(1)
	lines := c.Snapshot()
	if len(lines) != 1 || lines[0].FoodID != 2 {
		t.Errorf("Expected only food 2 left, got %+v", lines)
	}

	c.RemoveItem(99) // no-op
	if len(c.Snapshot()) != 1 {
		t.Error("Removing an unknown food must not change the cart")
	}
}

func TestClear(t *testing.T) {
	c := &Cart{}
	c.AddItem(1, 1)
	c.AddItem(2, 4)
	c.Clear()
	if !c.Empty() {
		t.Error("Expected empty cart after Clear")
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	c := &Cart{}
	c.AddItem(1, 1)
	snap := c.Snapshot()
	snap[0].Quantity = 99
	if c.Snapshot()[0].Quantity != 1 {
		t.Error("Mutating a snapshot must not affect the cart")
	}
}

// Any sequence of operations must leave the cart without duplicate
// food IDs and without non-positive quantities.
func TestInvariants_UnderOperationSequence(t *testing.T) {
	c := &Cart{}
	ops := []func(){
		func() { c.AddItem(1, 2) },
		func() { c.AddItem(2, 1) },
		func() { c.AddItem(1, 1) },
		func() { c.AdjustItem(2, -5) },
		func() { c.AddItem(3, 4) },
		func() { c.AdjustItem(1, -1) },
		func() { c.RemoveItem(3) },
		func() { c.AddItem(3, 1) },
		func() { c.AdjustItem(3, -1) },
	}
	for i, op := range ops {
		op()
		seen := map[uint]bool{}
		for _, l := range c.Snapshot() {
			if seen[l.FoodID] {
				t.Fatalf("After op %d: duplicate line for food %d", i, l.FoodID)
			}
			seen[l.FoodID] = true
			if l.Quantity <= 0 {
				t.Fatalf("After op %d: non-positive quantity %d for food %d", i, l.Quantity, l.FoodID)
			}
		}
	}
}

func TestStore_OneCartPerUser(t *testing.T) {
	s := NewStore()
	s.Get(1).AddItem(10, 1)

	if !s.Get(2).Empty() {
		t.Error("A different user's cart must be independent")
	}
	if s.Get(1).Empty() {
		t.Error("Same user must get the same cart back")
	}

	s.Drop(1)
	if !s.Get(1).Empty() {
		t.Error("Dropped cart must come back empty")
	}
}
