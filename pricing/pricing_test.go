package pricing

import (
	"math/rand"
	"testing"
)

func TestQuoteGroup_RegularCustomer(t *testing.T) {
	g := QuoteGroup(1, []Line{
		{FoodID: 1, MerchantID: 1, UnitPrice: 200, Quantity: 2},
	}, false, DefaultConfig())

	if g.Subtotal != 400 {
		t.Errorf("Expected subtotal 400, got %d", g.Subtotal)
	}
	if g.DeliveryFee != 30 {
		t.Errorf("Expected delivery fee 30, got %d", g.DeliveryFee)
	}
	if g.Discount != 0 {
		t.Errorf("Expected no discount, got %d", g.Discount)
	}
	if g.Total != 430 {
		t.Errorf("Expected total 430, got %d", g.Total)
	}
}

func TestQuoteGroup_VIPAboveThreshold(t *testing.T) {
	g := QuoteGroup(1, []Line{
		{FoodID: 2, MerchantID: 1, UnitPrice: 1200, Quantity: 1},
	}, true, DefaultConfig())

	if g.Subtotal != 1200 {
		t.Errorf("Expected subtotal 1200, got %d", g.Subtotal)
	}
	if g.DeliveryFee != 0 {
		t.Errorf("Expected waived delivery fee, got %d", g.DeliveryFee)
	}
	if g.Discount != 60 {
		t.Errorf("Expected discount 60, got %d", g.Discount)
	}
	if g.Total != 1140 {
		t.Errorf("Expected total 1140, got %d", g.Total)
	}
}

func TestQuoteGroup_DiscountBoundary(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		vip      bool
		discount int64
	}{
		{"vip at exactly 1000", 1000, true, 50},
		{"vip at 999", 999, true, 0},
		{"non-vip at 1000", 1000, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := QuoteGroup(1, []Line{
				{FoodID: 1, MerchantID: 1, UnitPrice: tt.subtotal, Quantity: 1},
			}, tt.vip, DefaultConfig())
			if g.Discount != tt.discount {
				t.Errorf("Expected discount %d, got %d", tt.discount, g.Discount)
			}
		})
	}
}

func TestQuoteLines_GroupsByMerchant(t *testing.T) {
	lines := []Line{
		{FoodID: 1, MerchantID: 10, UnitPrice: 100, Quantity: 1},
		{FoodID: 2, MerchantID: 20, UnitPrice: 50, Quantity: 2},
		{FoodID: 3, MerchantID: 10, UnitPrice: 30, Quantity: 3},
	}
	q := QuoteLines(lines, false, DefaultConfig())

	if len(q.Groups) != 2 {
		t.Fatalf("Expected 2 merchant groups, got %d", len(q.Groups))
	}
	if q.Groups[0].MerchantID != 10 || q.Groups[1].MerchantID != 20 {
		t.Errorf("Expected groups in first-occurrence order [10 20], got [%d %d]",
			q.Groups[0].MerchantID, q.Groups[1].MerchantID)
	}
	// merchant 10: 100 + 90 + fee 30 = 220; merchant 20: 100 + 30 = 130
	if q.Groups[0].Total != 220 {
		t.Errorf("Expected merchant 10 total 220, got %d", q.Groups[0].Total)
	}
	if q.Groups[1].Total != 130 {
		t.Errorf("Expected merchant 20 total 130, got %d", q.Groups[1].Total)
	}
	if q.GrandTotal != 350 {
		t.Errorf("Expected grand total 350, got %d", q.GrandTotal)
	}
}

func TestQuoteLines_OrderIndependent(t *testing.T) {
	lines := []Line{
		{FoodID: 1, MerchantID: 1, UnitPrice: 700, Quantity: 1},
		{FoodID: 2, MerchantID: 2, UnitPrice: 250, Quantity: 4},
		{FoodID: 3, MerchantID: 1, UnitPrice: 600, Quantity: 1},
		{FoodID: 4, MerchantID: 3, UnitPrice: 80, Quantity: 2},
	}
	want := QuoteLines(lines, true, DefaultConfig()).GrandTotal

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]Line, len(lines))
		copy(shuffled, lines)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got := QuoteLines(shuffled, true, DefaultConfig()).GrandTotal
		if got != want {
			t.Fatalf("Grand total changed under permutation: want %d, got %d", want, got)
		}
	}
}

func TestQuoteLines_Idempotent(t *testing.T) {
	lines := []Line{{FoodID: 1, MerchantID: 1, UnitPrice: 500, Quantity: 3}}
	first := QuoteLines(lines, true, DefaultConfig())
	second := QuoteLines(lines, true, DefaultConfig())
	if first.GrandTotal != second.GrandTotal {
		t.Errorf("Expected identical totals, got %d and %d", first.GrandTotal, second.GrandTotal)
	}
}

func TestQuoteLines_Empty(t *testing.T) {
	q := QuoteLines(nil, true, DefaultConfig())
	if len(q.Groups) != 0 || q.GrandTotal != 0 {
		t.Errorf("Expected empty quote, got %+v", q)
	}
}
