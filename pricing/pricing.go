// Package pricing computes checkout totals. Everything here is pure:
// callers resolve cart lines against the catalog first and pass in the
// live prices.
package pricing

// Tunables for the membership programme. The algorithm below never
// hardcodes these values.
const (
	// DefaultDeliveryFee is the per-merchant base delivery fee in
	// minor currency units, charged to non-VIP customers.
	DefaultDeliveryFee int64 = 30

	// VIPDiscountThreshold is the per-merchant subtotal at which a
	// VIP's percentage discount starts to apply (inclusive).
	VIPDiscountThreshold int64 = 1000

	// VIPDiscountPercent is the discount rate applied above the
	// threshold, as an integer percentage.
	VIPDiscountPercent int64 = 5
)

// Config carries the pricing constants so they can be tuned without
// touching the computation.
type Config struct {
	DeliveryFee       int64
	DiscountThreshold int64
	DiscountPercent   int64
}

func DefaultConfig() Config {
	return Config{
		DeliveryFee:       DefaultDeliveryFee,
		DiscountThreshold: VIPDiscountThreshold,
		DiscountPercent:   VIPDiscountPercent,
	}
}

// Line is a cart line resolved against the live catalog.
type Line struct {
	FoodID     uint   `json:"food_id"`
	MerchantID uint   `json:"merchant_id"`
	Name       string `json:"name"`
	Image      string `json:"image,omitempty"`
	UnitPrice  int64  `json:"price"`
	Quantity   int    `json:"qty"`
}

// GroupQuote is the priced breakdown for one merchant's share of the
// cart. Checkout creates exactly one order per group.
type GroupQuote struct {
	MerchantID  uint   `json:"merchant_id"`
	Lines       []Line `json:"lines"`
	Subtotal    int64  `json:"subtotal"`
	DeliveryFee int64  `json:"delivery_fee"`
	Discount    int64  `json:"discount"`
	Total       int64  `json:"total"`
}

// Quote is the full cart priced across all merchant groups.
type Quote struct {
	Groups     []GroupQuote `json:"groups"`
	GrandTotal int64        `json:"grand_total"`
}

// QuoteGroup prices one merchant's lines. VIPs pay no delivery fee and
// receive the percentage discount once the subtotal reaches the
// threshold; the discount is floored to whole minor units.
func QuoteGroup(merchantID uint, lines []Line, vip bool, cfg Config) GroupQuote {
	g := GroupQuote{MerchantID: merchantID, Lines: lines}
	for _, l := range lines {
		g.Subtotal += l.UnitPrice * int64(l.Quantity)
	}
	if !vip {
		g.DeliveryFee = cfg.DeliveryFee
	}
	if vip && g.Subtotal >= cfg.DiscountThreshold {
		g.Discount = g.Subtotal * cfg.DiscountPercent / 100
	}
	g.Total = g.Subtotal + g.DeliveryFee - g.Discount
	return g
}

// QuoteLines groups the lines by merchant (groups appear in order of
// first occurrence) and prices each group. The grand total does not
// depend on the input order.
func QuoteLines(lines []Line, vip bool, cfg Config) Quote {
	byMerchant := make(map[uint][]Line)
	var order []uint
	for _, l := range lines {
		if _, seen := byMerchant[l.MerchantID]; !seen {
			order = append(order, l.MerchantID)
		}
		byMerchant[l.MerchantID] = append(byMerchant[l.MerchantID], l)
	}

	var q Quote
	for _, mid := range order {
		g := QuoteGroup(mid, byMerchant[mid], vip, cfg)
		q.Groups = append(q.Groups, g)
		q.GrandTotal += g.Total
	}
	return q
}
