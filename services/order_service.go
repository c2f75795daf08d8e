// Package services implements the cart → checkout → order → review
// core on top of gorm, independent of any HTTP context so it can be
// exercised directly in tests.
package services

import (
	"errors"
	"time"

	"github.com/PolarBear1017/FoodSheep/apperrors"
	"github.com/PolarBear1017/FoodSheep/cart"
	"github.com/PolarBear1017/FoodSheep/models"
	"github.com/PolarBear1017/FoodSheep/pricing"
	"github.com/PolarBear1017/FoodSheep/statemachine"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderService struct {
	DB      *gorm.DB
	Carts   *cart.Store
	Pricing pricing.Config
}

func NewOrderService(db *gorm.DB, carts *cart.Store) *OrderService {
	return &OrderService{DB: db, Carts: carts, Pricing: pricing.DefaultConfig()}
}

// CheckoutResult reports the orders created by one checkout. All of
// them share the CheckoutID.
type CheckoutResult struct {
	CheckoutID string         `json:"checkout_id"`
	Orders     []models.Order `json:"orders"`
	GrandTotal int64          `json:"grand_total"`
}

// CartView is the customer's cart priced for display: one group per
// merchant with the merchant's name attached.
type CartView struct {
	Groups     []CartGroupView `json:"groups"`
	GrandTotal int64           `json:"grand_total"`
}

type CartGroupView struct {
	pricing.GroupQuote
	MerchantName string `json:"merchant_name"`
}

// resolveLines looks up each cart line's food. Lines whose food no
// longer exists are skipped rather than failing the whole cart.
func (s *OrderService) resolveLines(lines []cart.Line) ([]pricing.Line, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.FoodID)
	}
	var foods []models.Food
	if err := s.DB.Where("id IN ?", ids).Find(&foods).Error; err != nil {
		return nil, err
	}
	foodMap := make(map[uint]models.Food, len(foods))
	for _, f := range foods {
		foodMap[f.ID] = f
	}

	resolved := make([]pricing.Line, 0, len(lines))
	for _, l := range lines {
		f, ok := foodMap[l.FoodID]
		if !ok {
			continue
		}
		resolved = append(resolved, pricing.Line{
			FoodID:     f.ID,
			MerchantID: f.MerchantID,
			Name:       f.Name,
			Image:      f.Image,
			UnitPrice:  f.Price,
			Quantity:   l.Quantity,
		})
	}
	return resolved, nil
}

// CartQuote prices the user's current cart without mutating anything.
func (s *OrderService) CartQuote(customerID uint, vip bool) (*CartView, error) {
	resolved, err := s.resolveLines(s.Carts.Get(customerID).Snapshot())
	if err != nil {
		return nil, err
	}
	quote := pricing.QuoteLines(resolved, vip, s.Pricing)

	view := &CartView{GrandTotal: quote.GrandTotal}
	for _, g := range quote.Groups {
		var merchant models.User
		name := ""
		if err := s.DB.First(&merchant, g.MerchantID).Error; err == nil {
			name = merchant.Name
		}
		view.Groups = append(view.Groups, CartGroupView{GroupQuote: g, MerchantName: name})
	}
	return view, nil
}

// Checkout converts the user's cart into one pending order per
// merchant group, all in a single transaction. The cart is cleared
// only after the transaction commits; any failure rolls everything
// back and leaves the cart untouched.
func (s *OrderService) Checkout(customerID uint, vip bool) (*CheckoutResult, error) {
	userCart := s.Carts.Get(customerID)
	lines := userCart.Snapshot()
	if len(lines) == 0 {
		return nil, apperrors.NewValidationError("cart", "cart is empty")
	}

	resolved, err := s.resolveLines(lines)
	if err != nil {
		return nil, err
	}
	if len(resolved) == 0 {
		return nil, apperrors.NewValidationError("cart", "no cart item resolves to a current food")
	}

	quote := pricing.QuoteLines(resolved, vip, s.Pricing)
	checkoutID := uuid.NewString()

	var created []models.Order
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, g := range quote.Groups {
			snapshot := make(models.CartSnapshot, 0, len(g.Lines))
			for _, l := range g.Lines {
				snapshot = append(snapshot, models.NewSnapshotPair(l.FoodID, l.Quantity))
			}
			order := models.Order{
				MerchantID: g.MerchantID,
				CustomerID: customerID,
				CheckoutID: checkoutID,
				Cart:       snapshot,
				TotalPrice: g.Total,
				Status:     models.StatusPending,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			event := models.OrderEvent{
				OrderID:  order.ID,
				ToStatus: models.StatusPending,
				ActorID:  customerID,
				Note:     "Order placed at checkout",
			}
			if err := tx.Create(&event).Error; err != nil {
				return err
			}
			created = append(created, order)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.NewCheckoutError(err)
	}

	userCart.Clear()
	return &CheckoutResult{
		CheckoutID: checkoutID,
		Orders:     created,
		GrandTotal: quote.GrandTotal,
	}, nil
}

// BuyNow places an immediate single-food order, priced through the
// same engine as checkout.
func (s *OrderService) BuyNow(customerID uint, vip bool, foodID uint, quantity int) (*models.Order, error) {
	if quantity <= 0 {
		return nil, apperrors.NewValidationError("quantity", "must be a positive integer")
	}
	var food models.Food
	if err := s.DB.First(&food, foodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("food", foodID)
		}
		return nil, err
	}

	g := pricing.QuoteGroup(food.MerchantID, []pricing.Line{{
		FoodID:     food.ID,
		MerchantID: food.MerchantID,
		Name:       food.Name,
		UnitPrice:  food.Price,
		Quantity:   quantity,
	}}, vip, s.Pricing)

	order := models.Order{
		MerchantID: food.MerchantID,
		CustomerID: customerID,
		CheckoutID: uuid.NewString(),
		Cart:       models.CartSnapshot{models.NewSnapshotPair(food.ID, quantity)},
		TotalPrice: g.Total,
		Status:     models.StatusPending,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return tx.Create(&models.OrderEvent{
			OrderID:  order.ID,
			ToStatus: models.StatusPending,
			ActorID:  customerID,
			Note:     "Order placed via buy now",
		}).Error
	})
	if err != nil {
		return nil, apperrors.NewCheckoutError(err)
	}
	return &order, nil
}

// Transition performs a lifecycle action on an order. The actor must
// be the order's merchant for accept/reject/complete and the order's
// customer for cancel; the state machine decides legality.
func (s *OrderService) Transition(orderID, actorID uint, role models.UserRole, action statemachine.Action, note string) (*models.Order, error) {
	var order models.Order
	if err := s.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("order", orderID)
		}
		return nil, err
	}

	if action == statemachine.ActionCancel {
		if order.CustomerID != actorID {
			return nil, apperrors.NewAuthorizationError("this order does not belong to you")
		}
	} else {
		if order.MerchantID != actorID {
			return nil, apperrors.NewAuthorizationError("this order does not belong to your shop")
		}
	}

	next, err := statemachine.Apply(order.Status, action, role)
	if err != nil {
		return nil, err
	}

	prev := order.Status
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Update("status", next).Error; err != nil {
			return err
		}
		return tx.Create(&models.OrderEvent{
			OrderID:    order.ID,
			FromStatus: prev,
			ToStatus:   next,
			ActorID:    actorID,
			Note:       note,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	order.Status = next
	return &order, nil
}

// ListForCustomer returns the customer's orders newest first, plus the
// set of order IDs the customer has already reviewed.
func (s *OrderService) ListForCustomer(customerID uint) ([]models.Order, map[uint]bool, error) {
	var orders []models.Order
	if err := s.DB.Preload("Merchant").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return nil, nil, err
	}

	var reviews []models.Review
	if err := s.DB.Where("customer_id = ?", customerID).Find(&reviews).Error; err != nil {
		return nil, nil, err
	}
	reviewed := make(map[uint]bool, len(reviews))
	for _, r := range reviews {
		reviewed[r.OrderID] = true
	}
	return orders, reviewed, nil
}

// GetForCustomer returns one order with its event history, enforcing
// ownership.
func (s *OrderService) GetForCustomer(customerID, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.Preload("Merchant").Preload("Events").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("order", orderID)
		}
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, apperrors.NewAuthorizationError("this order does not belong to you")
	}
	return &order, nil
}

// ListForMerchant returns the merchant's orders newest first with an
// optional status filter, plus a count-by-status summary for the
// dashboard. The summary always covers all of the merchant's orders,
// not just the filtered page.
func (s *OrderService) ListForMerchant(merchantID uint, status models.OrderStatus) ([]models.Order, map[string]int, error) {
	query := s.DB.Preload("Customer").Where("merchant_id = ?", merchantID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, nil, err
	}

	var counts []struct {
		Status models.OrderStatus
		Count  int
	}
	if err := s.DB.Model(&models.Order{}).
		Select("status, count(*) as count").
		Where("merchant_id = ?", merchantID).
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, nil, err
	}
	summary := map[string]int{}
	for _, row := range counts {
		summary[string(row.Status)] = row.Count
	}
	return orders, summary, nil
}

// UpgradeVIP marks the user as a member for the standard period,
// simulating an immediately successful payment.
func (s *OrderService) UpgradeVIP(userID uint, now time.Time) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user", userID)
		}
		return nil, err
	}
	expiry := now.Add(30 * 24 * time.Hour)
	if err := s.DB.Model(&user).Updates(map[string]interface{}{
		"is_vip":          true,
		"vip_expire_time": expiry,
	}).Error; err != nil {
		return nil, err
	}
	user.IsVIP = true
	user.VIPExpireTime = &expiry
	return &user, nil
}
