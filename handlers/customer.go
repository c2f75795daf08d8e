package handlers

import (
	"net/http"
	"strconv"

	"github.com/PolarBear1017/FoodSheep/config"
	"github.com/PolarBear1017/FoodSheep/middleware"
	"github.com/PolarBear1017/FoodSheep/models"
	"github.com/PolarBear1017/FoodSheep/statemachine"

	"github.com/gin-gonic/gin"
)

// ── Cart ────────────────────────────────────────────────────────────────────

type AddToCartRequest struct {
	FoodID   uint `json:"food_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

// GetCart returns the cart grouped by merchant with computed totals
func GetCart(c *gin.Context) {
	caller := middleware.Caller(c)
	view, err := orderService().CartQuote(caller.UserID, caller.VIPActive(config.DB))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": view})
}

// AddToCart merges a food into the session cart
func AddToCart(c *gin.Context) {
	customerID := middleware.Caller(c).UserID

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := Carts.Get(customerID).AddItem(req.FoodID, req.Quantity); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added to cart", "food_id": req.FoodID, "quantity": req.Quantity})
}

type AdjustCartRequest struct {
	Change int `json:"change" binding:"required"` // e.g. +1 or -1
}

// AdjustCartItem changes a line's quantity; lines dropping to zero are
// removed.
func AdjustCartItem(c *gin.Context) {
	customerID := middleware.Caller(c).UserID

	foodID, err := strconv.ParseUint(c.Param("foodId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid food id"})
		return
	}
	var req AdjustCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	Carts.Get(customerID).AdjustItem(uint(foodID), req.Change)
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
}

// RemoveCartItem drops a line from the cart
func RemoveCartItem(c *gin.Context) {
	customerID := middleware.Caller(c).UserID

	foodID, err := strconv.ParseUint(c.Param("foodId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid food id"})
		return
	}
	Carts.Get(customerID).RemoveItem(uint(foodID))
	c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
}

// ClearCart empties the cart
func ClearCart(c *gin.Context) {
	customerID := middleware.Caller(c).UserID
	Carts.Get(customerID).Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

// ── Checkout & Orders ───────────────────────────────────────────────────────

// Checkout converts the cart into one pending order per merchant
func Checkout(c *gin.Context) {
	caller := middleware.Caller(c)

	result, err := orderService().Checkout(caller.UserID, caller.VIPActive(config.DB))
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Orders placed, merchants are confirming",
		"checkout_id": result.CheckoutID,
		"orders":      result.Orders,
		"grand_total": result.GrandTotal,
	})
}

type BuyNowRequest struct {
	FoodID   uint `json:"food_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

// BuyNow places a single-food order without going through the cart
func BuyNow(c *gin.Context) {
	caller := middleware.Caller(c)

	var req BuyNowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := orderService().BuyNow(caller.UserID, caller.VIPActive(config.DB), req.FoodID, req.Quantity)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed", "order": order})
}

// GetMyOrders returns the customer's orders, newest first, with the
// IDs of orders already reviewed so the UI can hide the review button.
func GetMyOrders(c *gin.Context) {
	customerID := middleware.Caller(c).UserID

	orders, reviewed, err := orderService().ListForCustomer(customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}

	reviewedIDs := make([]uint, 0, len(reviewed))
	for id := range reviewed {
		reviewedIDs = append(reviewedIDs, id)
	}
	c.JSON(http.StatusOK, gin.H{
		"count":              len(orders),
		"orders":             orders,
		"reviewed_order_ids": reviewedIDs,
	})
}

// GetOrderDetail returns one order with its event history
func GetOrderDetail(c *gin.Context) {
	customerID := middleware.Caller(c).UserID

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}
	order, serr := orderService().GetForCustomer(customerID, uint(orderID))
	if serr != nil {
		handleError(c, serr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CancelOrder cancels a pending order (customer only)
func CancelOrder(c *gin.Context) {
	customerID := middleware.Caller(c).UserID

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}
	order, serr := orderService().Transition(uint(orderID), customerID, models.RoleCustomer, statemachine.ActionCancel, "Cancelled by customer")
	if serr != nil {
		handleError(c, serr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": order.ID})
}

// ── Reviews ─────────────────────────────────────────────────────────────────

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// SubmitReview creates the one review allowed for a completed order
func SubmitReview(c *gin.Context) {
	customerID := middleware.Caller(c).UserID

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, serr := reviewService().Submit(uint(orderID), customerID, req.Rating, req.Content)
	if serr != nil {
		handleError(c, serr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Thanks for your review!", "review": review})
}
