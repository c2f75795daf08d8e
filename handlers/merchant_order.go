package handlers

import (
	"net/http"
	"strconv"

	"github.com/PolarBear1017/FoodSheep/middleware"
	"github.com/PolarBear1017/FoodSheep/models"
	"github.com/PolarBear1017/FoodSheep/statemachine"

	"github.com/gin-gonic/gin"
)

// GetMerchantOrders returns the merchant's orders with a status summary
func GetMerchantOrders(c *gin.Context) {
	merchantID := middleware.Caller(c).UserID

	orders, summary, err := orderService().ListForMerchant(merchantID, models.OrderStatus(c.Query("status")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}

// MerchantOrderAction performs accept, reject or complete on one of
// the merchant's orders.
func MerchantOrderAction(c *gin.Context) {
	merchantID := middleware.Caller(c).UserID

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}
	action, aerr := statemachine.ParseAction(c.Param("action"))
	if aerr != nil {
		handleError(c, aerr)
		return
	}
	if action == statemachine.ActionCancel {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the customer can cancel an order"})
		return
	}

	order, err := orderService().Transition(uint(orderID), merchantID, models.RoleMerchant, action, "By merchant")
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Order " + string(order.Status),
		"order_id": order.ID,
		"status":   order.Status,
	})
}

// GetMerchantReviews lists the merchant's reviews with the average
func GetMerchantReviews(c *gin.Context) {
	merchantID := middleware.Caller(c).UserID

	reviews, err := reviewService().ListForMerchant(merchantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reviews"})
		return
	}
	avg, count, err := reviewService().AverageRating(merchantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute rating"})
		return
	}

	resp := gin.H{"count": count, "reviews": reviews}
	if count > 0 {
		resp["avg_rating"] = avg
	} else {
		resp["avg_rating"] = nil
	}
	c.JSON(http.StatusOK, resp)
}
