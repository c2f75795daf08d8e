package handlers

import (
	"github.com/PolarBear1017/FoodSheep/apperrors"
	"github.com/PolarBear1017/FoodSheep/cart"
	"github.com/PolarBear1017/FoodSheep/config"
	"github.com/PolarBear1017/FoodSheep/services"

	"github.com/gin-gonic/gin"
)

// Carts holds every session cart for the process lifetime.
var Carts = cart.NewStore()

func orderService() *services.OrderService {
	return services.NewOrderService(config.DB, Carts)
}

func reviewService() *services.ReviewService {
	return services.NewReviewService(config.DB)
}

// handleError translates a taxonomy error into the JSON error shape
// used across the API.
func handleError(c *gin.Context, err error) {
	c.JSON(apperrors.StatusCode(err), gin.H{"error": err.Error()})
}
