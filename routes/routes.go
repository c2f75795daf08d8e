package routes

import (
	"github.com/PolarBear1017/FoodSheep/handlers"
	"github.com/PolarBear1017/FoodSheep/middleware"
	"github.com/PolarBear1017/FoodSheep/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Merchant directory & shop pages (no auth needed)
		public.GET("/merchants", handlers.ListMerchants)
		public.GET("/merchants/:id", handlers.GetMerchantShop)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetLifecycleInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
		auth.PUT("/settings", handlers.UpdateSettings)
		auth.POST("/upgrade", handlers.UpgradeVIP)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.GET("/cart", handlers.GetCart)
		customer.POST("/cart", handlers.AddToCart)
		customer.PUT("/cart/:foodId", handlers.AdjustCartItem)
		customer.DELETE("/cart/:foodId", handlers.RemoveCartItem)
		customer.DELETE("/cart", handlers.ClearCart)

		customer.POST("/checkout", handlers.Checkout)
		customer.POST("/buy", handlers.BuyNow)

		customer.GET("/orders", handlers.GetMyOrders)
		customer.GET("/orders/:id", handlers.GetOrderDetail)
		customer.PUT("/orders/:id/cancel", handlers.CancelOrder)
		customer.POST("/orders/:id/review", handlers.SubmitReview)
	}

	// ── Merchant routes ────────────────────────────────────────────
	merchant := r.Group("/api/merchant")
	merchant.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleMerchant))
	{
		// Menu management
		merchant.GET("/menu", handlers.GetMyMenu)
		merchant.POST("/menu", handlers.AddFood)
		merchant.PUT("/menu/:foodId", handlers.UpdateFood)
		merchant.DELETE("/menu/:foodId", handlers.DeleteFood)

		// Order management
		merchant.GET("/orders", handlers.GetMerchantOrders)
		merchant.PUT("/orders/:id/:action", handlers.MerchantOrderAction)

		// Reviews received
		merchant.GET("/reviews", handlers.GetMerchantReviews)
	}
}
