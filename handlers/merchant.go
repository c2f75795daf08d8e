package handlers

import (
	"net/http"
	"strconv"

	"github.com/PolarBear1017/FoodSheep/config"
	"github.com/PolarBear1017/FoodSheep/middleware"
	"github.com/PolarBear1017/FoodSheep/models"

	"github.com/gin-gonic/gin"
)

// ── Menu Management ─────────────────────────────────────────────────────────

type FoodRequest struct {
	Name        string `json:"name" binding:"required"`
	Price       int64  `json:"price" binding:"required,gt=0"`
	Description string `json:"description" binding:"required"`
	Image       string `json:"image"`
}

// GetMyMenu lists the merchant's own foods
func GetMyMenu(c *gin.Context) {
	merchantID := middleware.Caller(c).UserID
	var foods []models.Food
	config.DB.Where("merchant_id = ?", merchantID).Find(&foods)
	c.JSON(http.StatusOK, gin.H{"count": len(foods), "foods": foods})
}

// AddFood publishes a new food on the merchant's menu
func AddFood(c *gin.Context) {
	merchantID := middleware.Caller(c).UserID

	var req FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food := models.Food{
		MerchantID:  merchantID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
	}
	if err := config.DB.Create(&food).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add food"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Food published", "food": food})
}

// UpdateFood edits a food (only by its owning merchant)
func UpdateFood(c *gin.Context) {
	merchantID := middleware.Caller(c).UserID

	foodID, err := strconv.ParseUint(c.Param("foodId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid food id"})
		return
	}
	var food models.Food
	if err := config.DB.First(&food, uint(foodID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
		return
	}
	if food.MerchantID != merchantID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this food"})
		return
	}

	var req FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	update := map[string]interface{}{
		"name":        req.Name,
		"price":       req.Price,
		"description": req.Description,
		"image":       req.Image,
	}
	if err := config.DB.Model(&food).Updates(update).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update food"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food updated", "food": food})
}

// DeleteFood removes a food from the merchant's menu. Historical
// orders keep the food ID in their snapshot and are unaffected.
func DeleteFood(c *gin.Context) {
	merchantID := middleware.Caller(c).UserID

	foodID, err := strconv.ParseUint(c.Param("foodId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid food id"})
		return
	}
	var food models.Food
	if err := config.DB.First(&food, uint(foodID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Food not found"})
		return
	}
	if food.MerchantID != merchantID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this food"})
		return
	}
	if err := config.DB.Delete(&food).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete food"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food deleted"})
}
