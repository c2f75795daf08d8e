package handlers

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/PolarBear1017/FoodSheep/config"
	"github.com/PolarBear1017/FoodSheep/models"
	"github.com/PolarBear1017/FoodSheep/statemachine"

	"github.com/gin-gonic/gin"
)

// defaultCoverImage is shown for merchants with no pictured food yet.
const defaultCoverImage = "https://www.shutterstock.com/shutterstock/videos/1093608713/thumb/7.jpg?ip=x480"

type merchantSummary struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Image       string   `json:"image"`
	Rating      *float64 `json:"rating"` // null until the first review
	ReviewCount int64    `json:"review_count"`
}

// ListMerchants returns the merchant directory with computed ratings.
// ?sort=asc|desc orders by rating; otherwise ID order is kept.
func ListMerchants(c *gin.Context) {
	var merchants []models.User
	if err := config.DB.Where("role = ?", models.RoleMerchant).Order("id").Find(&merchants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load merchants"})
		return
	}

	reviews := reviewService()
	list := make([]merchantSummary, 0, len(merchants))
	for _, m := range merchants {
		avg, count, err := reviews.AverageRating(m.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute ratings"})
			return
		}

		image := defaultCoverImage
		var cover models.Food
		if err := config.DB.Where("merchant_id = ? AND image <> ''", m.ID).First(&cover).Error; err == nil {
			image = cover.Image
		}

		s := merchantSummary{
			ID:          m.ID,
			Name:        m.Name,
			Address:     m.Position,
			Image:       image,
			ReviewCount: count,
		}
		if count > 0 {
			rating := avg
			s.Rating = &rating
		}
		list = append(list, s)
	}

	ratingOf := func(s merchantSummary) float64 {
		if s.Rating == nil {
			return 0
		}
		return *s.Rating
	}
	switch c.Query("sort") {
	case "desc":
		sort.SliceStable(list, func(i, j int) bool { return ratingOf(list[i]) > ratingOf(list[j]) })
	case "asc":
		sort.SliceStable(list, func(i, j int) bool { return ratingOf(list[i]) < ratingOf(list[j]) })
	}

	c.JSON(http.StatusOK, gin.H{"count": len(list), "merchants": list})
}

// GetMerchantShop returns one merchant's shop page data: foods,
// reviews and the average rating.
func GetMerchantShop(c *gin.Context) {
	merchantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid merchant id"})
		return
	}
	var merchant models.User
	if err := config.DB.Where("role = ?", models.RoleMerchant).First(&merchant, uint(merchantID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Merchant not found"})
		return
	}

	var foods []models.Food
	config.DB.Where("merchant_id = ?", merchant.ID).Find(&foods)

	reviewList, err := reviewService().ListForMerchant(merchant.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reviews"})
		return
	}
	avg, count, err := reviewService().AverageRating(merchant.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute rating"})
		return
	}

	resp := gin.H{
		"merchant": gin.H{
			"id":      merchant.ID,
			"name":    merchant.Name,
			"address": merchant.Position,
			"contact": merchant.Contact,
		},
		"foods":        foods,
		"reviews":      reviewList,
		"review_count": count,
	}
	if count > 0 {
		resp["avg_rating"] = avg
	} else {
		resp["avg_rating"] = nil
	}
	c.JSON(http.StatusOK, resp)
}

// GetLifecycleInfo exposes the order state machine for documentation
func GetLifecycleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   statemachine.All(),
		"terminal_states": []models.OrderStatus{models.StatusCompleted, models.StatusRejected, models.StatusCancelled},
		"description":     "FoodSheep order lifecycle state machine",
	})
}
