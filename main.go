package main

import (
	"log"
	"net/http"
	"os"

	"github.com/PolarBear1017/FoodSheep/config"
	"github.com/PolarBear1017/FoodSheep/middleware"
	"github.com/PolarBear1017/FoodSheep/routes"

	"github.com/gin-gonic/gin"
)

const serviceName = "FoodSheep Ordering API"

func main() {
	config.InitDB()

	r := newRouter()

	addr := ":" + envOr("PORT", "8080")
	log.Printf("%s listening on %s", serviceName, addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// newRouter assembles the engine: request logging, panic recovery and
// CORS in front, then the API routes. Kept separate from main so tests
// can serve requests against the exact production stack.
func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
	})

	routes.SetupRoutes(r)
	return r
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
