package http

import (
	"github.com/gin-gonic/gin"
	"github.com/suppscan/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/scan", handler.Scan)

		products := v1.Group("/products")
		{
			products.GET("/:barcode", handler.GetProductByBarcode)
			products.POST("/search", handler.SearchProduct)
		}

		evaluations := v1.Group("/evaluations")
		{
			evaluations.POST("", handler.EvaluateProduct)
			evaluations.GET("/recent", handler.RecentEvaluations)
		}
	}

	return router
}
