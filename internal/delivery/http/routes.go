package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/souqlens/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API routes
	api := router.Group("/api")
	{
		api.POST("/process", handler.ProcessProducts)

		comparison := api.Group("/comparison")
		{
			comparison.GET("/product", handler.CompareProduct)
			comparison.GET("/trends", handler.PriceTrends)
		}
	}

	return router
}
