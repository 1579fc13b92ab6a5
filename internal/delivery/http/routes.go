package http

import (
	"github.com/gin-gonic/gin"
	"github.com/mealmatch/backend/config"
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
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(NewIPRateLimiter(cfg.RateLimit.PerIP, cfg.RateLimit.Burst)))
	{
		profiles := v1.Group("/profiles")
		{
			profiles.GET("", handler.ListProfiles)
			profiles.POST("", handler.CreateProfile)
		}

		v1.GET("/foods", handler.ListFoods)
		v1.POST("/meals/match", handler.MatchMeals)

		plans := v1.Group("/plans")
		{
			plans.GET("", handler.ListPlans)
			plans.POST("", handler.GeneratePlan)
		}

		v1.GET("/report", handler.Report)
	}

	return router
}
