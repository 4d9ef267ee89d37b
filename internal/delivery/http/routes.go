package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nutrimcp/backend/config"
)

// SetupRouter creates and configures the Gin router. mcpHandler, when set,
// serves the MCP streamable HTTP transport at /mcp.
func SetupRouter(cfg *config.Config, handler *Handler, mcpHandler http.Handler, logger zerolog.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/recipes/nutrition", handler.CalculateRecipeNutrition)
		v1.GET("/foods/:id", handler.GetFood)
	}

	if mcpHandler != nil {
		router.Any("/mcp", gin.WrapH(mcpHandler))
	}

	return router
}
