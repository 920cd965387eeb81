// Package routes defines the HTTP routes for the stub answering service.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/pfcsearch/widget-runtime/internal/api/handlers"
	"github.com/pfcsearch/widget-runtime/internal/api/middleware"
)

// Config holds the dependencies for setting up routes.
type Config struct {
	HealthHandler *handlers.HealthHandler
	QueryHandler  *handlers.QueryHandler
}

// Setup configures all routes on the Gin engine.
func Setup(r *gin.Engine, cfg *Config) {
	// Health check routes
	r.GET("/health", cfg.HealthHandler.Health)
	r.GET("/ready", cfg.HealthHandler.Ready)
	r.GET("/live", cfg.HealthHandler.Live)

	// Widget contract routes
	api := r.Group("/api")
	{
		widget := api.Group("/widget")
		{
			widget.POST("/query", cfg.QueryHandler.Query)
		}
	}
}

// SetupWithMiddleware sets up routes with common middleware.
func SetupWithMiddleware(r *gin.Engine, cfg *Config, loggingMw *middleware.LoggingMiddleware, errorMw *middleware.ErrorMiddleware) {
	r.Use(loggingMw.Logger())
	r.Use(errorMw.Recovery())
	r.Use(middleware.NewCORSMiddleware())
	r.Use(gin.Recovery())

	Setup(r, cfg)
}
