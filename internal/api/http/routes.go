package http

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all HTTP routes for the SwiftShip API
func SetupRoutes(router *gin.Engine, handlers *Handlers) {
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.ReadyCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		quotes := v1.Group("/quotes")
		{
			quotes.POST("/calculate", handlers.CalculateQuote)
			quotes.GET("", handlers.ListQuotes)
			quotes.GET("/:quoteId", handlers.GetQuote)
			quotes.POST("/:quoteId/convert", handlers.ConvertQuote)
		}

		shipments := v1.Group("/shipments")
		{
			shipments.GET("/track/:trackingNumber", handlers.TrackShipment)
			shipments.POST("/:trackingNumber/events", handlers.AddTrackingEvent)
		}
	}
}
