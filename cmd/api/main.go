package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	httpapi "github.com/bigkboy4lyf/swiftship-express/internal/api/http"
	"github.com/bigkboy4lyf/swiftship-express/internal/application"
	"github.com/bigkboy4lyf/swiftship-express/internal/domain"
	"github.com/bigkboy4lyf/swiftship-express/internal/infrastructure/mongodb"
	"github.com/bigkboy4lyf/swiftship-express/internal/metrics"
)

func main() {
	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting SwiftShip Quote Service")

	// Get configuration from environment
	mongoURI := getEnv("MONGODB_URI", "mongodb://localhost:27017")
	dbName := getEnv("MONGODB_DATABASE", "swiftship_db")
	serverAddr := getEnv("SERVER_ADDR", ":5000")

	// Connect to MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(mongoURI).
		SetMinPoolSize(10).
		SetMaxPoolSize(100)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("Failed to disconnect from MongoDB", "error", err)
		}
	}()

	// Ping MongoDB
	if err := client.Ping(ctx, nil); err != nil {
		logger.Error("Failed to ping MongoDB", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to MongoDB", "database", dbName)

	// Get database
	db := client.Database(dbName)

	// Create repositories
	quoteRepo := mongodb.NewQuoteRepository(db)
	shipmentRepo := mongodb.NewShipmentRepository(db)

	// Domain reference data
	rates := domain.DefaultRateTable()
	catalog := domain.DefaultServiceCatalog()

	// Create application services
	quoteService := application.NewQuoteService(quoteRepo, shipmentRepo, rates, catalog, logger)
	trackingService := application.NewTrackingService(shipmentRepo, logger)

	// Metrics
	m := metrics.New("quote-service")

	// Create HTTP handlers
	handlers := httpapi.NewHandlers(quoteService, trackingService, m)

	// Setup Gin router
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(cors.Default())
	router.Use(m.GinMiddleware())

	// Setup routes
	httpapi.SetupRoutes(router, handlers)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	// Start server
	logger.Info("Starting HTTP server", "addr", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		logger.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// requestLogger returns a Gin middleware for logging requests
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		logger.Info("HTTP request",
			"method", c.Request.Method,
			"path", path,
			"query", query,
			"status", status,
			"latency", latency.String(),
			"clientIP", c.ClientIP(),
		)
	}
}
