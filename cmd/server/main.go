package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"cashcard_system/internal/api"        // Custom package for API handlers
	"cashcard_system/internal/cache"      // Custom package for the Redis read cache
	"cashcard_system/internal/config"     // Custom package for configuration
	"cashcard_system/internal/identity"   // Custom package for provisioned users
	"cashcard_system/internal/middleware" // Custom package for middleware
	"cashcard_system/internal/store"      // Custom package for the cash card store

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Pick the cash card store backend
	var cards store.CashCardStore
	switch cfg.StoreBackend {
	case "memory":
		cards = store.NewMemoryStore() // In-process store, nothing survives a restart
	default:
		db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
		if err != nil {
			logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
		}
		cards = store.NewGormStore(db)
	}

	// Setup the optional Redis read cache
	var rdb *cache.Cache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := client.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		rdb = cache.New(client)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Provisioned identities checked by the route guard
	users := identity.NewStore(identity.DefaultUsers()...)

	// Cash card routes, guarded by Basic auth plus the access policy
	cardGroup := r.Group("/cashcards")
	cardGroup.Use(middleware.BasicAuthMiddleware(users, middleware.DefaultPolicy()))
	cardGroup.POST("", api.CreateCashCardHandler(cards, rdb))       // Create endpoint
	cardGroup.GET("", api.ListCashCardsHandler(cards, rdb))         // List endpoint
	cardGroup.GET("/:id", api.GetCashCardHandler(cards, rdb))       // Get endpoint
	cardGroup.PUT("/:id", api.UpdateCashCardHandler(cards, rdb))    // Update endpoint
	cardGroup.DELETE("/:id", api.DeleteCashCardHandler(cards, rdb)) // Delete endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
