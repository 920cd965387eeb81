// Package main is the entry point for widgetd, the development daemon that
// serves the answering-service contract the embeddable widget speaks.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pfcsearch/widget-runtime/internal/api/handlers"
	"github.com/pfcsearch/widget-runtime/internal/api/middleware"
	"github.com/pfcsearch/widget-runtime/internal/api/routes"
	"github.com/pfcsearch/widget-runtime/internal/config"
	"github.com/pfcsearch/widget-runtime/internal/core/storage"
	filestore "github.com/pfcsearch/widget-runtime/internal/infrastructure/storage/file"
	memorystore "github.com/pfcsearch/widget-runtime/internal/infrastructure/storage/memory"
	redisstore "github.com/pfcsearch/widget-runtime/internal/infrastructure/storage/redis"
	"github.com/pfcsearch/widget-runtime/internal/pkg/logging"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	// Initialize the session/history store using factory pattern
	store, err := createStore(cfg)
	if err != nil {
		log.Fatalf("failed to initialize store: %v", err)
	}
	defer store.Close()

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Setup router
	router := gin.New()
	routes.SetupWithMiddleware(router, &routes.Config{
		HealthHandler: handlers.NewHealthHandler(store),
		QueryHandler:  handlers.NewQueryHandler(store),
	}, middleware.NewLoggingMiddleware(), middleware.NewErrorMiddleware())

	// Create HTTP server
	srv := &http.Server{
		Addr:    cfg.Server.Address(),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// createStore creates a store based on the configuration.
func createStore(cfg *config.Config) (storage.Store, error) {
	storeType := storage.Type(cfg.Storage.Type)

	switch storeType {
	case storage.TypeFile:
		return filestore.NewStore(filestore.Config{Dir: cfg.Storage.Dir})
	case storage.TypeRedis:
		return redisstore.NewStore(redisstore.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	case storage.TypeMemory:
		return memorystore.NewStore(), nil
	default:
		log.Fatalf("unsupported storage type: %s", cfg.Storage.Type)
		return nil, nil
	}
}
