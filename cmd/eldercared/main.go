package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eldercare-backend/config"
	"eldercare-backend/internal/api"
	"eldercare-backend/internal/chat"
	"eldercare-backend/internal/clock"
	"eldercare-backend/internal/db"
	"eldercare-backend/internal/meds"
	"eldercare-backend/internal/notification"
	"eldercare-backend/internal/store"
	"eldercare-backend/internal/sweep"

	"github.com/SherClockHolmes/webpush-go"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "eldercare-backend ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	// Check for VAPID keys
	if cfg.Push.PublicKey == "" || cfg.Push.PrivateKey == "" {
		logger.Fatalf("VAPID keys must be configured. Please generate them and add them to your config file.")
	}

	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Business timezone clock; everything schedule-related runs on it
	clk := clock.New(cfg.Server.Timezone)

	// Create the store layer instance
	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	// Medication schedule service
	medsSvc := meds.NewService(appStore, clk)

	// Start the notification worker pool
	pool := notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, &webpushOptions)
	pool.Start(ctx)
	logger.Printf("notification worker pool started with %d workers", cfg.WorkerPool.Size)

	// Start the missed-dose sweep
	var sweepSvc *sweep.Service
	if cfg.Sweep.Enabled {
		sweepSvc = sweep.NewService(cfg.Sweep, appStore, clk, pool, medsSvc)
		if err := sweepSvc.Start(); err != nil {
			logger.Fatalf("failed to start sweep: %v", err)
		}
		logger.Printf("sweep scheduled with %q", cfg.Sweep.Schedule)
	}

	// Chat hub
	hub := chat.NewHub()

	// Initialize router
	router := api.NewRouter(cfg, appStore, medsSvc, hub, clk, &webpushOptions)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	if sweepSvc != nil {
		sweepSvc.Stop()
	}

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
