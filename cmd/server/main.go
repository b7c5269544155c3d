package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"yogastudio/internal/config"
	"yogastudio/internal/database"
	"yogastudio/internal/events"
	"yogastudio/internal/handlers"
	"yogastudio/internal/security"
	"yogastudio/internal/server"
	"yogastudio/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	// Load configuration
	cfg := config.Load()
	startup := handlers.NewStartupStatus()

	// Listen before initializing so /api/health can report progress
	addr := ":" + cfg.ServerPort
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      startup.Gate(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Initialize database with config (supports sqlite, postgres, mysql)
	startup.SetCurrentStep(handlers.StepDatabase)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	startup.CompleteStep(handlers.StepDatabase)

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	startup.SetCurrentStep(handlers.StepMigrations)
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	startup.CompleteStep(handlers.StepMigrations)

	log.Println("Migrations completed successfully")

	startup.SetCurrentStep(handlers.StepEvents)
	publisher, err := events.New(cfg.NATSURL)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer publisher.Close()
	startup.CompleteStep(handlers.StepEvents)

	emailService, err := service.NewEmailService(context.Background(), cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	limiter := security.NewRateLimiter(cfg.RateLimit, time.Minute)
	defer limiter.Stop()

	srv := server.New(db, server.Options{
		Tokens:    security.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiration),
		Mailer:    emailService,
		Publisher: publisher,
		Limiter:   limiter,
		Startup:   startup,
	})

	// Seed default teachers and the admin account
	startup.SetCurrentStep(handlers.StepSeed)
	if err := srv.Seed.Seed(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	startup.CompleteStep(handlers.StepSeed)

	startup.SetHandler(srv.Handler())
	startup.MarkReady()
	log.Println("Server ready")

	// Wait for interrupt signal, then shut down gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}
