package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"helpdesk/internal/agent"
	"helpdesk/internal/config"
	"helpdesk/internal/db"
	"helpdesk/internal/jobs"
	"helpdesk/internal/metrics"
	"helpdesk/internal/notify"
	"helpdesk/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	if cfg.SeedDev {
		if err := database.SeedDevKnowledge(ctx); err != nil {
			log.Fatalf("Failed to seed knowledge base: %v", err)
		}
		log.Println("Seeded development knowledge entries")
	}

	// Business-info table is loaded once and never mutated
	topics, err := config.LoadBusinessInfo()
	if err != nil {
		log.Fatalf("Failed to load business info: %v", err)
	}

	metrics.Init(database)

	notifier := notify.NewNotifier(cfg)
	respondent := agent.New(database, cfg, topics, notifier)

	// Start the timeout sweeper
	sweeper := jobs.NewTimeoutSweeper(database, cfg.SweepInterval)
	go sweeper.Start(ctx)

	// Initialize server and routes
	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, database, respondent); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()
	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
