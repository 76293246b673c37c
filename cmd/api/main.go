// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/projektikatalog/jeftinoRS/internal/config"
	"github.com/projektikatalog/jeftinoRS/internal/infrastructure/database/postgres"
	"github.com/projektikatalog/jeftinoRS/internal/infrastructure/database/redis"
	httpserver "github.com/projektikatalog/jeftinoRS/internal/interfaces/http"
	"github.com/projektikatalog/jeftinoRS/internal/interfaces/http/middleware"
	"github.com/projektikatalog/jeftinoRS/internal/pkg/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := middleware.NewLogger(cfg)
	logger.Infof("Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	db, err := postgres.NewConnection(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	if err := postgres.RunMigrations(db); err != nil {
		logger.Fatalf("Database migration failed: %v", err)
	}
	if err := postgres.CreateIndexes(db); err != nil {
		logger.Warnf("Index creation failed: %v", err)
	}
	if cfg.IsDevelopment() {
		passwords := auth.NewPasswordManager(cfg.Security.BcryptCost)
		if err := postgres.SeedInitialData(db, passwords); err != nil {
			logger.Warnf("Seeding failed: %v", err)
		}
	}

	server := httpserver.NewServer(cfg, db, redisClient, logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.Errorf("Forced shutdown: %v", err)
	}
}
