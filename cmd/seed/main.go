package main

import (
	"context"
	"log"

	"hotel-concierge/internal/repository"
	"hotel-concierge/internal/service"
	"hotel-concierge/pkg/auth"
	"hotel-concierge/pkg/config"
	"hotel-concierge/pkg/logger"
	"hotel-concierge/pkg/postgres"

	"go.uber.org/zap"
)

// One-shot setup: create the schema, seed the default admin account and
// verify the knowledge base file parses. Safe to re-run.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Bootstrap(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to bootstrap schema", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db, appLogger)
	jwtManager := auth.NewJWTManager(cfg.Session.SecretKey, cfg.Session.Expiration)
	authService := service.NewAuthService(userRepo, jwtManager, &cfg.Admin, appLogger)

	if err := authService.SeedAdmin(ctx); err != nil {
		appLogger.Fatal("Failed to seed admin account", zap.Error(err))
	}

	if _, err := service.LoadKnowledgeBase(cfg.Knowledge.Path, appLogger); err != nil {
		appLogger.Fatal("Knowledge base check failed", zap.Error(err))
	}

	appLogger.Info("Seeding completed")
}
