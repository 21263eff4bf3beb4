package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hotel-concierge/internal/api"
	"hotel-concierge/internal/api/handlers"
	"hotel-concierge/internal/repository"
	"hotel-concierge/internal/service"
	"hotel-concierge/pkg/auth"
	"hotel-concierge/pkg/config"
	"hotel-concierge/pkg/logger"
	"hotel-concierge/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting hotel concierge service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Bootstrap(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to bootstrap schema", zap.Error(err))
	}

	// Knowledge base is loaded once and never mutated afterwards
	knowledge, err := service.LoadKnowledgeBase(cfg.Knowledge.Path, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to load knowledge base", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	bookingRepo := repository.NewBookingRepository(db, appLogger)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.Session.SecretKey, cfg.Session.Expiration)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, &cfg.Admin, appLogger)
	if err := authService.SeedAdmin(ctx); err != nil {
		appLogger.Fatal("Failed to seed admin account", zap.Error(err))
	}

	translateService := service.NewTranslateService(&cfg.Translate, appLogger)
	llmService := service.NewLLMService(&cfg.OpenAI, knowledge, appLogger)
	visionService := service.NewVisionService(llmService, appLogger)
	bookingService := service.NewBookingService(bookingRepo, appLogger)

	chatService := service.NewChatService(translateService, visionService, llmService, bookingService, appLogger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, &cfg.Session, appLogger)
	chatHandler := handlers.NewChatHandler(chatService, cfg.Uploads.UploadDir, cfg.Uploads.BookingDir, appLogger)
	bookingHandler := handlers.NewBookingHandler(bookingRepo, appLogger)

	// Setup router
	app := api.SetupRouter(authHandler, chatHandler, bookingHandler, jwtManager, &cfg.Session, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
