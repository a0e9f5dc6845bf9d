package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"kharcha/internal/api"
	"kharcha/internal/api/handlers"
	"kharcha/internal/repository"
	"kharcha/internal/service"
	"kharcha/pkg/auth"
	"kharcha/pkg/config"
	"kharcha/pkg/logger"
	"kharcha/pkg/postgres"

	"go.uber.org/zap"
)

// @title Kharcha API
// @version 1.0
// @description Personal expense tracker with receipt scanning

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting kharcha service")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.RunMigrations(&cfg.Database, appLogger); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	expenseRepo := repository.NewExpenseRepository(db, appLogger)
	receiptRepo := repository.NewReceiptRepository(db, appLogger)

	// JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	expenseService := service.NewExpenseService(expenseRepo, appLogger)
	ocrService := service.NewOCRService(&cfg.OCR, appLogger)
	scanService := service.NewScanService(receiptRepo, ocrService, cfg.Uploads.Dir, appLogger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	expenseHandler := handlers.NewExpenseHandler(expenseService, appLogger)
	receiptHandler := handlers.NewReceiptHandler(scanService, appLogger)

	app := api.SetupRouter(authHandler, expenseHandler, receiptHandler, jwtManager, cfg.Uploads.Dir, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
