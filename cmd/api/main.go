package main

import (
	"context"
	"fmt"
	"os"

	"appledger/internal/cache"
	"appledger/internal/config"
	"appledger/internal/database"
	"appledger/internal/logger"
	"appledger/internal/middleware"
	"appledger/internal/notify"
	"appledger/internal/qrrender"
	"appledger/internal/server"
	"appledger/internal/services"
	"appledger/internal/validator"
)

// @title           App Ledger API
// @version         1.0
// @description     Ledger for an app development business: income and expense entries shared between the operator and its clients, QR bank transfer requests, and automatic reconciliation from SePay webhooks.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Apikey" followed by a space and the SePay API key.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()
	userService := services.NewUserService(db)

	if appConfig.AdminEmail != "" && appConfig.AdminPassword != "" {
		admin, err := userService.EnsureAdmin(context.Background(), appConfig.AdminEmail, appConfig.AdminPassword)
		if err != nil {
			return fmt.Errorf("failed to bootstrap admin: %w", err)
		}
		log.Infow("admin account ready", "user_id", admin.ID, "email", admin.Email)
	}

	// Optional collaborators: each one degrades to a no-op when unconfigured.
	rdb := database.InitRedis(appConfig)
	if rdb != nil {
		defer rdb.Close()
	}
	paymentCache := cache.NewPaymentCache(rdb, cache.DefaultTTL)

	notifier, err := notify.NewFromConfig(appConfig.TelegramBotToken, appConfig.TelegramChatID)
	if err != nil {
		log.Warnw("telegram notifications disabled", "error", err)
		notifier = notify.Nop{}
	}

	renderer := qrrender.NewRenderer(qrrender.BankAccount{
		BIN:           appConfig.BankBIN,
		BankCode:      appConfig.BankCode,
		AccountNumber: appConfig.BankAccountNumber,
		AccountName:   appConfig.BankAccountName,
	})
	if !appConfig.HasBankAccount() {
		log.Warn("bank account not configured, payment requests will not include a QR image")
	}

	auditService := services.NewAuditService(db)
	ledgerService := services.NewLedgerService(db, auditService)
	paymentService := services.NewPaymentService(db, renderer, auditService)
	webhookService := services.NewWebhookService(db, auditService, paymentCache, notifier, appConfig.PaymentAmountTolerance)

	validator.Register()

	rateLimiter, err := middleware.NewLimiter(appConfig.RateLimit)
	if err != nil {
		return fmt.Errorf("failed to create rate limiter: %w", err)
	}
	webhookLimiter, err := middleware.NewLimiter(appConfig.WebhookRateLimit)
	if err != nil {
		return fmt.Errorf("failed to create webhook rate limiter: %w", err)
	}

	router := server.NewRouter(server.Services{
		Users:    userService,
		Ledger:   ledgerService,
		Payments: paymentService,
		Webhooks: webhookService,
	}, server.Options{
		CORSAllowedOrigins: appConfig.CORSAllowedOrigins,
		WebhookAPIKey:      appConfig.SePayAPIKey,
		Limiter:            rateLimiter,
		WebhookLimiter:     webhookLimiter,
	})

	log.Infof("Starting App Ledger server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
