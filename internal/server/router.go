// Package server assembles the HTTP router.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"

	_ "appledger/internal/docs" // swagger docs
	"appledger/internal/handlers"
	"appledger/internal/middleware"
	"appledger/internal/services"
)

// Services are the business services the router exposes.
type Services struct {
	Users    services.UserServicer
	Ledger   services.LedgerServicer
	Payments services.PaymentServicer
	Webhooks services.WebhookServicer
}

// Options configure the router.
type Options struct {
	CORSAllowedOrigins []string
	// WebhookAPIKey is the SePay key; the webhook answers 503 while it is empty.
	WebhookAPIKey string
	// Limiter throttles the auth routes per client IP. Nil disables it.
	Limiter *limiter.Limiter
	// WebhookLimiter throttles the payment webhook separately, since the
	// provider delivers from a few shared IPs. Nil disables it.
	WebhookLimiter *limiter.Limiter
}

// NewRouter wires handlers, middleware and routes.
func NewRouter(svc Services, opts Options) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Users)
	ledgerHandler := handlers.NewLedgerHandler(svc.Ledger)
	paymentHandler := handlers.NewPaymentHandler(svc.Payments)
	webhookHandler := handlers.NewWebhookHandler(svc.Webhooks)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors.New(corsConfig(opts.CORSAllowedOrigins)))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	throttle := throttleWith(opts.Limiter)

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth", throttle)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Payment provider callbacks
	webhooks := v1.Group("/webhooks", throttleWith(opts.WebhookLimiter), middleware.WebhookAuthMiddleware(opts.WebhookAPIKey))
	webhooks.POST("/sepay", webhookHandler.SePay)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.POST("/payments/qr", paymentHandler.CreateQRPayment)

	ledger := protected.Group("/ledger")
	ledger.POST("", ledgerHandler.CreateEntry)
	ledger.GET("", ledgerHandler.GetEntries)
	ledger.GET("/statistics", ledgerHandler.GetStatistics)
	ledger.GET("/:id", ledgerHandler.GetEntry)
	ledger.PUT("/:id", ledgerHandler.UpdateEntry)
	ledger.POST("/:id/cancel", ledgerHandler.CancelEntry)
	ledger.POST("/:id/complete", middleware.RequireAdmin(), ledgerHandler.CompleteEntry)
	ledger.DELETE("/:id", middleware.RequireAdmin(), ledgerHandler.DeleteEntry)

	return router
}

func throttleWith(l *limiter.Limiter) gin.HandlerFunc {
	if l == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(l)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
