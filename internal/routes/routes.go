// Package routes defines the API routing configuration.
// It wires repositories, services, and handlers, and applies middleware.
package routes

import (
	"time"

	"stablemart/internal/config"
	"stablemart/internal/handlers"
	"stablemart/internal/middleware"
	"stablemart/internal/repositories"
	"stablemart/internal/services/ledger"
	"stablemart/internal/services/payment"
	"stablemart/internal/services/siwe"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	ledgerRepo := repositories.NewLedgerRepository(db)

	// SIWE authenticator. The signature bypass address is a test fixture
	// and is refused outright in production.
	bypass := ""
	if !config.IsProduction() {
		bypass = config.GetEnv("SIWE_DEV_BYPASS_ADDRESS", "")
	}
	tracker := siwe.NewAttemptTracker(
		config.GetIntEnv("SIWE_MAX_ATTEMPTS", 5),
		config.GetDurationEnv("SIWE_ATTEMPT_WINDOW", time.Minute),
		config.GetDurationEnv("SIWE_NONCE_TTL", 5*time.Minute),
		nil,
	)
	authService := siwe.NewService(userRepo, tracker, siwe.Config{
		Domain:        config.GetEnv("SIWE_DOMAIN", "stablemart.example"),
		Statement:     config.GetEnv("SIWE_STATEMENT", "Sign in to Stablemart"),
		BypassAddress: bypass,
	})

	// Ledger and payments
	ledgerService := ledger.NewService(ledgerRepo, userRepo, repositories.CacheService)
	provider := payment.NewStripeProvider(
		config.GetEnv("STRIPE_SECRET_KEY", ""),
		config.GetEnv("PAYMENT_SUCCESS_URL", "http://localhost:5173/wallet?paid=1"),
		config.GetEnv("PAYMENT_CANCEL_URL", "http://localhost:5173/wallet"),
	)
	paymentService := payment.NewService(provider, ledgerService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	walletHandler := handlers.NewWalletHandler(ledgerService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, config.GetEnv("WEBHOOK_SECRET", ""))
	userHandler := handlers.NewUserHandler(userRepo)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Public
	api.Post("/auth/login", authHandler.Login)
	api.Get("/auth/nonce", authHandler.Nonce)
	api.Post("/payments/webhook", paymentHandler.Webhook)

	// Authenticated
	api.Get("/me", authMiddleware.Handler, userHandler.Me)
	api.Post("/mint", authMiddleware.Handler, walletHandler.Mint)
	api.Get("/wallet/balance", authMiddleware.Handler, walletHandler.Balance)
	api.Get("/wallet/transactions", authMiddleware.Handler, walletHandler.Transactions)
	api.Post("/payments/initiate", authMiddleware.Handler, paymentHandler.Initiate)
	api.Post("/seller/apply", authMiddleware.Handler, userHandler.ApplySeller)

	// Admin
	admin := api.Group("/admin", authMiddleware.Handler, middleware.RequireAdmin)
	admin.Get("/users", userHandler.ListUsers)
	admin.Post("/siwe/reset-rate-limit", authHandler.ResetRateLimit)
}
