// Package main is the entry point for the LedgerKit API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/ledgerkit/backend/config"
	"github.com/ledgerkit/backend/internal/application/usecase/auth"
	"github.com/ledgerkit/backend/internal/application/usecase/insight"
	"github.com/ledgerkit/backend/internal/infra/db"
	"github.com/ledgerkit/backend/internal/infra/server/router"
	"github.com/ledgerkit/backend/internal/integration/adapters"
	"github.com/ledgerkit/backend/internal/integration/entrypoint/controller"
	"github.com/ledgerkit/backend/internal/integration/entrypoint/middleware"
	"github.com/ledgerkit/backend/internal/integration/persistence"
	"github.com/ledgerkit/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting LedgerKit API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	var database *db.Database
	var dbHealthChecker func() bool

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Warn("Database connection failed, running without database",
			"error", err,
		)
		database = nil
		dbHealthChecker = func() bool { return false }
	} else {
		// Run database migrations
		if err := database.AutoMigrate(
			&model.UserModel{},
			&model.RefreshTokenModel{},
			&model.BusinessModel{},
			&model.ClientModel{},
			&model.AccountModel{},
			&model.TransactionModel{},
			&model.QuoteModel{},
			&model.ServiceItemModel{},
			&model.InvoiceModel{},
			&model.InvoicePaymentModel{},
			&model.InvoiceLineItemModel{},
			&model.ProjectModel{},
			&model.ProjectTaskModel{},
		); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully")

		dbHealthChecker = database.HealthCheck
		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()
	}

	// Initialize Redis for rate limiting
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("Failed to close Redis connection", "error", err)
		}
	}()

	// Create health controller with database health checker
	healthController := controller.NewHealthController(dbHealthChecker)

	// Create controllers and middleware (only if database is available)
	var authController *controller.AuthController
	var insightController *controller.InsightController
	var loginRateLimiter *middleware.RateLimiter
	var insightRateLimiter *middleware.RateLimiter
	var authMiddleware *middleware.AuthMiddleware

	if database != nil {
		// Create repositories
		userRepo := persistence.NewUserRepository(database.DB())
		tokenRepo := persistence.NewTokenRepository(database.DB())
		scopeResolver := persistence.NewScopeRepository(database.DB())
		insightRepo := persistence.NewInsightRepository(database.DB())

		// Create adapters/services
		passwordService := adapters.NewPasswordService()
		tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
		clock := insight.NewSystemClock()

		// Create auth use cases
		registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
		loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
		refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
		logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

		// Create insight use cases
		cashflowProjectionUseCase := insight.NewCashflowProjectionUseCase(insightRepo, scopeResolver, clock)
		pipelineSummaryUseCase := insight.NewPipelineSummaryUseCase(insightRepo, scopeResolver, clock)
		projectPerformanceUseCase := insight.NewProjectPerformanceUseCase(insightRepo, scopeResolver, clock)
		topClientsUseCase := insight.NewTopClientsUseCase(insightRepo, scopeResolver, clock)
		topServicesUseCase := insight.NewTopServicesUseCase(insightRepo, scopeResolver, clock)
		projectWorkloadUseCase := insight.NewProjectWorkloadUseCase(insightRepo, scopeResolver, clock)

		// Create controllers
		authController = controller.NewAuthController(
			registerUseCase,
			loginUseCase,
			refreshTokenUseCase,
			logoutUseCase,
		)
		insightController = controller.NewInsightController(
			cashflowProjectionUseCase,
			pipelineSummaryUseCase,
			projectPerformanceUseCase,
			topClientsUseCase,
			topServicesUseCase,
			projectWorkloadUseCase,
		)

		// Create middleware
		loginRateLimiter = middleware.NewRateLimiter(redisClient, cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow)
		insightRateLimiter = middleware.NewRateLimiter(redisClient, cfg.RateLimit.InsightLimit, cfg.RateLimit.InsightWindow)
		authMiddleware = middleware.NewAuthMiddleware(tokenService)

		slog.Info("Auth and Insight systems initialized successfully")
	} else {
		slog.Warn("Auth and Insight systems not initialized due to missing database connection")
	}

	// Setup router
	r := router.NewRouter(
		healthController,
		authController,
		insightController,
		loginRateLimiter,
		insightRateLimiter,
		authMiddleware,
	)
	engine := r.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
