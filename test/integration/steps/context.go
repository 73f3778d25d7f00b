//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ledgerkit/backend/internal/application/usecase/auth"
	"github.com/ledgerkit/backend/internal/application/usecase/insight"
	"github.com/ledgerkit/backend/internal/infra/server/router"
	"github.com/ledgerkit/backend/internal/integration/adapters"
	"github.com/ledgerkit/backend/internal/integration/entrypoint/controller"
	"github.com/ledgerkit/backend/internal/integration/entrypoint/middleware"
	"github.com/ledgerkit/backend/internal/integration/persistence"
	"github.com/ledgerkit/backend/internal/integration/persistence/model"
	"github.com/ledgerkit/backend/test/integration/mock"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// Infrastructure
	db    *mock.Db
	redis *miniredis.Miniredis
	clock *mock.Time

	// HTTP
	server       *httptest.Server
	engine       *gin.Engine
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Auth
	accessToken  string
	refreshToken string
	userID       string

	// Seeded scope IDs, keyed by name used in the feature files
	businessIDs map[string]string
	projectIDs  map[string]string
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// testModels lists every model the integration database migrates.
func testModels() []any {
	return []any{
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
	}
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc := &TestContext{
			requestHeaders: make(map[string]string),
			businessIDs:    make(map[string]string),
			projectIDs:     make(map[string]string),
			clock:          mock.NewTime(),
		}

		tc.db = mock.NewDb(testModels())
		if err := tc.db.Reset(); err != nil {
			return ctx, err
		}

		mr, err := miniredis.Run()
		if err != nil {
			return ctx, err
		}
		tc.redis = mr
		redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

		dbConn := tc.db.DbConn
		userRepo := persistence.NewUserRepository(dbConn)
		tokenRepo := persistence.NewTokenRepository(dbConn)
		scopeResolver := persistence.NewScopeRepository(dbConn)
		insightRepo := persistence.NewInsightRepository(dbConn)

		passwordService := adapters.NewPasswordService()
		tokenService := adapters.NewTokenService("integration-test-secret", tokenRepo)

		authController := controller.NewAuthController(
			auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService),
			auth.NewLoginUserUseCase(userRepo, passwordService, tokenService),
			auth.NewRefreshTokenUseCase(tokenService),
			auth.NewLogoutUserUseCase(tokenService),
		)
		insightController := controller.NewInsightController(
			insight.NewCashflowProjectionUseCase(insightRepo, scopeResolver, tc.clock),
			insight.NewPipelineSummaryUseCase(insightRepo, scopeResolver, tc.clock),
			insight.NewProjectPerformanceUseCase(insightRepo, scopeResolver, tc.clock),
			insight.NewTopClientsUseCase(insightRepo, scopeResolver, tc.clock),
			insight.NewTopServicesUseCase(insightRepo, scopeResolver, tc.clock),
			insight.NewProjectWorkloadUseCase(insightRepo, scopeResolver, tc.clock),
		)
		healthController := controller.NewHealthController(func() bool { return true })

		loginRateLimiter := middleware.NewRateLimiter(redisClient, 100, time.Minute)
		insightRateLimiter := middleware.NewRateLimiter(redisClient, 100, time.Minute)
		authMiddleware := middleware.NewAuthMiddleware(tokenService)

		r := router.NewRouter(
			healthController,
			authController,
			insightController,
			loginRateLimiter,
			insightRateLimiter,
			authMiddleware,
		)
		tc.engine = r.Setup("test")
		tc.server = httptest.NewServer(tc.engine)

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil {
			if tc.server != nil {
				tc.server.Close()
			}
			if tc.redis != nil {
				tc.redis.Close()
			}
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerSeedSteps(ctx)
	registerResponseSteps(ctx)
}
