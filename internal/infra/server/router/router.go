// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ledgerkit/backend/internal/integration/entrypoint/controller"
	"github.com/ledgerkit/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine             *gin.Engine
	healthController   *controller.HealthController
	authController     *controller.AuthController
	insightController  *controller.InsightController
	loginRateLimiter   *middleware.RateLimiter
	insightRateLimiter *middleware.RateLimiter
	authMiddleware     *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	insightController *controller.InsightController,
	loginRateLimiter *middleware.RateLimiter,
	insightRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:   healthController,
		authController:     authController,
		insightController:  insightController,
		loginRateLimiter:   loginRateLimiter,
		insightRateLimiter: insightRateLimiter,
		authMiddleware:     authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		if r.authController != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				if r.loginRateLimiter != nil {
					auth.POST("/login", r.loginRateLimiter.Limit(), r.authController.Login)
				} else {
					auth.POST("/login", r.authController.Login)
				}
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
			}
		}

		if r.insightController != nil && r.authMiddleware != nil {
			insights := v1.Group("")
			insights.Use(r.authMiddleware.Authenticate())
			if r.insightRateLimiter != nil {
				insights.Use(r.insightRateLimiter.Limit())
			}
			{
				insights.GET("/insights/cashflow-projection", r.insightController.GetCashflowProjection)

				business := insights.Group("/businesses/:businessId/insights")
				{
					business.GET("/pipeline", r.insightController.GetPipelineSummary)
					business.GET("/project-performance", r.insightController.GetProjectPerformance)
					business.GET("/top-clients", r.insightController.GetTopClients)
					business.GET("/top-services", r.insightController.GetTopServices)
				}

				insights.GET("/projects/:projectId/insights/workload", r.insightController.GetProjectWorkload)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
