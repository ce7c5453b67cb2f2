// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/reimburse-desk/backend/internal/domain/entity"
	"github.com/reimburse-desk/backend/internal/integration/entrypoint/controller"
	"github.com/reimburse-desk/backend/internal/integration/entrypoint/middleware"
)

// Controllers groups the HTTP handlers the router mounts.
type Controllers struct {
	Health       *controller.HealthController
	Expense      *controller.ExpenseController
	Report       *controller.ReportController
	Approval     *controller.ApprovalController
	Wallet       *controller.WalletController
	Event        *controller.EventController
	Notification *controller.NotificationController
	Tier         *controller.TierController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine         *gin.Engine
	controllers    Controllers
	rateLimiter    *middleware.RateLimiter
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	controllers Controllers,
	rateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		controllers:    controllers,
		rateLimiter:    rateLimiter,
		authMiddleware: authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test", "e2e":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery(), requestLogger())

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.controllers.Health.Check)
}

// setupAPIRoutes configures the main API routes. Every API route requires a
// bearer token; writes are additionally rate limited per caller.
func (r *Router) setupAPIRoutes() {
	c := r.controllers
	throttle := r.rateLimiter.Middleware()

	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())

	expenses := v1.Group("/expenses")
	{
		expenses.POST("", throttle, c.Expense.Create)
		expenses.GET("", c.Expense.List)
	}

	reports := v1.Group("/reports")
	{
		reports.POST("", throttle, c.Report.Create)
		reports.GET("", c.Report.List)
		reports.GET("/:id", c.Report.Get)
		reports.PATCH("/:id", throttle, c.Report.Update)
		reports.POST("/:id/reimburse",
			middleware.RequireRole(entity.RoleFinance, entity.RoleAdmin),
			throttle,
			c.Approval.Reimburse,
		)
	}

	approvals := v1.Group("/approvals")
	approvals.Use(middleware.RequireRole(entity.RoleApprover, entity.RoleAdmin))
	{
		approvals.GET("", c.Approval.List)
		approvals.POST("/:id/decision", throttle, c.Approval.Decide)
	}

	finance := v1.Group("/finance")
	finance.Use(middleware.RequireRole(entity.RoleFinance, entity.RoleAdmin))
	{
		finance.GET("/reimbursements/export", c.Report.Export)
	}

	wallet := v1.Group("/wallet")
	{
		wallet.GET("", c.Wallet.Get)
		wallet.GET("/used", c.Wallet.Used)

		privileged := wallet.Group("")
		privileged.Use(middleware.RequireRole(entity.RoleAdmin, entity.RoleFinance), throttle)
		privileged.POST("/advances", c.Wallet.RecordAdvance)
		privileged.PATCH("/advances/:id", c.Wallet.SettleAdvance)
		privileged.POST("/deductions", c.Wallet.RecordDeduction)
	}

	events := v1.Group("/events")
	{
		events.POST("", throttle, c.Event.Create)
		events.GET("", c.Event.List)
	}

	notifications := v1.Group("/notifications")
	{
		notifications.GET("", c.Notification.List)
		notifications.POST("/:id/read", c.Notification.MarkRead)
	}

	tiers := v1.Group("/tiers")
	{
		tiers.GET("/:id", c.Tier.Get)
		tiers.PUT("/:id", middleware.RequireRole(entity.RoleAdmin), throttle, c.Tier.Upsert)
	}
}
