package http

import (
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"loan-portal/internal/adapter/middleware"
)

type Deps struct {
	Ports    Ports
	Sessions middleware.SessionConfig
	Enforcer *casbin.Enforcer
	// Redis enables idempotent replays on the loan routes; nil turns them off.
	Redis          *redis.Client
	IdempotencyTTL time.Duration
}

func Register(e *echo.Echo, d Deps) {
	e.Validator = NewValidator()

	e.GET("/health", NewHandler().Health)

	api := e.Group("/api", middleware.Sessions(d.Sessions))

	ah := NewAuthHandler(d.Ports)
	api.POST("/auth/login", ah.Login)
	api.POST("/auth/register", ah.Register)
	api.POST("/auth/logout", ah.Logout)
	api.GET("/auth/session", ah.Session)

	loans := api.Group("/loans", middleware.RequireRole(d.Enforcer))
	if d.Redis != nil {
		loans.Use(middleware.Idempotency(d.Redis, d.IdempotencyTTL))
	}
	lh := NewLoanHandler(d.Ports)
	loans.POST("", lh.RequestLoan)
	loans.GET("/my-loans", lh.MyLoans)
	loans.GET("", lh.AllLoans)
	loans.PUT("/:loan_id/approve", lh.ApproveLoan)
	loans.PUT("/:loan_id/reject", lh.RejectLoan)
}
