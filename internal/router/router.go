// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/gatepass/vehicle-access/internal/handler"
	"github.com/gatepass/vehicle-access/internal/middleware"
	"github.com/gatepass/vehicle-access/internal/model"
)

// RegisterRoutes registers routes that require no authentication at all:
// the health check used by load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the staff auth endpoints. Token issuing lives
// under /v1/auth; /v1/me and account management sit behind the JWT
// middleware. Registration and password-reset issuance are admin-only so
// guards cannot mint accounts.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)
	// Completing a reset needs only the one-time token, not a session.
	g.POST("/reset-password", a.ResetPassword)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleAdmin, model.RoleGuard))
	auth.GET("/me", a.Me)

	admin := e.Group("/v1/auth", middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleAdmin))
	admin.POST("/register", a.Register)
	admin.POST("/request-reset", a.RequestPasswordReset)
}
