// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/wemender/vorsilvester/internal/handler"
	"github.com/wemender/vorsilvester/internal/middleware"
	"github.com/wemender/vorsilvester/internal/utils"
)

// RegisterRoutes wires all endpoints under /api plus the health check.
// Order submission is deliberately unauthenticated: guests buy tickets
// without an account. Only the two read endpoints are role-gated.
func RegisterRoutes(e *echo.Echo, a *handler.AuthHandler, o *handler.OrderHandler, jwtSecret string) {
	e.GET("/healthz", handler.Health)

	api := e.Group("/api")
	api.GET("/tickets", handler.Tickets)
	api.POST("/login", a.AdminLogin)
	api.POST("/register", a.Register)
	api.POST("/user-login", a.UserLogin)
	api.POST("/orders", o.Create)

	// Admin-only view of every order.
	admin := e.Group("/api")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(utils.RoleAdmin))
	admin.GET("/orders", o.ListAll)

	// A registered user's own orders, filtered by the token's email.
	user := e.Group("/api")
	user.Use(middleware.JWTAuth(jwtSecret))
	user.Use(middleware.RequireRole(utils.RoleUser))
	user.GET("/my-orders", o.ListMine)
}
