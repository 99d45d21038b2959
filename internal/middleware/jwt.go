// Package middleware contains reusable HTTP middleware: bearer-token
// authentication, role enforcement and rate limiting.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wemender/vorsilvester/internal/utils"
)

// JWTAuth validates a Bearer token and injects its claims into the
// request context. Handlers behind it can read the caller's identity via
// c.Get("email") and c.Get("role"). Role enforcement is left to
// RequireRole so that a wrong role answers 403 rather than 401.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			raw := strings.TrimPrefix(auth, "Bearer ")
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			claims, err := utils.VerifyToken(secret, raw, "")
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			email, _ := claims["email"].(string)
			role, _ := claims["role"].(string)
			c.Set("email", email)
			c.Set("role", role)
			c.Set("claims", claims)
			return next(c)
		}
	}
}
