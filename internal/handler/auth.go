package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wemender/vorsilvester/internal/config"
	"github.com/wemender/vorsilvester/internal/store"
	"github.com/wemender/vorsilvester/internal/utils"
)

// AuthHandler bundles dependencies for the login and registration
// endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *store.UserStore
}

func NewAuthHandler(cfg config.Config, users *store.UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type registerReq struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// AdminLogin authenticates the single fixed admin account configured via
// environment variables. The password is compared directly, not hashed:
// a deliberate simplification for one operator account that never touches
// the credential store.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}
	if !strings.EqualFold(req.Email, h.Cfg.AdminEmail) || req.Password != h.Cfg.AdminPass {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	token, err := utils.IssueToken(h.Cfg.JWTSecret, utils.RoleAdmin, map[string]any{
		"email": req.Email,
		"admin": true,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

// Register creates a customer account. The email must not belong to an
// existing account (compared case-insensitively).
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == "" || req.Name == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/name/password required"})
	}
	if _, err := h.Users.Register(req.Email, req.Name, req.Password); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// UserLogin verifies a customer's credentials and issues a user-role
// token. The error message is the same for unknown emails and wrong
// passwords so accounts cannot be enumerated.
func (h *AuthHandler) UserLogin(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}
	u, err := h.Users.Authenticate(req.Email, req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	token, err := utils.IssueToken(h.Cfg.JWTSecret, utils.RoleUser, map[string]any{
		"email":  u.Email,
		"name":   u.Name,
		"userId": u.ID,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}
