package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/wemender/vorsilvester/internal/cart"
	"github.com/wemender/vorsilvester/internal/config"
	"github.com/wemender/vorsilvester/internal/handler"
	"github.com/wemender/vorsilvester/internal/model"
	"github.com/wemender/vorsilvester/internal/router"
	"github.com/wemender/vorsilvester/internal/store"
	"github.com/wemender/vorsilvester/internal/utils"
)

// newTestServer wires handlers, stores and routes the same way main does,
// minus redis and the broker, over a throwaway data directory.
func newTestServer(t *testing.T) (*echo.Echo, config.Config) {
	t.Helper()
	cfg := config.Config{
		Port:       "0",
		DataDir:    t.TempDir(),
		JWTSecret:  "test-secret",
		AdminEmail: "admin@example.com",
		AdminPass:  "admin123",
		BcryptCost: bcrypt.MinCost,
	}
	users := store.NewUserStore(cfg.DataDir, cfg.BcryptCost)
	orders := store.NewOrderStore(cfg.DataDir)

	e := echo.New()
	router.RegisterRoutes(e, handler.NewAuthHandler(cfg, users), handler.NewOrderHandler(orders), cfg.JWTSecret)
	return e, cfg
}

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestAdminLogin(t *testing.T) {
	e, _ := newTestServer(t)

	t.Run("correct credentials yield an admin token", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/login",
			`{"email":"admin@example.com","password":"admin123"}`, "")
		require.Equal(t, http.StatusOK, rec.Code)

		token, _ := decode(t, rec)["token"].(string)
		require.NotEmpty(t, token)
		claims, err := utils.VerifyToken("test-secret", token, utils.RoleAdmin)
		require.NoError(t, err)
		require.Equal(t, true, claims["admin"])
	})

	t.Run("email match is case-insensitive", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/login",
			`{"email":"ADMIN@example.com","password":"admin123"}`, "")
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/login",
			`{"email":"admin@example.com","password":"nope"}`, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing fields are a validation error", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/login", `{"email":"admin@example.com"}`, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRegisterAndUserLogin(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/register",
		`{"email":"a@b.com","name":"Anna","password":"pw1"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, decode(t, rec)["ok"])

	t.Run("second registration fails", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/register",
			`{"email":"a@b.com","name":"Anna","password":"pw1"}`, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong password fails with a generic message", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/user-login",
			`{"email":"a@b.com","password":"wrong"}`, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "invalid credentials", decode(t, rec)["error"])
	})

	t.Run("correct password yields a user token carrying the email", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/user-login",
			`{"email":"a@b.com","password":"pw1"}`, "")
		require.Equal(t, http.StatusOK, rec.Code)

		token, _ := decode(t, rec)["token"].(string)
		claims, err := utils.VerifyToken("test-secret", token, utils.RoleUser)
		require.NoError(t, err)
		require.Equal(t, "a@b.com", claims["email"])
		require.Equal(t, "Anna", claims["name"])
	})

	t.Run("missing name is a validation error", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/register",
			`{"email":"x@y.com","password":"pw"}`, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSubmitOrder(t *testing.T) {
	e, _ := newTestServer(t)

	t.Run("missing required fields rejected", func(t *testing.T) {
		for _, body := range []string{
			`{}`,
			`{"name":"Anna","email":"a@b.com"}`,
			`{"name":"Anna","items":"Báljegy (1 db)"}`,
			`{"email":"a@b.com","items":"Báljegy (1 db)"}`,
		} {
			rec := doJSON(e, http.MethodPost, "/api/orders", body, "")
			require.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
		}
	})

	t.Run("valid payload is persisted with defaults", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/orders",
			`{"name":"Anna","email":"a@b.com","items":"Báljegy (2 db)","attendees":[{"ticketId":"bal","title":"Báljegy","names":["Anna","Bela"]}],"total":12000}`, "")
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decode(t, rec)
		require.Equal(t, true, resp["ok"])
		id, _ := resp["id"].(string)
		require.NotEmpty(t, id)
	})

	t.Run("total coercion", func(t *testing.T) {
		for body, want := range map[string]float64{
			`{"name":"A","email":"a@b.com","items":"x","total":"6000"}`: 6000,
			`{"name":"A","email":"a@b.com","items":"x","total":-5}`:     0,
			`{"name":"A","email":"a@b.com","items":"x","total":{}}`:     0,
			`{"name":"A","email":"a@b.com","items":"x"}`:                0,
		} {
			e2, cfg := newTestServer(t)
			rec := doJSON(e2, http.MethodPost, "/api/orders", body, "")
			require.Equal(t, http.StatusOK, rec.Code, "body: %s", body)

			orders := store.NewOrderStore(cfg.DataDir).All()
			require.Len(t, orders, 1)
			require.Equal(t, want, orders[0].Total, "body: %s", body)
			require.Equal(t, "pending", orders[0].Status)
			require.NotNil(t, orders[0].Attendees)
		}
	})
}

func TestListOrders(t *testing.T) {
	e, cfg := newTestServer(t)

	submit := func(name, email, items string) string {
		rec := doJSON(e, http.MethodPost, "/api/orders",
			`{"name":"`+name+`","email":"`+email+`","items":"`+items+`","total":6000}`, "")
		require.Equal(t, http.StatusOK, rec.Code)
		id, _ := decode(t, rec)["id"].(string)
		return id
	}
	id1 := submit("Anna", "x@y.com", "Báljegy (1 db)")
	id2 := submit("Bela", "other@y.com", "Vacsorajegy (1 db)")
	id3 := submit("Anna", "X@Y.COM", "Báljegy (1 db)")
	require.NotEqual(t, id1, id3)

	adminToken, err := utils.IssueToken(cfg.JWTSecret, utils.RoleAdmin, map[string]any{"email": cfg.AdminEmail, "admin": true})
	require.NoError(t, err)
	userToken, err := utils.IssueToken(cfg.JWTSecret, utils.RoleUser, map[string]any{"email": "x@y.com"})
	require.NoError(t, err)

	t.Run("admin sees everything newest first", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/api/orders", "", adminToken)
		require.Equal(t, http.StatusOK, rec.Code)

		var orders []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
		require.Len(t, orders, 3)
		require.Equal(t, id3, orders[0]["id"])
		require.Equal(t, id2, orders[1]["id"])
		require.Equal(t, id1, orders[2]["id"])
	})

	t.Run("user sees only their own orders", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/api/my-orders", "", userToken)
		require.Equal(t, http.StatusOK, rec.Code)

		var orders []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
		require.Len(t, orders, 2)
		for _, o := range orders {
			require.True(t, strings.EqualFold("x@y.com", o["email"].(string)))
		}
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/api/orders", "", "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/api/orders", "", "garbage")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("user token on the admin endpoint is forbidden", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/api/orders", "", userToken)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin token on the user endpoint is forbidden", func(t *testing.T) {
		rec := doJSON(e, http.MethodGet, "/api/my-orders", "", adminToken)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestCartCheckoutRoundTrip(t *testing.T) {
	e, cfg := newTestServer(t)

	var c cart.Cart
	c.AddTicket(model.Catalog()[0]) // Báljegy
	c.ChangeQuantity("bal", 1)
	c.SetAttendeeName("bal", 0, "Anna")
	require.Error(t, c.ValidateForCheckout()) // blank name at index 1 blocks checkout
	c.SetAttendeeName("bal", 1, "Bela")
	require.NoError(t, c.ValidateForCheckout())

	payload := c.ToOrderPayload("Kovács Anna", "anna@example.com", "")
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	rec := doJSON(e, http.MethodPost, "/api/orders", string(body), "")
	require.Equal(t, http.StatusOK, rec.Code)
	id, _ := decode(t, rec)["id"].(string)

	adminToken, err := utils.IssueToken(cfg.JWTSecret, utils.RoleAdmin, map[string]any{"email": cfg.AdminEmail})
	require.NoError(t, err)
	rec = doJSON(e, http.MethodGet, "/api/orders", "", adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	require.Equal(t, id, orders[0].ID)
	require.Equal(t, "anna@example.com", orders[0].Email)
	require.Equal(t, "Báljegy (2 db)", orders[0].Items)
	require.Equal(t, float64(12000), orders[0].Total)
	require.Equal(t, []string{"Anna", "Bela"}, orders[0].Attendees[0].Names)
}

func TestTicketsCatalog(t *testing.T) {
	e, _ := newTestServer(t)
	rec := doJSON(e, http.MethodGet, "/api/tickets", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var tickets []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tickets))
	require.Len(t, tickets, 3)
	require.Equal(t, "bal", tickets[0]["id"])
	require.Equal(t, float64(6000), tickets[0]["price"])
}
