package handler

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wemender/vorsilvester/internal/model"
	"github.com/wemender/vorsilvester/internal/queue"
	"github.com/wemender/vorsilvester/internal/store"
	"github.com/wemender/vorsilvester/internal/utils"
)

// OrderHandler bundles dependencies for order submission and retrieval.
// Publish, when set, is called after a successful submission; failures
// are ignored so a broker outage never blocks a sale.
type OrderHandler struct {
	Orders  *store.OrderStore
	Publish func(ctx context.Context, ev queue.OrderCreatedEvent) error
}

func NewOrderHandler(orders *store.OrderStore) *OrderHandler {
	return &OrderHandler{Orders: orders}
}

// createOrderReq is the submission payload produced by the cart. Total is
// untyped on the wire and coerced server-side; CreatedAt is optional.
type createOrderReq struct {
	Name      string                `json:"name"`
	Email     string                `json:"email"`
	Items     string                `json:"items"`
	Attendees []model.AttendeeGroup `json:"attendees"`
	Note      string                `json:"note"`
	Total     any                   `json:"total"`
	CreatedAt *time.Time            `json:"createdAt"`
}

// Create validates and persists a submitted order. Buyer name, email and
// the items summary are required; everything else gets defaults. The
// order is acknowledged only after it has been written to disk.
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" || req.Email == "" || req.Items == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email/items required"})
	}

	o := model.Order{
		ID:        utils.NewOrderID(),
		Name:      req.Name,
		Email:     req.Email,
		Items:     req.Items,
		Attendees: req.Attendees,
		Note:      req.Note,
		Total:     coerceTotal(req.Total),
		Status:    model.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if o.Attendees == nil {
		o.Attendees = []model.AttendeeGroup{}
	}
	if req.CreatedAt != nil && !req.CreatedAt.IsZero() {
		o.CreatedAt = req.CreatedAt.UTC()
	}

	if err := h.Orders.Append(o); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save order failed"})
	}

	if h.Publish != nil {
		_ = h.Publish(c.Request().Context(), queue.OrderCreatedEvent{
			OrderID:   o.ID,
			Email:     o.Email,
			Items:     o.Items,
			Total:     o.Total,
			CreatedAt: o.CreatedAt.Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "id": o.ID})
}

// ListAll returns the full order list, newest first. Reachable only
// through the admin-role group.
func (h *OrderHandler) ListAll(c echo.Context) error {
	orders := h.Orders.All()
	if orders == nil {
		orders = []model.Order{}
	}
	return c.JSON(http.StatusOK, orders)
}

// ListMine returns the caller's own orders, matched case-insensitively
// against the email claim of the verified user token.
func (h *OrderHandler) ListMine(c echo.Context) error {
	email, _ := c.Get("email").(string)
	if email == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	orders := h.Orders.ByEmail(email)
	if orders == nil {
		orders = []model.Order{}
	}
	return c.JSON(http.StatusOK, orders)
}

// coerceTotal turns whatever the client sent into a non-negative number:
// numbers pass through, numeric strings parse, anything else becomes 0.
func coerceTotal(v any) float64 {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case string:
		n, _ = strconv.ParseFloat(t, 64)
	}
	if n < 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}
