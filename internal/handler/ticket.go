package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wemender/vorsilvester/internal/model"
)

// Tickets serves the static catalog so clients don't have to hard-code
// prices.
func Tickets(c echo.Context) error {
	return c.JSON(http.StatusOK, model.Catalog())
}
