package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Landing renders the marketing page. Always 200, authenticated or not.
func Landing(c echo.Context) error {
	return c.Render(http.StatusOK, "landing.html", map[string]interface{}{})
}
