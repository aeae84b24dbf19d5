package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recordhub/internal/middleware"
)

// Healthz handles GET /healthz.
func Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// Stats returns a handler for GET /stats reporting the request total kept
// by the counter middleware.
func Stats(counter *middleware.Counter) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"total_requests": counter.Total(c.Request().Context()),
		})
	}
}
