package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAdmin returns a middleware that enforces the privileged flag on
// the identity resolved by Auth.  It must run after Auth.  Non-admin
// identities receive 403; the distinction from 401 matters, the caller is
// authenticated but lacks rights.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return unauthenticated(c, "missing bearer token")
			}
			if !user.IsAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "admin access required"})
			}
			return next(c)
		}
	}
}
