package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recordhub/internal/auth"
	"github.com/iliyamo/recordhub/internal/model"
	"github.com/iliyamo/recordhub/internal/repository"
)

// userContextKey is where the resolved identity is stored on the Echo
// context.  Handlers read it through CurrentUser.
const userContextKey = "current_user"

// UserFinder is the slice of the credential store the session resolver
// needs: a username lookup.  *repository.UserRepo satisfies it; tests
// substitute fakes.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

// Auth returns the session-resolving middleware.  It is the single
// interception point for every protected route: it reads the bearer
// token, verifies it with the token service, loads the identity behind
// the subject claim and stores it in the request context.  A missing,
// malformed, expired or unverifiable token, or a subject that no longer
// exists, yields 401 with a WWW-Authenticate: Bearer header.
func Auth(tokens *auth.TokenService, users UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return unauthenticated(c, "missing bearer token")
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			subject, err := tokens.Verify(raw)
			if err != nil {
				// The error flavor (malformed / bad signature / expired) is not
				// leaked to the client; all three are the same 401.
				return unauthenticated(c, "invalid or expired token")
			}

			user, err := users.FindByUsername(c.Request().Context(), subject)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return unauthenticated(c, "invalid or expired token")
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// unauthenticated writes the 401 response with the challenge header
// required for bearer authentication.
func unauthenticated(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": msg})
}

// CurrentUser returns the identity resolved by Auth.  The second return
// value is false when the middleware did not run for this route.
func CurrentUser(c echo.Context) (*model.User, bool) {
	u, ok := c.Get(userContextKey).(*model.User)
	return u, ok
}
