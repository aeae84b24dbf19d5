// Package handler contains the HTTP handlers.  Each resource family gets
// its own handler struct bundling the stores it needs; stores are consumed
// through small interfaces so tests can substitute fakes.  Handlers own
// the mapping from repository sentinel errors to HTTP statuses.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recordhub/internal/middleware"
	"github.com/iliyamo/recordhub/internal/model"
)

// defaultListLimit bounds list responses when the client sends no limit.
const defaultListLimit = 100

// parseID parses the :id route parameter.
func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// skipLimit reads the skip/limit pagination query parameters.
func skipLimit(c echo.Context) (int, int) {
	skip := 0
	limit := defaultListLimit
	if v, err := strconv.Atoi(c.QueryParam("skip")); err == nil && v >= 0 {
		skip = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 && v <= defaultListLimit {
		limit = v
	}
	return skip, limit
}

// requireUser fetches the identity placed in the context by the auth
// middleware.  A false return means the 401 response has been written;
// this only happens when a route is misregistered without the middleware.
func requireUser(c echo.Context) (*model.User, bool) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return nil, false
	}
	return u, true
}

// userResponse is the public view of an identity; the password hash never
// leaves the server.
type userResponse struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}
