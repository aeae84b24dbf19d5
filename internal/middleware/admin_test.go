package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/recordhub/internal/model"
)

func doAdmin(user *model.User) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(userContextKey, user)
	}
	handler := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	_ = RequireAdmin()(handler)(c)
	return rec
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	t.Parallel()

	rec := doAdmin(&model.User{ID: 1, Username: "root", IsAdmin: true})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdminRejectsNonAdmin(t *testing.T) {
	t.Parallel()

	rec := doAdmin(&model.User{ID: 2, Username: "bob"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminRejectsUnauthenticated(t *testing.T) {
	t.Parallel()

	rec := doAdmin(nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
