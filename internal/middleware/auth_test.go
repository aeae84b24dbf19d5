package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/recordhub/internal/auth"
	"github.com/iliyamo/recordhub/internal/model"
	"github.com/iliyamo/recordhub/internal/repository"
)

type fakeUserFinder struct {
	users map[string]*model.User
}

func (f *fakeUserFinder) FindByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func newAuthTest(t *testing.T) (*auth.TokenService, *fakeUserFinder, echo.HandlerFunc) {
	t.Helper()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	finder := &fakeUserFinder{users: map[string]*model.User{
		"alice": {ID: 1, Username: "alice", Email: "alice@example.com"},
	}}
	handler := func(c echo.Context) error {
		u, ok := CurrentUser(c)
		require.True(t, ok)
		return c.String(http.StatusOK, u.Username)
	}
	return tokens, finder, handler
}

func doAuth(tokens *auth.TokenService, finder *fakeUserFinder, handler echo.HandlerFunc, header string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = Auth(tokens, finder)(handler)(c)
	return rec
}

func TestAuthValidToken(t *testing.T) {
	t.Parallel()

	tokens, finder, handler := newAuthTest(t)
	tok, err := tokens.Issue("alice")
	require.NoError(t, err)

	rec := doAuth(tokens, finder, handler, "Bearer "+tok)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", rec.Body.String())
}

func TestAuthMissingHeader(t *testing.T) {
	t.Parallel()

	tokens, finder, handler := newAuthTest(t)
	rec := doAuth(tokens, finder, handler, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestAuthCorruptedToken(t *testing.T) {
	t.Parallel()

	tokens, finder, handler := newAuthTest(t)
	tok, err := tokens.Issue("alice")
	require.NoError(t, err)

	rec := doAuth(tokens, finder, handler, "Bearer "+tok+"x")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestAuthExpiredToken(t *testing.T) {
	t.Parallel()

	tokens, finder, handler := newAuthTest(t)
	tok, err := tokens.IssueWithTTL("alice", -time.Second)
	require.NoError(t, err)

	rec := doAuth(tokens, finder, handler, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthUnknownSubject(t *testing.T) {
	t.Parallel()

	tokens, finder, handler := newAuthTest(t)
	tok, err := tokens.Issue("ghost")
	require.NoError(t, err)

	rec := doAuth(tokens, finder, handler, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
