package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/recordhub/internal/model"
	"github.com/iliyamo/recordhub/internal/repository"
)

type fakeAdminUserStore struct {
	byID      map[uint64]*model.User
	deleteErr error
}

func (s *fakeAdminUserStore) FindByID(_ context.Context, id uint64) (*model.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (s *fakeAdminUserStore) List(_ context.Context) ([]*model.User, error) {
	var out []*model.User
	for _, u := range s.byID {
		out = append(out, u)
	}
	return out, nil
}

func (s *fakeAdminUserStore) Delete(_ context.Context, id uint64) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *fakeAdminUserStore) Count(_ context.Context) (int, error) { return len(s.byID), nil }

type fakeAdminProductStore struct {
	products []*model.Product
}

func (s *fakeAdminProductStore) Count(_ context.Context) (int, error) { return len(s.products), nil }

func (s *fakeAdminProductStore) ListLowStock(_ context.Context, threshold int) ([]*model.Product, error) {
	var out []*model.Product
	for _, p := range s.products {
		if p.Stock < threshold {
			out = append(out, p)
		}
	}
	return out, nil
}

func adminFixture() (*AdminHandler, *fakeAdminUserStore) {
	users := &fakeAdminUserStore{byID: map[uint64]*model.User{
		1: {ID: 1, Username: "root", Email: "root@example.com", IsAdmin: true},
		2: {ID: 2, Username: "alice", Email: "alice@example.com"},
	}}
	products := &fakeAdminProductStore{products: []*model.Product{
		{ID: 1, Name: "Widget", Stock: 2},
		{ID: 2, Name: "Gadget", Stock: 50},
	}}
	return NewAdminHandler(users, products), users
}

func TestAdminDeleteUser(t *testing.T) {
	e := echo.New()
	h, users := adminFixture()
	admin := users.byID[1]

	req := httptest.NewRequest(http.MethodDelete, "/v1/admin/users/2", nil)
	c, rec := ctxFor(e, admin, req, "2")
	require.NoError(t, h.DeleteUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, users.byID, uint64(2))
}

func TestAdminCannotDeleteAdmin(t *testing.T) {
	e := echo.New()
	h, users := adminFixture()
	admin := users.byID[1]

	req := httptest.NewRequest(http.MethodDelete, "/v1/admin/users/1", nil)
	c, rec := ctxFor(e, admin, req, "1")
	require.NoError(t, h.DeleteUser(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, users.byID, uint64(1))
}

func TestAdminDeleteReferencedUser(t *testing.T) {
	e := echo.New()
	h, users := adminFixture()
	users.deleteErr = repository.ErrReferenced
	admin := users.byID[1]

	req := httptest.NewRequest(http.MethodDelete, "/v1/admin/users/2", nil)
	c, rec := ctxFor(e, admin, req, "2")
	require.NoError(t, h.DeleteUser(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminStats(t *testing.T) {
	e := echo.New()
	h, users := adminFixture()
	admin := users.byID[1]

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/stats", nil)
	c, rec := ctxFor(e, admin, req, "")
	require.NoError(t, h.Stats(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		TotalUsers    int `json:"total_users"`
		TotalProducts int `json:"total_products"`
		LowStock      []struct {
			Name  string `json:"name"`
			Stock int    `json:"stock"`
		} `json:"low_stock_products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 2, got.TotalUsers)
	assert.Equal(t, 2, got.TotalProducts)
	require.Len(t, got.LowStock, 1)
	assert.Equal(t, "Widget", got.LowStock[0].Name)
}
