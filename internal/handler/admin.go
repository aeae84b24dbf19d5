package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recordhub/internal/model"
	"github.com/iliyamo/recordhub/internal/repository"
)

const lowStockThreshold = 10

// AdminUserStore is the user surface the admin routes need.
type AdminUserStore interface {
	FindByID(ctx context.Context, id uint64) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Delete(ctx context.Context, id uint64) error
	Count(ctx context.Context) (int, error)
}

// AdminProductStore is the product surface behind the stats report.
type AdminProductStore interface {
	Count(ctx context.Context) (int, error)
	ListLowStock(ctx context.Context, threshold int) ([]*model.Product, error)
}

// AdminHandler serves /v1/admin.  The router mounts it behind both the
// session resolver and RequireAdmin, so handlers only deal with data.
type AdminHandler struct {
	Users    AdminUserStore
	Products AdminProductStore
}

func NewAdminHandler(users AdminUserStore, products AdminProductStore) *AdminHandler {
	return &AdminHandler{Users: users, Products: products}
}

// ListUsers handles GET /v1/admin/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, out)
}

// GetUser handles GET /v1/admin/users/:id.
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	user, err := h.Users.FindByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// DeleteUser handles DELETE /v1/admin/users/:id.  Admin accounts cannot be
// deleted through the API.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	user, err := h.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if user.IsAdmin {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot delete admin users"})
	}
	if err := h.Users.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		case errors.Is(err, repository.ErrReferenced):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "user still owns records"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted successfully"})
}

// Stats handles GET /v1/admin/stats.
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	userCount, err := h.Users.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	productCount, err := h.Products.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	low, err := h.Products.ListLowStock(ctx, lowStockThreshold)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	lowStock := make([]echo.Map, 0, len(low))
	for _, p := range low {
		lowStock = append(lowStock, echo.Map{
			"id":    p.ID,
			"name":  p.Name,
			"stock": p.Stock,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"total_users":        userCount,
		"total_products":     productCount,
		"low_stock_products": lowStock,
	})
}
