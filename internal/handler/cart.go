package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recordhub/internal/model"
	"github.com/iliyamo/recordhub/internal/queue"
	"github.com/iliyamo/recordhub/internal/repository"
)

// CartStore is the cart persistence contract (Redis in production).
type CartStore interface {
	Get(ctx context.Context, userID uint64) (*model.Cart, error)
	Save(ctx context.Context, userID uint64, cart *model.Cart) error
	Clear(ctx context.Context, userID uint64) error
}

// OrderStore turns carts into persisted orders.
type OrderStore interface {
	CreateFromCart(ctx context.Context, userID uint64, cart *model.Cart) (*model.Order, error)
}

// OrderPublisher pushes an order event to the broker.  Publishing is
// best-effort: checkout has already committed when it runs.
type OrderPublisher func(ctx context.Context, ev queue.OrderPlacedEvent) error

// CartHandler serves the /v1/cart routes.
type CartHandler struct {
	Carts    CartStore
	Products ProductStore
	Orders   OrderStore
	Publish  OrderPublisher // may be nil when no broker is configured
}

func NewCartHandler(carts CartStore, products ProductStore, orders OrderStore, publish OrderPublisher) *CartHandler {
	return &CartHandler{Carts: carts, Products: products, Orders: orders, Publish: publish}
}

// Get handles GET /v1/cart.
func (h *CartHandler) Get(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	cart, err := h.Carts.Get(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cart unavailable"})
	}
	return c.JSON(http.StatusOK, cart)
}

// Add handles POST /v1/cart/add.  The product's current name and price are
// copied into the cart line; quantity accumulates for repeated adds.
func (h *CartHandler) Add(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	var body struct {
		ProductID uint64 `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}
	if body.Quantity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be positive"})
	}

	ctx := c.Request().Context()
	product, err := h.Products.GetByID(ctx, body.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	cart, err := h.Carts.Get(ctx, user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cart unavailable"})
	}

	requested := body.Quantity
	for i := range cart.Items {
		if cart.Items[i].ProductID == product.ID {
			requested += cart.Items[i].Quantity
			break
		}
	}
	if product.Stock < requested {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "insufficient stock"})
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == product.ID {
			cart.Items[i].Quantity += body.Quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, model.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  body.Quantity,
		})
	}
	cart.RecalcTotal()

	if err := h.Carts.Save(ctx, user.ID, cart); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cart save failed"})
	}
	return c.JSON(http.StatusOK, cart)
}

// RemoveItem handles DELETE /v1/cart/item/:id.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx := c.Request().Context()
	cart, err := h.Carts.Get(ctx, user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cart unavailable"})
	}

	kept := cart.Items[:0]
	for _, it := range cart.Items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	cart.Items = kept
	cart.RecalcTotal()

	if err := h.Carts.Save(ctx, user.ID, cart); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cart save failed"})
	}
	return c.JSON(http.StatusOK, cart)
}

// Clear handles DELETE /v1/cart/clear.
func (h *CartHandler) Clear(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	if err := h.Carts.Clear(c.Request().Context(), user.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cart clear failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "cart cleared successfully"})
}

// Checkout handles POST /v1/cart/checkout.  The stock decrement and order
// insert are one database transaction; the cart is cleared only after the
// order committed, and the broker event is fired last.
func (h *CartHandler) Checkout(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	ctx := c.Request().Context()

	cart, err := h.Carts.Get(ctx, user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cart unavailable"})
	}
	if len(cart.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cart is empty"})
	}

	order, err := h.Orders.CreateFromCart(ctx, user.ID, cart)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
		case errors.Is(err, repository.ErrInsufficientStock):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "checkout failed"})
		}
	}

	if err := h.Carts.Clear(ctx, user.ID); err != nil {
		// The order is committed; an uncleared cart is an annoyance, not a failure.
		log.Printf("cart: clear after checkout failed for user %d: %v", user.ID, err)
	}

	if h.Publish != nil {
		ev := queue.OrderPlacedEvent{
			OrderID:  order.ID,
			UserID:   user.ID,
			Username: user.Username,
			Total:    order.Total,
			PlacedAt: time.Now().UTC().Format(time.RFC3339),
		}
		for _, it := range order.Items {
			ev.Items = append(ev.Items, queue.OrderEventItem{
				ProductID: it.ProductID,
				Name:      it.Name,
				Price:     it.Price,
				Quantity:  it.Quantity,
			})
		}
		if err := h.Publish(ctx, ev); err != nil {
			log.Printf("cart: order event publish failed for order %d: %v", order.ID, err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":  "order placed successfully",
		"order_id": order.ID,
		"total":    order.Total,
	})
}
