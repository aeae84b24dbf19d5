package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/recordhub/internal/model"
	"github.com/iliyamo/recordhub/internal/queue"
	"github.com/iliyamo/recordhub/internal/repository"
)

type fakeCartStore struct {
	carts map[uint64]*model.Cart
}

func newFakeCartStore() *fakeCartStore { return &fakeCartStore{carts: map[uint64]*model.Cart{}} }

func (s *fakeCartStore) Get(_ context.Context, userID uint64) (*model.Cart, error) {
	if c, ok := s.carts[userID]; ok {
		return c, nil
	}
	return &model.Cart{Items: []model.CartItem{}}, nil
}

func (s *fakeCartStore) Save(_ context.Context, userID uint64, cart *model.Cart) error {
	s.carts[userID] = cart
	return nil
}

func (s *fakeCartStore) Clear(_ context.Context, userID uint64) error {
	delete(s.carts, userID)
	return nil
}

type fakeProductStore struct {
	byID map[uint64]*model.Product
}

func (s *fakeProductStore) Create(_ context.Context, p *model.Product) error { return nil }

func (s *fakeProductStore) GetByID(_ context.Context, id uint64) (*model.Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (s *fakeProductStore) List(_ context.Context, _, _ int) ([]*model.Product, error) {
	var out []*model.Product
	for _, p := range s.byID {
		out = append(out, p)
	}
	return out, nil
}

func (s *fakeProductStore) Update(_ context.Context, _ *model.Product, _ model.ProductPatch) error {
	return nil
}

func (s *fakeProductStore) Delete(_ context.Context, _ uint64) error { return nil }

type fakeOrderStore struct {
	err     error
	created *model.Order
}

func (s *fakeOrderStore) CreateFromCart(_ context.Context, userID uint64, cart *model.Cart) (*model.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	order := &model.Order{ID: 42, UserID: userID, Total: cart.Total, Status: "placed"}
	for _, it := range cart.Items {
		order.Items = append(order.Items, model.OrderItem{
			ProductID: it.ProductID, Name: it.Name, Price: it.Price, Quantity: it.Quantity,
		})
	}
	s.created = order
	return order, nil
}

func cartFixture() (*CartHandler, *fakeCartStore, *fakeOrderStore, *[]queue.OrderPlacedEvent) {
	carts := newFakeCartStore()
	products := &fakeProductStore{byID: map[uint64]*model.Product{
		1: {ID: 1, Name: "Widget", Price: 9.5, Stock: 3},
		2: {ID: 2, Name: "Gadget", Price: 20, Stock: 0},
	}}
	orders := &fakeOrderStore{}
	var published []queue.OrderPlacedEvent
	h := NewCartHandler(carts, products, orders, func(_ context.Context, ev queue.OrderPlacedEvent) error {
		published = append(published, ev)
		return nil
	})
	return h, carts, orders, &published
}

func TestCartAddAndGet(t *testing.T) {
	e := echo.New()
	h, _, _, _ := cartFixture()
	user := &model.User{ID: 1, Username: "alice"}

	req := httptest.NewRequest(http.MethodPost, "/v1/cart/add", strings.NewReader(`{"product_id":1,"quantity":2}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := ctxFor(e, user, req, "")
	require.NoError(t, h.Add(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var cart model.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.InDelta(t, 19.0, cart.Total, 1e-9)

	// A second add of the same product accumulates the quantity.
	req = httptest.NewRequest(http.MethodPost, "/v1/cart/add", strings.NewReader(`{"product_id":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec = ctxFor(e, user, req, "")
	require.NoError(t, h.Add(c))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestCartAddUnknownProduct(t *testing.T) {
	e := echo.New()
	h, _, _, _ := cartFixture()

	req := httptest.NewRequest(http.MethodPost, "/v1/cart/add", strings.NewReader(`{"product_id":999}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := ctxFor(e, &model.User{ID: 1}, req, "")
	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartAddInsufficientStock(t *testing.T) {
	e := echo.New()
	h, _, _, _ := cartFixture()

	req := httptest.NewRequest(http.MethodPost, "/v1/cart/add", strings.NewReader(`{"product_id":2,"quantity":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := ctxFor(e, &model.User{ID: 1}, req, "")
	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartRemoveItem(t *testing.T) {
	e := echo.New()
	h, carts, _, _ := cartFixture()
	user := &model.User{ID: 1}

	cart := &model.Cart{Items: []model.CartItem{
		{ProductID: 1, Name: "Widget", Price: 9.5, Quantity: 1},
		{ProductID: 2, Name: "Gadget", Price: 20, Quantity: 1},
	}}
	cart.RecalcTotal()
	require.NoError(t, carts.Save(context.Background(), user.ID, cart))

	req := httptest.NewRequest(http.MethodDelete, "/v1/cart/item/2", nil)
	c, rec := ctxFor(e, user, req, "2")
	require.NoError(t, h.RemoveItem(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Items, 1)
	assert.Equal(t, uint64(1), got.Items[0].ProductID)
	assert.InDelta(t, 9.5, got.Total, 1e-9)
}

func TestCheckoutEmptyCart(t *testing.T) {
	e := echo.New()
	h, _, _, _ := cartFixture()

	req := httptest.NewRequest(http.MethodPost, "/v1/cart/checkout", nil)
	c, rec := ctxFor(e, &model.User{ID: 1}, req, "")
	require.NoError(t, h.Checkout(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutPlacesOrderAndClearsCart(t *testing.T) {
	e := echo.New()
	h, carts, orders, published := cartFixture()
	user := &model.User{ID: 1, Username: "alice"}

	cart := &model.Cart{Items: []model.CartItem{{ProductID: 1, Name: "Widget", Price: 9.5, Quantity: 2}}}
	cart.RecalcTotal()
	require.NoError(t, carts.Save(context.Background(), user.ID, cart))

	req := httptest.NewRequest(http.MethodPost, "/v1/cart/checkout", nil)
	c, rec := ctxFor(e, user, req, "")
	require.NoError(t, h.Checkout(c))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, orders.created)
	assert.InDelta(t, 19.0, orders.created.Total, 1e-9)

	// Cart is gone after a successful checkout.
	left, err := carts.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, left.Items)

	require.Len(t, *published, 1)
	ev := (*published)[0]
	assert.Equal(t, uint64(42), ev.OrderID)
	assert.Equal(t, "alice", ev.Username)
	require.Len(t, ev.Items, 1)
	assert.Equal(t, 2, ev.Items[0].Quantity)
}

func TestCheckoutStockRace(t *testing.T) {
	e := echo.New()
	h, carts, orders, published := cartFixture()
	orders.err = repository.ErrInsufficientStock
	user := &model.User{ID: 1}

	cart := &model.Cart{Items: []model.CartItem{{ProductID: 1, Name: "Widget", Price: 9.5, Quantity: 2}}}
	cart.RecalcTotal()
	require.NoError(t, carts.Save(context.Background(), user.ID, cart))

	req := httptest.NewRequest(http.MethodPost, "/v1/cart/checkout", nil)
	c, rec := ctxFor(e, user, req, "")
	require.NoError(t, h.Checkout(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The cart survives a failed checkout and no event is published.
	left, err := carts.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, left.Items, 1)
	assert.Empty(t, *published)
}
