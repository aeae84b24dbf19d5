package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/recordhub/internal/model"
)

// ErrInsufficientStock is returned when checkout asks for more units than
// the catalog holds.  Handlers translate it into an HTTP 400 response.
var ErrInsufficientStock = errors.New("insufficient stock")

// OrderRepo persists completed checkouts.  Stock decrement and order
// insert happen inside one transaction so a failed checkout never leaves
// stock half-consumed.
type OrderRepo struct{ DB *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{DB: db} }

// CreateFromCart turns a cart into an order: it locks each product row,
// verifies and decrements stock, then writes the order and its items.  On
// any failure the transaction rolls back and the cart is untouched.
func (r *OrderRepo) CreateFromCart(ctx context.Context, userID uint64, cart *model.Cart) (*model.Order, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, it := range cart.Items {
		var stock int
		err := tx.QueryRowContext(ctx,
			"SELECT stock FROM products WHERE id=? FOR UPDATE", it.ProductID).Scan(&stock)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("product %d: %w", it.ProductID, ErrNotFound)
			}
			return nil, err
		}
		if stock < it.Quantity {
			return nil, fmt.Errorf("%s: %w", it.Name, ErrInsufficientStock)
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE products SET stock=stock-? WHERE id=?", it.Quantity, it.ProductID); err != nil {
			return nil, err
		}
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO orders (user_id, total, status) VALUES (?,?,?)",
		userID, cart.Total, "completed")
	if err != nil {
		return nil, err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	order := &model.Order{
		ID:     uint64(orderID),
		UserID: userID,
		Total:  cart.Total,
		Status: "completed",
	}
	for _, it := range cart.Items {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO order_items (order_id, product_id, name, price, quantity) VALUES (?,?,?,?,?)",
			order.ID, it.ProductID, it.Name, it.Price, it.Quantity)
		if err != nil {
			return nil, err
		}
		itemID, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, model.OrderItem{
			ID:        uint64(itemID),
			OrderID:   order.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	// Populate the DB-assigned creation timestamp.
	if err := r.DB.QueryRowContext(ctx,
		"SELECT created_at FROM orders WHERE id=?", order.ID).Scan(&order.CreatedAt); err != nil {
		return nil, err
	}
	return order, nil
}
