package model

import "time"

// CartItem is one line of a user's cart.  Name and price are copied from
// the product at add time so the cart renders without extra lookups.
type CartItem struct {
	ProductID uint64  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Cart is the per-user shopping cart.  It is stored as a JSON value in
// Redis keyed by user id, so the struct carries json tags.
type Cart struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

// RecalcTotal recomputes Total from the items.
func (c *Cart) RecalcTotal() {
	var total float64
	for _, it := range c.Items {
		total += it.Price * float64(it.Quantity)
	}
	c.Total = total
}

// Order is a completed checkout persisted in the `orders` table.
type Order struct {
	ID        uint64      // orders.id
	UserID    uint64      // orders.user_id
	Total     float64     // orders.total
	Status    string      // orders.status
	Items     []OrderItem // order_items rows
	CreatedAt time.Time   // orders.created_at
}

// OrderItem is one purchased line of an order.
type OrderItem struct {
	ID        uint64  // order_items.id
	OrderID   uint64  // order_items.order_id
	ProductID uint64  // order_items.product_id
	Name      string  // order_items.name
	Price     float64 // order_items.price
	Quantity  int     // order_items.quantity
}
