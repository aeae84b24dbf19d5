// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderPlacedEvent is published when a checkout completes.  It contains
// enough information for downstream consumers to log, notify, or trigger
// analytics without querying the primary database.
type OrderPlacedEvent struct {
	OrderID  uint64           `json:"order_id"`
	UserID   uint64           `json:"user_id"`
	Username string           `json:"username"`
	Items    []OrderEventItem `json:"items"`
	Total    float64          `json:"total"`
	PlacedAt string           `json:"placed_at"`
}

// OrderEventItem is one purchased line inside an OrderPlacedEvent.
type OrderEventItem struct {
	ProductID uint64  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}
