package model

import "time"

// Product is a catalog item.  Unlike the other resources it has no owner:
// everyone may read it and only admins may mutate it.
type Product struct {
	ID          uint64    // products.id
	Name        string    // products.name
	Price       float64   // products.price
	Stock       int       // products.stock
	Description *string   // products.description (nullable)
	CreatedAt   time.Time // products.created_at
	UpdatedAt   time.Time // products.updated_at
}

// ProductPatch carries a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name        *string
	Price       *float64
	Stock       *int
	Description *string
}
