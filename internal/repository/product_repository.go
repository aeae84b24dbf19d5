package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/recordhub/internal/model"
)

// ProductRepo encapsulates all database queries related to the product
// catalog.  Products have no owner; write access is gated by the admin
// middleware, not by ownership checks.
type ProductRepo struct{ DB *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{DB: db} }

const productColumns = "id, name, price, stock, description, created_at, updated_at"

func scanProduct(scan func(dest ...any) error) (*model.Product, error) {
	var p model.Product
	err := scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a product and populates its ID and timestamps.
func (r *ProductRepo) Create(ctx context.Context, p *model.Product) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO products (name, price, stock, description) VALUES (?,?,?,?)",
		p.Name, p.Price, p.Stock, p.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM products WHERE id=?", p.ID).
		Scan(&p.CreatedAt, &p.UpdatedAt)
}

// GetByID fetches a product by id.
func (r *ProductRepo) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id=? LIMIT 1", id)
	return scanProduct(row.Scan)
}

// List returns catalog products ordered by id with pagination.
func (r *ProductRepo) List(ctx context.Context, skip, limit int) ([]*model.Product, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products ORDER BY id LIMIT ? OFFSET ?", limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Update applies a patch to a product, field by field.
func (r *ProductRepo) Update(ctx context.Context, p *model.Product, patch model.ProductPatch) error {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Description != nil {
		p.Description = patch.Description
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE products SET name=?, price=?, stock=?, description=? WHERE id=?",
		p.Name, p.Price, p.Stock, p.Description, p.ID)
	if err != nil {
		return err
	}
	return r.DB.QueryRowContext(ctx,
		"SELECT updated_at FROM products WHERE id=?", p.ID).Scan(&p.UpdatedAt)
}

// Delete removes a product by id.
func (r *ProductRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of catalog products.
func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&n)
	return n, err
}

// ListLowStock returns products whose stock is below the given threshold.
func (r *ProductRepo) ListLowStock(ctx context.Context, threshold int) ([]*model.Product, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE stock < ? ORDER BY stock", threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*model.Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
