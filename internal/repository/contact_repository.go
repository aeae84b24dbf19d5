package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/recordhub/internal/model"
)

// ContactRepo encapsulates all database queries related to contacts.
type ContactRepo struct{ DB *sql.DB }

func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{DB: db} }

const contactColumns = "id, user_id, name, email, phone, address, created_at, updated_at"

func scanContact(scan func(dest ...any) error) (*model.Contact, error) {
	var c model.Contact
	err := scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a contact and populates its ID and timestamps.
func (r *ContactRepo) Create(ctx context.Context, c *model.Contact) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO contacts (user_id, name, email, phone, address) VALUES (?,?,?,?,?)",
		c.UserID, c.Name, c.Email, c.Phone, c.Address)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM contacts WHERE id=?", c.ID).
		Scan(&c.CreatedAt, &c.UpdatedAt)
}

// GetByID fetches a contact by id regardless of owner.  Ownership is
// checked by the caller so that 403 and 404 stay distinguishable.
func (r *ContactRepo) GetByID(ctx context.Context, id uint64) (*model.Contact, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+contactColumns+" FROM contacts WHERE id=? LIMIT 1", id)
	return scanContact(row.Scan)
}

// ListByOwner returns the owner's contacts ordered by id with pagination.
func (r *ContactRepo) ListByOwner(ctx context.Context, ownerID uint64, skip, limit int) ([]*model.Contact, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+contactColumns+" FROM contacts WHERE user_id=? ORDER BY id LIMIT ? OFFSET ?",
		ownerID, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*model.Contact
	for rows.Next() {
		c, err := scanContact(rows.Scan)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// Search returns the owner's contacts whose name, email, phone or address
// contains q, ordered by name.
func (r *ContactRepo) Search(ctx context.Context, ownerID uint64, q string) ([]*model.Contact, error) {
	like := "%" + q + "%"
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+contactColumns+` FROM contacts
		 WHERE user_id=? AND (name LIKE ? OR email LIKE ? OR phone LIKE ? OR address LIKE ?)
		 ORDER BY name`,
		ownerID, like, like, like, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*model.Contact
	for rows.Next() {
		c, err := scanContact(rows.Scan)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// Update applies a patch to a contact, field by field.  Nil patch fields
// keep the stored value.
func (r *ContactRepo) Update(ctx context.Context, c *model.Contact, p model.ContactPatch) error {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = p.Email
	}
	if p.Phone != nil {
		c.Phone = p.Phone
	}
	if p.Address != nil {
		c.Address = p.Address
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE contacts SET name=?, email=?, phone=?, address=? WHERE id=?",
		c.Name, c.Email, c.Phone, c.Address, c.ID)
	if err != nil {
		return err
	}
	return r.DB.QueryRowContext(ctx,
		"SELECT updated_at FROM contacts WHERE id=?", c.ID).Scan(&c.UpdatedAt)
}

// Delete removes a contact by id.
func (r *ContactRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM contacts WHERE id=?", id)
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
