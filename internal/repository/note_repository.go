package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/recordhub/internal/model"
)

// NoteRepo encapsulates all database queries related to notes.
type NoteRepo struct{ DB *sql.DB }

func NewNoteRepo(db *sql.DB) *NoteRepo { return &NoteRepo{DB: db} }

const noteColumns = "id, user_id, title, content, created_at, updated_at"

func scanNote(scan func(dest ...any) error) (*model.Note, error) {
	var n model.Note
	err := scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// Create inserts a note and populates its ID and timestamps.
func (r *NoteRepo) Create(ctx context.Context, n *model.Note) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO notes (user_id, title, content) VALUES (?,?,?)",
		n.UserID, n.Title, n.Content)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM notes WHERE id=?", n.ID).
		Scan(&n.CreatedAt, &n.UpdatedAt)
}

// GetByID fetches a note by id regardless of owner.
func (r *NoteRepo) GetByID(ctx context.Context, id uint64) (*model.Note, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE id=? LIMIT 1", id)
	return scanNote(row.Scan)
}

// ListByOwner returns the owner's notes ordered by id with pagination.
func (r *NoteRepo) ListByOwner(ctx context.Context, ownerID uint64, skip, limit int) ([]*model.Note, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE user_id=? ORDER BY id LIMIT ? OFFSET ?",
		ownerID, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*model.Note
	for rows.Next() {
		n, err := scanNote(rows.Scan)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Update applies a patch to a note, field by field.
func (r *NoteRepo) Update(ctx context.Context, n *model.Note, p model.NotePatch) error {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE notes SET title=?, content=? WHERE id=?",
		n.Title, n.Content, n.ID)
	if err != nil {
		return err
	}
	return r.DB.QueryRowContext(ctx,
		"SELECT updated_at FROM notes WHERE id=?", n.ID).Scan(&n.UpdatedAt)
}

// Delete removes a note by id.
func (r *NoteRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM notes WHERE id=?", id)
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
