package model

import "time"

// Note is a free-form text note owned by a single user.
type Note struct {
	ID        uint64    // notes.id
	UserID    uint64    // notes.user_id
	Title     string    // notes.title
	Content   string    // notes.content
	CreatedAt time.Time // notes.created_at
	UpdatedAt time.Time // notes.updated_at
}

// NotePatch carries a partial update; nil fields are left untouched.
type NotePatch struct {
	Title   *string
	Content *string
}
