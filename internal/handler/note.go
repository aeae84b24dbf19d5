package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/recordhub/internal/model"
	"github.com/iliyamo/recordhub/internal/repository"
)

// NoteStore is the persistence contract for notes.
type NoteStore interface {
	Create(ctx context.Context, n *model.Note) error
	GetByID(ctx context.Context, id uint64) (*model.Note, error)
	ListByOwner(ctx context.Context, ownerID uint64, skip, limit int) ([]*model.Note, error)
	Update(ctx context.Context, n *model.Note, p model.NotePatch) error
	Delete(ctx context.Context, id uint64) error
}

// NoteHandler serves the /v1/notes routes.
type NoteHandler struct{ Notes NoteStore }

func NewNoteHandler(notes NoteStore) *NoteHandler { return &NoteHandler{Notes: notes} }

type noteResponse struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toNoteResponse(n *model.Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// ownedNote is the ownership guard for notes; see ownedContact.
func (h *NoteHandler) ownedNote(c echo.Context, userID uint64) (*model.Note, bool) {
	id, err := parseID(c)
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		return nil, false
	}
	note, err := h.Notes.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "note not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		return nil, false
	}
	if note.UserID != userID {
		_ = c.JSON(http.StatusForbidden, echo.Map{"error": "not authorized to access this note"})
		return nil, false
	}
	return note, true
}

// Create handles POST /v1/notes.
func (h *NoteHandler) Create(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	var body struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	note := &model.Note{UserID: user.ID, Title: body.Title, Content: body.Content}
	if err := h.Notes.Create(c.Request().Context(), note); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create note"})
	}
	return c.JSON(http.StatusCreated, toNoteResponse(note))
}

// List handles GET /v1/notes.
func (h *NoteHandler) List(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	skip, limit := skipLimit(c)
	notes, err := h.Notes.ListByOwner(c.Request().Context(), user.ID, skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/notes/:id.
func (h *NoteHandler) Get(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	note, ok := h.ownedNote(c, user.ID)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// Update handles PUT /v1/notes/:id as a partial update.
func (h *NoteHandler) Update(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	note, ok := h.ownedNote(c, user.ID)
	if !ok {
		return nil
	}
	var body struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Title != nil && strings.TrimSpace(*body.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title cannot be empty"})
	}
	patch := model.NotePatch{Title: body.Title, Content: body.Content}
	if err := h.Notes.Update(c.Request().Context(), note, patch); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// Delete handles DELETE /v1/notes/:id.
func (h *NoteHandler) Delete(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	note, ok := h.ownedNote(c, user.ID)
	if !ok {
		return nil
	}
	if err := h.Notes.Delete(c.Request().Context(), note.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "note deleted successfully"})
}
