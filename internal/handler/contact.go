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

// ContactStore is the persistence contract for contacts.
type ContactStore interface {
	Create(ctx context.Context, c *model.Contact) error
	GetByID(ctx context.Context, id uint64) (*model.Contact, error)
	ListByOwner(ctx context.Context, ownerID uint64, skip, limit int) ([]*model.Contact, error)
	Search(ctx context.Context, ownerID uint64, q string) ([]*model.Contact, error)
	Update(ctx context.Context, c *model.Contact, p model.ContactPatch) error
	Delete(ctx context.Context, id uint64) error
}

// ContactHandler serves the /v1/contacts routes.
type ContactHandler struct{ Contacts ContactStore }

func NewContactHandler(contacts ContactStore) *ContactHandler {
	return &ContactHandler{Contacts: contacts}
}

type contactResponse struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toContactResponse(ct *model.Contact) contactResponse {
	return contactResponse{
		ID:        ct.ID,
		Name:      ct.Name,
		Email:     ct.Email,
		Phone:     ct.Phone,
		Address:   ct.Address,
		CreatedAt: ct.CreatedAt,
		UpdatedAt: ct.UpdatedAt,
	}
}

func toContactResponses(contacts []*model.Contact) []contactResponse {
	out := make([]contactResponse, 0, len(contacts))
	for _, ct := range contacts {
		out = append(out, toContactResponse(ct))
	}
	return out
}

// ownedContact is the ownership guard for contacts: it loads the row named
// by :id and confirms it belongs to userID.  On failure the response (400,
// 404 or 403) has already been written and ok is false.  404 and 403 stay
// distinct so a client can tell "does not exist" from "not yours".
func (h *ContactHandler) ownedContact(c echo.Context, userID uint64) (*model.Contact, bool) {
	id, err := parseID(c)
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		return nil, false
	}
	contact, err := h.Contacts.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "contact not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		return nil, false
	}
	if contact.UserID != userID {
		_ = c.JSON(http.StatusForbidden, echo.Map{"error": "not authorized to access this contact"})
		return nil, false
	}
	return contact, true
}

// Create handles POST /v1/contacts.
func (h *ContactHandler) Create(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	var body struct {
		Name    string  `json:"name"`
		Email   *string `json:"email"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	contact := &model.Contact{
		UserID:  user.ID,
		Name:    name,
		Email:   body.Email,
		Phone:   body.Phone,
		Address: body.Address,
	}
	if err := h.Contacts.Create(c.Request().Context(), contact); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create contact"})
	}
	return c.JSON(http.StatusCreated, toContactResponse(contact))
}

// List handles GET /v1/contacts.
func (h *ContactHandler) List(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	skip, limit := skipLimit(c)
	contacts, err := h.Contacts.ListByOwner(c.Request().Context(), user.ID, skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toContactResponses(contacts))
}

// Get handles GET /v1/contacts/:id.
func (h *ContactHandler) Get(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	contact, ok := h.ownedContact(c, user.ID)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, toContactResponse(contact))
}

// Update handles PUT /v1/contacts/:id as a partial update: absent fields
// keep their stored value.
func (h *ContactHandler) Update(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	contact, ok := h.ownedContact(c, user.ID)
	if !ok {
		return nil
	}
	var body struct {
		Name    *string `json:"name"`
		Email   *string `json:"email"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	patch := model.ContactPatch{Name: body.Name, Email: body.Email, Phone: body.Phone, Address: body.Address}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name cannot be empty"})
	}
	if err := h.Contacts.Update(c.Request().Context(), contact, patch); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, toContactResponse(contact))
}

// Delete handles DELETE /v1/contacts/:id.
func (h *ContactHandler) Delete(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	contact, ok := h.ownedContact(c, user.ID)
	if !ok {
		return nil
	}
	if err := h.Contacts.Delete(c.Request().Context(), contact.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "contact deleted successfully"})
}

// Search handles GET /v1/contacts/search?q= and matches the query against
// name, email, phone and address within the caller's own contacts.
func (h *ContactHandler) Search(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "q is required"})
	}
	contacts, err := h.Contacts.Search(c.Request().Context(), user.ID, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toContactResponses(contacts))
}
