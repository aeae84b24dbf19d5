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

// ApplicationStore is the persistence contract for job applications.
type ApplicationStore interface {
	Create(ctx context.Context, a *model.JobApplication) error
	GetByID(ctx context.Context, id uint64) (*model.JobApplication, error)
	ListByOwner(ctx context.Context, ownerID uint64, skip, limit int) ([]*model.JobApplication, error)
	Search(ctx context.Context, ownerID uint64, status, company string) ([]*model.JobApplication, error)
	Update(ctx context.Context, a *model.JobApplication, p model.JobApplicationPatch) error
	Delete(ctx context.Context, id uint64) error
}

// ApplicationHandler serves the /v1/applications routes.
type ApplicationHandler struct{ Applications ApplicationStore }

func NewApplicationHandler(apps ApplicationStore) *ApplicationHandler {
	return &ApplicationHandler{Applications: apps}
}

type applicationResponse struct {
	ID          uint64    `json:"id"`
	Company     string    `json:"company"`
	Position    string    `json:"position"`
	Status      string    `json:"status"`
	DateApplied time.Time `json:"date_applied"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toApplicationResponse(a *model.JobApplication) applicationResponse {
	return applicationResponse{
		ID:          a.ID,
		Company:     a.Company,
		Position:    a.Position,
		Status:      a.Status,
		DateApplied: a.DateApplied,
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toApplicationResponses(apps []*model.JobApplication) []applicationResponse {
	out := make([]applicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, toApplicationResponse(a))
	}
	return out
}

func invalidStatus(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error": "status must be one of: " + strings.Join(model.ValidStatuses, ", "),
	})
}

// ownedApplication is the ownership guard for applications; see ownedContact.
func (h *ApplicationHandler) ownedApplication(c echo.Context, userID uint64) (*model.JobApplication, bool) {
	id, err := parseID(c)
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		return nil, false
	}
	app, err := h.Applications.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "application not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		return nil, false
	}
	if app.UserID != userID {
		_ = c.JSON(http.StatusForbidden, echo.Map{"error": "not authorized to access this application"})
		return nil, false
	}
	return app, true
}

// Create handles POST /v1/applications.
func (h *ApplicationHandler) Create(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	var body struct {
		Company     string    `json:"company"`
		Position    string    `json:"position"`
		Status      string    `json:"status"`
		DateApplied time.Time `json:"date_applied"`
		Notes       *string   `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Company) == "" || strings.TrimSpace(body.Position) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "company and position are required"})
	}
	if !model.IsValidStatus(body.Status) {
		return invalidStatus(c)
	}
	if body.DateApplied.IsZero() {
		body.DateApplied = time.Now().UTC()
	}
	app := &model.JobApplication{
		UserID:      user.ID,
		Company:     body.Company,
		Position:    body.Position,
		Status:      body.Status,
		DateApplied: body.DateApplied,
		Notes:       body.Notes,
	}
	if err := h.Applications.Create(c.Request().Context(), app); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create application"})
	}
	return c.JSON(http.StatusCreated, toApplicationResponse(app))
}

// List handles GET /v1/applications.
func (h *ApplicationHandler) List(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	skip, limit := skipLimit(c)
	apps, err := h.Applications.ListByOwner(c.Request().Context(), user.ID, skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toApplicationResponses(apps))
}

// Get handles GET /v1/applications/:id.
func (h *ApplicationHandler) Get(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	app, ok := h.ownedApplication(c, user.ID)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, toApplicationResponse(app))
}

// Search handles GET /v1/applications/search?status=&company= scoped to
// the caller's own applications.
func (h *ApplicationHandler) Search(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	status := strings.TrimSpace(c.QueryParam("status"))
	company := strings.TrimSpace(c.QueryParam("company"))
	if status != "" && !model.IsValidStatus(status) {
		return invalidStatus(c)
	}
	apps, err := h.Applications.Search(c.Request().Context(), user.ID, status, company)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toApplicationResponses(apps))
}

// Update handles PUT /v1/applications/:id as a partial update.
func (h *ApplicationHandler) Update(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	app, ok := h.ownedApplication(c, user.ID)
	if !ok {
		return nil
	}
	var body struct {
		Company     *string    `json:"company"`
		Position    *string    `json:"position"`
		Status      *string    `json:"status"`
		DateApplied *time.Time `json:"date_applied"`
		Notes       *string    `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Status != nil && !model.IsValidStatus(*body.Status) {
		return invalidStatus(c)
	}
	patch := model.JobApplicationPatch{
		Company:     body.Company,
		Position:    body.Position,
		Status:      body.Status,
		DateApplied: body.DateApplied,
		Notes:       body.Notes,
	}
	if err := h.Applications.Update(c.Request().Context(), app, patch); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, toApplicationResponse(app))
}

// Delete handles DELETE /v1/applications/:id.
func (h *ApplicationHandler) Delete(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	app, ok := h.ownedApplication(c, user.ID)
	if !ok {
		return nil
	}
	if err := h.Applications.Delete(c.Request().Context(), app.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "application deleted successfully"})
}
