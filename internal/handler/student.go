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

// StudentStore is the persistence contract for students.
type StudentStore interface {
	Create(ctx context.Context, s *model.Student) error
	GetByID(ctx context.Context, id uint64) (*model.Student, error)
	ListByOwner(ctx context.Context, ownerID uint64, skip, limit int) ([]*model.Student, error)
	Update(ctx context.Context, s *model.Student, p model.StudentPatch) error
	Delete(ctx context.Context, id uint64) error
}

// StudentHandler serves the /v1/students routes.  Grades cross the API as
// a JSON list and are stored as a serialized string column; the encode and
// decode steps happen here and in the repository so ordering and
// duplicates survive the round trip.
type StudentHandler struct{ Students StudentStore }

func NewStudentHandler(students StudentStore) *StudentHandler {
	return &StudentHandler{Students: students}
}

type studentResponse struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Email     string    `json:"email"`
	Grades    []string  `json:"grades"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toStudentResponse(s *model.Student) studentResponse {
	return studentResponse{
		ID:        s.ID,
		Name:      s.Name,
		Age:       s.Age,
		Email:     s.Email,
		Grades:    model.DecodeGrades(s.Grades),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ownedStudent is the ownership guard for students; see ownedContact.
func (h *StudentHandler) ownedStudent(c echo.Context, userID uint64) (*model.Student, bool) {
	id, err := parseID(c)
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
		return nil, false
	}
	student, err := h.Students.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		return nil, false
	}
	if student.UserID != userID {
		_ = c.JSON(http.StatusForbidden, echo.Map{"error": "not authorized to access this student"})
		return nil, false
	}
	return student, true
}

// Create handles POST /v1/students.
func (h *StudentHandler) Create(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	var body struct {
		Name   string   `json:"name"`
		Age    int      `json:"age"`
		Email  string   `json:"email"`
		Grades []string `json:"grades"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	if strings.TrimSpace(body.Name) == "" || body.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and email are required"})
	}
	if body.Age <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "age must be positive"})
	}
	grades, err := model.EncodeGrades(body.Grades)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid grades"})
	}
	student := &model.Student{
		UserID: user.ID,
		Name:   body.Name,
		Age:    body.Age,
		Email:  body.Email,
		Grades: grades,
	}
	if err := h.Students.Create(c.Request().Context(), student); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "student email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create student"})
	}
	return c.JSON(http.StatusCreated, toStudentResponse(student))
}

// List handles GET /v1/students.
func (h *StudentHandler) List(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	skip, limit := skipLimit(c)
	students, err := h.Students.ListByOwner(c.Request().Context(), user.ID, skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]studentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, toStudentResponse(s))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/students/:id.
func (h *StudentHandler) Get(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	student, ok := h.ownedStudent(c, user.ID)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, toStudentResponse(student))
}

// Update handles PUT /v1/students/:id as a partial update.
func (h *StudentHandler) Update(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	student, ok := h.ownedStudent(c, user.ID)
	if !ok {
		return nil
	}
	var body struct {
		Name   *string   `json:"name"`
		Age    *int      `json:"age"`
		Email  *string   `json:"email"`
		Grades *[]string `json:"grades"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Age != nil && *body.Age <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "age must be positive"})
	}
	patch := model.StudentPatch{Name: body.Name, Age: body.Age, Email: body.Email, Grades: body.Grades}
	if err := h.Students.Update(c.Request().Context(), student, patch); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "student email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, toStudentResponse(student))
}

// Delete handles DELETE /v1/students/:id.
func (h *StudentHandler) Delete(c echo.Context) error {
	user, ok := requireUser(c)
	if !ok {
		return nil
	}
	student, ok := h.ownedStudent(c, user.ID)
	if !ok {
		return nil
	}
	if err := h.Students.Delete(c.Request().Context(), student.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "student deleted successfully"})
}
